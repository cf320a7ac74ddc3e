// Package onboarding turns a batch of prospective investors into funded
// positions on a strategy: commitment estimation, subscription-window
// auto-adjustment, fee allocation and ownership recalculation.
package onboarding

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/fundora/ledger/internal/domain"
	"github.com/fundora/ledger/internal/fees"
)

// ErrCapacityExceeded indicates that existing commitments alone already
// exceed 130% of the indicative amount; no adjustment of the new batch can fix it.
var ErrCapacityExceeded = errors.New("subscription ceiling exceeded by existing commitments")

// Commitments are estimated at 70% of the prospect's initial balance,
// a fixed onboarding assumption.
var commitRatio = decimal.RequireFromString("0.7")

// Subscription window bounds, relative to the indicative amount.
var (
	ceilingRatio = decimal.RequireFromString("1.3")
	hundredPct   = decimal.NewFromInt(100)
	minBalance   = decimal.NewFromInt(30_000)
)

// Prospect is one investor candidate. A zero InitialBalance means "not
// provided" and takes the configured default.
type Prospect struct {
	Name             string          `json:"name"`
	InitialBalance   decimal.Decimal `json:"initialBalance"`
	GlobalInvestorID string          `json:"globalInvestorId,omitempty"`
}

// Adjustment is the diagnostic record of a subscription-window correction.
// Callers decide whether to surface it to the user.
type Adjustment struct {
	Kind               AdjustmentKind  `json:"kind"`
	Factor             decimal.Decimal `json:"factor"`
	PercentageOfTarget decimal.Decimal `json:"percentageOfTarget"`
}

// AdjustmentKind distinguishes scaling down (over 130%) from scaling up (under 100%).
type AdjustmentKind string

const (
	AdjustmentReduction AdjustmentKind = "reduction"
	AdjustmentIncrease  AdjustmentKind = "increase"
)

// AddInvestors onboards the prospects onto the strategy and returns the new
// strategy value. The input strategy is never mutated. When the batch had to
// be scaled to fit the subscription window, the Adjustment describes the
// correction applied to the NEW investors (existing positions are never touched).
func AddInvestors(s domain.Strategy, prospects []Prospect, defaultBalance decimal.Decimal, now time.Time) (domain.Strategy, *Adjustment, error) {
	if len(prospects) == 0 {
		return domain.Strategy{}, nil, domain.Invalid("investors", "empty batch")
	}

	balances := make([]decimal.Decimal, len(prospects))
	for i, p := range prospects {
		if p.Name == "" {
			return domain.Strategy{}, nil, domain.Invalid("name", fmt.Sprintf("investor #%d has no name", i+1))
		}
		if p.InitialBalance.IsNegative() {
			return domain.Strategy{}, nil, domain.Invalid("initialBalance", "must not be negative")
		}
		balances[i] = p.InitialBalance
		if balances[i].IsZero() {
			balances[i] = defaultBalance
		}
	}

	existingTotal := s.TotalCommitted()
	estimatedNewTotal := lo.Reduce(balances, func(acc decimal.Decimal, b decimal.Decimal, _ int) decimal.Decimal {
		return acc.Add(estimateCommit(b))
	}, decimal.Zero)

	totalInvestment := existingTotal.Add(estimatedNewTotal)
	pctOfTarget := domain.PercentOf(totalInvestment, s.IndicativeAmount)

	adjustment, err := adjustBalances(balances, s.IndicativeAmount, existingTotal, estimatedNewTotal, pctOfTarget)
	if err != nil {
		return domain.Strategy{}, nil, err
	}

	out := s.Clone()
	for i, p := range prospects {
		alloc := fees.WalletAllocation(estimateCommit(balances[i]), s.DurationYears, s.InitialCallPercentage, balances[i])
		out.Investors = append(out.Investors, newInvestor(p, balances[i], alloc, s.InitialCallPercentage, now))
	}

	RecomputeOwnership(out.Investors)
	recomputeRollups(&out)
	return out, adjustment, nil
}

// adjustBalances scales the batch in place so that total commitments land in
// the [100%, 130%] window of the indicative amount.
func adjustBalances(balances []decimal.Decimal, indicative, existingTotal, estimatedNewTotal, pctOfTarget decimal.Decimal) (*Adjustment, error) {
	if estimatedNewTotal.IsZero() || indicative.IsZero() {
		return nil, nil
	}

	switch {
	case pctOfTarget.GreaterThan(decimal.NewFromInt(130)):
		ceiling := indicative.Mul(ceilingRatio)
		if existingTotal.GreaterThanOrEqual(ceiling) {
			return nil, ErrCapacityExceeded
		}
		factor := ceiling.Sub(existingTotal).Div(estimatedNewTotal)
		for i := range balances {
			balances[i] = domain.RoundMoney(balances[i].Mul(factor))
			if balances[i].LessThan(minBalance) {
				balances[i] = minBalance
			}
		}
		return &Adjustment{Kind: AdjustmentReduction, Factor: factor, PercentageOfTarget: pctOfTarget}, nil

	case pctOfTarget.LessThan(hundredPct):
		shortfall := indicative.Sub(existingTotal.Add(estimatedNewTotal))
		factor := estimatedNewTotal.Add(shortfall).Div(estimatedNewTotal)
		for i := range balances {
			balances[i] = domain.RoundMoney(balances[i].Mul(factor))
		}
		return &Adjustment{Kind: AdjustmentIncrease, Factor: factor, PercentageOfTarget: pctOfTarget}, nil
	}

	return nil, nil
}

func estimateCommit(balance decimal.Decimal) decimal.Decimal {
	return balance.Mul(commitRatio).Floor()
}

func newInvestor(p Prospect, balance decimal.Decimal, alloc fees.Allocation, initialCallPct decimal.Decimal, now time.Time) domain.Investor {
	return domain.Investor{
		ID:               uuid.NewString(),
		Name:             p.Name,
		GlobalInvestorID: p.GlobalInvestorID,

		CommitAmount:   alloc.CommitAmount,
		InvestedAmount: alloc.InvestedAmount,
		PaidAmount:     alloc.PaidAmount,
		InitialBalance: balance,

		Wallets: domain.WalletBalances{
			Investor: alloc.InvestorWallet,
			SPV:      alloc.SPVAmount,
			Sanso:    alloc.SansoAmount,
			Fundora:  alloc.FundoraAmount,
		},
		Fees: domain.FeeBreakdown{
			Structuration: alloc.StructurationFee,
			Management:    alloc.ManagementFee,
			Total:         alloc.TotalFees,
		},
		History: domain.InvestorHistory{
			FundCalls: []domain.FundCallRecord{{
				CallNumber:  1,
				Amount:      alloc.SPVAmount,
				Percentage:  initialCallPct,
				Date:        now,
				Description: "initial call",
			}},
			FundoraFees: []domain.FeeRecord{{
				Date:             now,
				StructurationFee: alloc.StructurationFee,
				ManagementFee:    alloc.ManagementFee,
				TotalFee:         alloc.TotalFees,
				Description:      "initial fees",
			}},
		},
	}
}

func recomputeRollups(s *domain.Strategy) {
	s.TotalRaisedAmount = lo.Reduce(s.Investors, func(acc decimal.Decimal, inv domain.Investor, _ int) decimal.Decimal {
		return acc.Add(inv.CommitAmount)
	}, decimal.Zero)
	s.TotalNetInvestedAmount = lo.Reduce(s.Investors, func(acc decimal.Decimal, inv domain.Investor, _ int) decimal.Decimal {
		return acc.Add(inv.InvestedAmount)
	}, decimal.Zero)
	s.RemainingToInvest = s.NetTargetAllocation.Sub(s.TotalNetInvestedAmount)
}

// RecomputeOwnership refreshes every investor's ownership percentage as its
// share of the total commitment. Always recomputed for the full set, never
// patched incrementally.
func RecomputeOwnership(investors []domain.Investor) {
	total := lo.Reduce(investors, func(acc decimal.Decimal, inv domain.Investor, _ int) decimal.Decimal {
		return acc.Add(inv.CommitAmount)
	}, decimal.Zero)

	for i := range investors {
		investors[i].OwnershipPercentage = domain.PercentOf(investors[i].CommitAmount, total)
	}
}
