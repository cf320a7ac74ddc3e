// Package domain holds the data model shared by every layer: strategies,
// investors, their wallets and the append-only financial history.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StrategyStatus marks whether a strategy still receives financial events.
type StrategyStatus string

const (
	StatusOpen   StrategyStatus = "open"
	StatusClosed StrategyStatus = "closed"
)

// Strategy is the aggregate root: configuration, derived subscription target,
// rollups and the ordered investor collection (insertion order = onboarding order).
type Strategy struct {
	ID                    string          `json:"id"`
	Name                  string          `json:"name"`
	NetTargetAllocation   decimal.Decimal `json:"netTargetAllocation"`
	TargetFundPercentage  decimal.Decimal `json:"targetFundPercentage"`
	BondFundPercentage    decimal.Decimal `json:"bondFundPercentage"`
	InitialCallPercentage decimal.Decimal `json:"initialCallPercentage"`
	StartDate             time.Time       `json:"startDate"`
	InvestmentHorizon     time.Time       `json:"investmentHorizon"`
	DurationYears         int             `json:"durationInYears"`

	// IndicativeAmount is the subscription target: netTargetAllocation x 1.2.
	// Total commitments must land between 100% and 130% of it.
	IndicativeAmount decimal.Decimal `json:"indicativeAmount"`

	// Rollups, recomputed after every onboarding.
	TotalRaisedAmount      decimal.Decimal `json:"totalRaisedAmount"`
	TotalNetInvestedAmount decimal.Decimal `json:"totalNetInvestedAmount"`
	RemainingToInvest      decimal.Decimal `json:"remainingToInvest"`

	Status    StrategyStatus `json:"status"`
	Investors []Investor     `json:"investors"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Investor is a strategy-scoped position. CommitAmount and the fee snapshot
// are immutable after onboarding; wallets and cumulative totals move with events.
type Investor struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	GlobalInvestorID string `json:"globalInvestorId,omitempty"`

	CommitAmount        decimal.Decimal `json:"commitAmount"`
	InvestedAmount      decimal.Decimal `json:"investedAmount"`
	PaidAmount          decimal.Decimal `json:"paidAmount"`
	InitialBalance      decimal.Decimal `json:"initialBalance"`
	OwnershipPercentage decimal.Decimal `json:"ownershipPercentage"`

	Wallets      WalletBalances    `json:"wallets"`
	Fees         FeeBreakdown      `json:"fees"`
	Transactions TransactionTotals `json:"transactions"`
	History      InvestorHistory   `json:"history"`
}

// WalletBalances are the four sub-accounts of an investor.
type WalletBalances struct {
	// Investor is free cash: initialBalance - paidAmount, accrues with distributions.
	Investor decimal.Decimal `json:"investor"`
	// SPV is capital deployed to the target fund.
	SPV decimal.Decimal `json:"spv"`
	// Sanso is capital held in the bond-like reserve pending deployment.
	Sanso decimal.Decimal `json:"sanso"`
	// Fundora is the fee pool, fixed after onboarding. A record, not a spendable account.
	Fundora decimal.Decimal `json:"fundora"`
}

// FeeBreakdown is the fee snapshot taken at onboarding.
type FeeBreakdown struct {
	Structuration decimal.Decimal `json:"structuration"`
	Management    decimal.Decimal `json:"management"`
	Total         decimal.Decimal `json:"total"`
}

// TransactionTotals are running cumulative sums over the event history.
type TransactionTotals struct {
	SansoInterest          decimal.Decimal `json:"sansoInterest"`
	TargetFundDistribution decimal.Decimal `json:"targetFundDistribution"`
}

// TotalCommitted sums commitAmount over all investors.
func (s Strategy) TotalCommitted() decimal.Decimal {
	total := decimal.Zero
	for _, inv := range s.Investors {
		total = total.Add(inv.CommitAmount)
	}
	return total
}

// FindInvestor returns the investor with the given id, or false.
func (s Strategy) FindInvestor(id string) (Investor, bool) {
	for _, inv := range s.Investors {
		if inv.ID == id {
			return inv, true
		}
	}
	return Investor{}, false
}

// Clone returns a deep copy. Operations work on clones so that a failed
// operation never leaves a half-mutated strategy behind.
func (s Strategy) Clone() Strategy {
	out := s
	out.Investors = make([]Investor, len(s.Investors))
	for i, inv := range s.Investors {
		out.Investors[i] = inv.Clone()
	}
	return out
}

// Clone returns a deep copy of the investor, history included.
func (inv Investor) Clone() Investor {
	out := inv
	out.History = InvestorHistory{
		SansoInterests:          append([]CouponRecord(nil), inv.History.SansoInterests...),
		TargetFundDistributions: append([]DistributionRecord(nil), inv.History.TargetFundDistributions...),
		FundCalls:               append([]FundCallRecord(nil), inv.History.FundCalls...),
		FundoraFees:             append([]FeeRecord(nil), inv.History.FundoraFees...),
	}
	return out
}
