// Package captable builds the read models consumed by display and export
// collaborators: the per-investor cap table and the fundraising summary.
package captable

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/fundora/ledger/internal/domain"
)

// Build returns one cap table row per investor, in onboarding order.
func Build(s domain.Strategy) []domain.CapTableEntry {
	return lo.Map(s.Investors, func(inv domain.Investor, _ int) domain.CapTableEntry {
		return domain.CapTableEntry{
			InvestorID:   inv.ID,
			InvestorName: inv.Name,

			PaidAmount:          inv.PaidAmount,
			InvestedAmount:      inv.InvestedAmount,
			NonInvestedAmount:   inv.Wallets.Sanso,
			OwnershipPercentage: inv.OwnershipPercentage,

			SPVWallet:      inv.Wallets.SPV,
			SansoWallet:    inv.Wallets.Sanso,
			InvestorWallet: inv.Wallets.Investor,

			SansoInterest:          inv.Transactions.SansoInterest,
			TargetFundDistribution: inv.Transactions.TargetFundDistribution,
			InitialFundCallAmount:  initialCallAmount(inv),

			SansoInterestHistory:          inv.History.SansoInterests,
			TargetFundDistributionHistory: inv.History.TargetFundDistributions,
			FundCallsHistory:              inv.History.FundCalls,
		}
	})
}

// initialCallAmount is the amount of the synthetic call #1 written at onboarding.
func initialCallAmount(inv domain.Investor) decimal.Decimal {
	for _, call := range inv.History.FundCalls {
		if call.CallNumber == 1 {
			return call.Amount
		}
	}
	return decimal.Zero
}

// Summary is the strategy-level fundraising picture.
type Summary struct {
	StrategyID             string          `json:"strategyId"`
	StrategyName           string          `json:"strategyName"`
	InvestorCount          int             `json:"investorCount"`
	IndicativeAmount       decimal.Decimal `json:"indicativeAmount"`
	TotalRaisedAmount      decimal.Decimal `json:"totalRaisedAmount"`
	TotalNetInvestedAmount decimal.Decimal `json:"totalNetInvestedAmount"`
	RemainingToInvest      decimal.Decimal `json:"remainingToInvest"`
	PercentageOfTarget     decimal.Decimal `json:"percentageOfTarget"`
}

// Summarize derives the fundraising summary from the strategy rollups.
func Summarize(s domain.Strategy) Summary {
	return Summary{
		StrategyID:             s.ID,
		StrategyName:           s.Name,
		InvestorCount:          len(s.Investors),
		IndicativeAmount:       s.IndicativeAmount,
		TotalRaisedAmount:      s.TotalRaisedAmount,
		TotalNetInvestedAmount: s.TotalNetInvestedAmount,
		RemainingToInvest:      s.RemainingToInvest,
		PercentageOfTarget:     domain.PercentOf(s.TotalRaisedAmount, s.IndicativeAmount),
	}
}
