// Package fees implements the tiered fee schedule and the wallet allocation
// derived from a commitment. Everything here is a pure function; monetary
// results are rounded to 2 decimals at the point of computation.
package fees

import (
	"github.com/shopspring/decimal"

	"github.com/fundora/ledger/internal/domain"
)

// Tier breakpoints on commitAmount.
var (
	tier1Max = decimal.NewFromInt(30_000)
	tier2Max = decimal.NewFromInt(100_000)
)

// Rates per tier.
var (
	structRateTier1 = decimal.RequireFromString("0.03")
	structRateTier2 = decimal.RequireFromString("0.025")
	structRateTier3 = decimal.RequireFromString("0.02")

	mgmtRateTier1 = decimal.RequireFromString("0.017")
	mgmtRateTier2 = decimal.RequireFromString("0.015")
	mgmtRateTier3 = decimal.RequireFromString("0.012")
)

// StructurationRate returns the one-shot structuration fee rate for a commitment.
func StructurationRate(commit decimal.Decimal) decimal.Decimal {
	switch {
	case commit.LessThanOrEqual(tier1Max):
		return structRateTier1
	case commit.LessThanOrEqual(tier2Max):
		return structRateTier2
	default:
		return structRateTier3
	}
}

// ManagementRate returns the annual management fee rate for a commitment.
func ManagementRate(commit decimal.Decimal) decimal.Decimal {
	switch {
	case commit.LessThanOrEqual(tier1Max):
		return mgmtRateTier1
	case commit.LessThanOrEqual(tier2Max):
		return mgmtRateTier2
	default:
		return mgmtRateTier3
	}
}

// StructurationFee returns commit x structuration rate.
func StructurationFee(commit decimal.Decimal) decimal.Decimal {
	return domain.RoundMoney(commit.Mul(StructurationRate(commit)))
}

// ManagementFee returns commit x management rate x duration in years.
func ManagementFee(commit decimal.Decimal, years int) decimal.Decimal {
	return domain.RoundMoney(commit.Mul(ManagementRate(commit)).Mul(decimal.NewFromInt(int64(years))))
}

// TotalFees returns structuration + management fees.
func TotalFees(commit decimal.Decimal, years int) decimal.Decimal {
	return domain.RoundMoney(StructurationFee(commit).Add(ManagementFee(commit, years)))
}

// InvestedAmount returns commit minus management fees.
func InvestedAmount(commit decimal.Decimal, years int) decimal.Decimal {
	return domain.RoundMoney(commit.Sub(ManagementFee(commit, years)))
}

// PaidAmount returns commit plus the structuration fee.
func PaidAmount(commit decimal.Decimal) decimal.Decimal {
	return domain.RoundMoney(commit.Add(StructurationFee(commit)))
}
