package events

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fundora/ledger/internal/domain"
)

// ApplyFundCall sweeps callPercentage of each investor's reserve wallet into
// the deployed wallet. Call #1 is synthetic (written at onboarding), so
// callNumber starts at 2. The sweep reallocates within the spv/sanso split
// and never touches free cash or the cumulative transaction totals.
func ApplyFundCall(s domain.Strategy, callNumber int, callPercentage decimal.Decimal, now time.Time) (domain.Strategy, error) {
	if callNumber < 2 {
		return domain.Strategy{}, domain.Invalid("callNumber", "must be at least 2, call #1 is made at onboarding")
	}
	if callPercentage.LessThanOrEqual(decimal.Zero) || callPercentage.GreaterThan(decimal.NewFromInt(100)) {
		return domain.Strategy{}, domain.Invalid("callPercentage", "must be in (0, 100]")
	}

	out := s.Clone()
	for i := range out.Investors {
		inv := &out.Investors[i]

		callAmount := domain.RoundMoney(domain.ApplyPercent(inv.Wallets.Sanso, callPercentage))
		// Rounding near full depletion can push the call past the balance;
		// clamp so the reserve lands exactly at zero.
		if inv.Wallets.Sanso.LessThan(callAmount) {
			callAmount = inv.Wallets.Sanso
		}

		inv.Wallets.Sanso = inv.Wallets.Sanso.Sub(callAmount)
		inv.Wallets.SPV = inv.Wallets.SPV.Add(callAmount)
		inv.History.FundCalls = append(inv.History.FundCalls, domain.FundCallRecord{
			CallNumber: callNumber,
			Amount:     callAmount,
			Percentage: callPercentage,
			Date:       now,
		})
	}
	return out, nil
}
