package events

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fundora/ledger/internal/domain"
)

// DistributionParams describes one target-fund distribution. The multiple is
// expressed as a percentage of the deployed wallet, e.g. 3.4 means 3.4%.
type DistributionParams struct {
	Multiple         decimal.Decimal `json:"multiple"`
	DistributionDate time.Time       `json:"distributionDate"`
}

// ApplyDistribution pays out spv x multiple/100 to every investor, moving the
// amount from the deployed wallet to free cash. Unlike coupons, distributions
// carry no uniqueness constraint and may repeat within a year.
func ApplyDistribution(s domain.Strategy, p DistributionParams) (domain.Strategy, error) {
	if p.Multiple.LessThanOrEqual(decimal.Zero) || p.Multiple.GreaterThan(decimal.NewFromInt(100)) {
		return domain.Strategy{}, domain.Invalid("multiple", "must be in (0, 100]")
	}
	if p.DistributionDate.IsZero() {
		return domain.Strategy{}, domain.Invalid("distributionDate", "required")
	}

	out := s.Clone()
	for i := range out.Investors {
		inv := &out.Investors[i]

		amount := domain.RoundMoney(domain.ApplyPercent(inv.Wallets.SPV, p.Multiple))

		inv.Wallets.SPV = inv.Wallets.SPV.Sub(amount)
		inv.Wallets.Investor = inv.Wallets.Investor.Add(amount)
		inv.Transactions.TargetFundDistribution = inv.Transactions.TargetFundDistribution.Add(amount)
		inv.History.TargetFundDistributions = append(inv.History.TargetFundDistributions, domain.DistributionRecord{
			Amount:           amount,
			DistributionDate: p.DistributionDate,
			Multiple:         p.Multiple,
			Year:             p.DistributionDate.Year(),
		})
	}
	return out, nil
}
