package fees

import (
	"github.com/shopspring/decimal"

	"github.com/fundora/ledger/internal/domain"
)

var one = decimal.NewFromInt(1)

// Allocation is the complete fee and wallet split for one commitment.
// CommitAmount is the effective commitment after the safe-commit clamp, which
// may be lower than the requested one.
type Allocation struct {
	CommitAmount     decimal.Decimal
	StructurationFee decimal.Decimal
	ManagementFee    decimal.Decimal
	TotalFees        decimal.Decimal
	InvestedAmount   decimal.Decimal
	PaidAmount       decimal.Decimal
	InvestorWallet   decimal.Decimal
	SPVAmount        decimal.Decimal
	SansoAmount      decimal.Decimal
	FundoraAmount    decimal.Decimal
}

// WalletAllocation derives fees and the four wallet balances for a commitment.
//
// When commit x (1 + structurationRate) would exceed initialBalance, the
// commitment is clamped down to the maximum value the balance can pay:
// safeCommit = initialBalance / (1 + structurationRate). The clamp keeps the
// rate bracket of the ORIGINAL commit amount even when safeCommit falls into a
// lower tier. Known approximation, kept on purpose: re-deriving the tier from
// safeCommit can oscillate around a breakpoint, and product treats the quoted
// rate as binding.
func WalletAllocation(commit decimal.Decimal, years int, initialCallPct, initialBalance decimal.Decimal) Allocation {
	structRate := StructurationRate(commit)
	mgmtRate := ManagementRate(commit)

	safeCommit := commit
	if commit.Mul(one.Add(structRate)).GreaterThan(initialBalance) {
		// Round down, not half-up: rounding the clamped commitment up can
		// push the paid amount back past the balance.
		safeCommit = initialBalance.Div(one.Add(structRate)).RoundDown(2)
	}

	structFee := domain.RoundMoney(safeCommit.Mul(structRate))
	mgmtFee := domain.RoundMoney(safeCommit.Mul(mgmtRate).Mul(decimal.NewFromInt(int64(years))))
	invested := domain.RoundMoney(safeCommit.Sub(mgmtFee))
	paid := domain.RoundMoney(safeCommit.Add(structFee))
	// Fee rounding can still overshoot by a cent; the balance is a hard cap.
	if paid.GreaterThan(initialBalance) {
		paid = initialBalance
	}

	return Allocation{
		CommitAmount:     safeCommit,
		StructurationFee: structFee,
		ManagementFee:    mgmtFee,
		TotalFees:        domain.RoundMoney(structFee.Add(mgmtFee)),
		InvestedAmount:   invested,
		PaidAmount:       paid,
		InvestorWallet:   domain.RoundMoney(initialBalance.Sub(paid)),
		SPVAmount:        domain.RoundMoney(domain.ApplyPercent(invested, initialCallPct)),
		SansoAmount:      domain.RoundMoney(invested.Sub(domain.ApplyPercent(invested, initialCallPct))),
		FundoraAmount:    domain.RoundMoney(structFee.Add(mgmtFee)),
	}
}
