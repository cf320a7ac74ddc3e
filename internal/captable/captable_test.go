package captable

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fundora/ledger/internal/domain"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestBuildRows(t *testing.T) {
	s := domain.Strategy{
		ID: "strat-1",
		Investors: []domain.Investor{{
			ID:                  "inv-1",
			Name:                "Alice",
			PaidAmount:          dec("51250"),
			InvestedAmount:      dec("46250"),
			OwnershipPercentage: dec("100"),
			Wallets: domain.WalletBalances{
				Investor: dec("48750"),
				SPV:      dec("9250"),
				Sanso:    dec("37000"),
				Fundora:  dec("5000"),
			},
			Transactions: domain.TransactionTotals{
				SansoInterest: dec("647.50"),
			},
			History: domain.InvestorHistory{
				FundCalls: []domain.FundCallRecord{
					{CallNumber: 1, Amount: dec("9250"), Date: time.Now()},
					{CallNumber: 2, Amount: dec("18500"), Date: time.Now()},
				},
			},
		}},
	}

	rows := Build(s)
	if len(rows) != 1 {
		t.Fatalf("row count = %d, want 1", len(rows))
	}

	row := rows[0]
	if row.InvestorName != "Alice" {
		t.Errorf("name = %q, want Alice", row.InvestorName)
	}
	if !row.NonInvestedAmount.Equal(dec("37000")) {
		t.Errorf("non-invested = %s, want sanso balance 37000", row.NonInvestedAmount)
	}
	if !row.InitialFundCallAmount.Equal(dec("9250")) {
		t.Errorf("initial call amount = %s, want 9250", row.InitialFundCallAmount)
	}
	if len(row.FundCallsHistory) != 2 {
		t.Errorf("fund call history length = %d, want 2", len(row.FundCallsHistory))
	}
}

func TestBuildEmptyStrategy(t *testing.T) {
	if rows := Build(domain.Strategy{}); len(rows) != 0 {
		t.Errorf("rows for empty strategy = %d, want 0", len(rows))
	}
}

func TestSummarize(t *testing.T) {
	s := domain.Strategy{
		ID:                     "strat-1",
		Name:                   "Growth",
		IndicativeAmount:       dec("1200000"),
		TotalRaisedAmount:      dec("1400000"),
		TotalNetInvestedAmount: dec("1316000"),
		RemainingToInvest:      dec("-316000"),
		Investors:              make([]domain.Investor, 3),
	}

	sum := Summarize(s)
	if sum.InvestorCount != 3 {
		t.Errorf("investor count = %d, want 3", sum.InvestorCount)
	}
	// 1,400,000 / 1,200,000 = 116.67%
	want := dec("1400000").Div(dec("1200000")).Mul(dec("100"))
	if !sum.PercentageOfTarget.Equal(want) {
		t.Errorf("percentage of target = %s, want %s", sum.PercentageOfTarget, want)
	}
}
