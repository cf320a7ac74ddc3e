package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRoundMoney(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"647.499999", "647.5"},
		{"1250.005", "1250.01"},
		{"0", "0"},
		{"-12.345", "-12.35"},
	}
	for _, c := range cases {
		got := RoundMoney(decimal.RequireFromString(c.in))
		if !got.Equal(decimal.RequireFromString(c.want)) {
			t.Errorf("RoundMoney(%s) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestPercentOfZeroWhole(t *testing.T) {
	got := PercentOf(decimal.NewFromInt(50), decimal.Zero)
	if !got.IsZero() {
		t.Errorf("PercentOf(50, 0) = %s, want 0", got)
	}
}

func TestPercentOf(t *testing.T) {
	got := PercentOf(decimal.NewFromInt(30), decimal.NewFromInt(120))
	if !got.Equal(decimal.NewFromInt(25)) {
		t.Errorf("PercentOf(30, 120) = %s, want 25", got)
	}
}

func TestApplyPercent(t *testing.T) {
	got := ApplyPercent(decimal.NewFromInt(46250), decimal.NewFromInt(20))
	if !got.Equal(decimal.NewFromInt(9250)) {
		t.Errorf("ApplyPercent(46250, 20) = %s, want 9250", got)
	}
}

func TestStrategyCloneIsDeep(t *testing.T) {
	s := Strategy{
		ID: "s1",
		Investors: []Investor{{
			ID: "i1",
			History: InvestorHistory{
				FundCalls: []FundCallRecord{{CallNumber: 1, Amount: decimal.NewFromInt(100)}},
			},
		}},
	}

	clone := s.Clone()
	clone.Investors[0].Name = "changed"
	clone.Investors[0].History.FundCalls = append(clone.Investors[0].History.FundCalls,
		FundCallRecord{CallNumber: 2})

	if s.Investors[0].Name == "changed" {
		t.Error("clone shares investor slice with original")
	}
	if len(s.Investors[0].History.FundCalls) != 1 {
		t.Errorf("original history length = %d, want 1", len(s.Investors[0].History.FundCalls))
	}
}

func TestTotalCommitted(t *testing.T) {
	s := Strategy{Investors: []Investor{
		{CommitAmount: decimal.NewFromInt(50000)},
		{CommitAmount: decimal.NewFromInt(70000)},
	}}
	if got := s.TotalCommitted(); !got.Equal(decimal.NewFromInt(120000)) {
		t.Errorf("TotalCommitted = %s, want 120000", got)
	}
}
