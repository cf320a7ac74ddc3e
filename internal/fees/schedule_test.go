package fees

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRateTiers(t *testing.T) {
	cases := []struct {
		commit     string
		structRate string
		mgmtRate   string
	}{
		{"10000", "0.03", "0.017"},
		{"30000", "0.03", "0.017"},
		{"30000.01", "0.025", "0.015"},
		{"100000", "0.025", "0.015"},
		{"100000.01", "0.02", "0.012"},
		{"500000", "0.02", "0.012"},
	}
	for _, c := range cases {
		commit := dec(c.commit)
		if got := StructurationRate(commit); !got.Equal(dec(c.structRate)) {
			t.Errorf("StructurationRate(%s) = %s, want %s", c.commit, got, c.structRate)
		}
		if got := ManagementRate(commit); !got.Equal(dec(c.mgmtRate)) {
			t.Errorf("ManagementRate(%s) = %s, want %s", c.commit, got, c.mgmtRate)
		}
	}
}

// 50,000 over 5 years is the reference quote: 1,250 structuration (2.5%),
// 3,750 management (1.5% x 5), 46,250 invested, 51,250 paid.
func TestReferenceQuote(t *testing.T) {
	commit := dec("50000")

	if got := StructurationFee(commit); !got.Equal(dec("1250")) {
		t.Errorf("StructurationFee = %s, want 1250", got)
	}
	if got := ManagementFee(commit, 5); !got.Equal(dec("3750")) {
		t.Errorf("ManagementFee = %s, want 3750", got)
	}
	if got := TotalFees(commit, 5); !got.Equal(dec("5000")) {
		t.Errorf("TotalFees = %s, want 5000", got)
	}
	if got := InvestedAmount(commit, 5); !got.Equal(dec("46250")) {
		t.Errorf("InvestedAmount = %s, want 46250", got)
	}
	if got := PaidAmount(commit); !got.Equal(dec("51250")) {
		t.Errorf("PaidAmount = %s, want 51250", got)
	}
}

// Effective fee rates must be non-increasing step functions of the commitment.
func TestFeeRateMonotonicity(t *testing.T) {
	commits := []string{"1000", "15000", "30000", "30001", "65000", "100000", "100001", "250000", "1000000"}

	prevStruct := decimal.NewFromInt(1)
	prevMgmt := decimal.NewFromInt(1)
	for _, c := range commits {
		commit := dec(c)
		structRatio := StructurationFee(commit).Div(commit)
		mgmtRatio := ManagementFee(commit, 1).Div(commit)

		if structRatio.GreaterThan(prevStruct.Add(dec("0.0001"))) {
			t.Errorf("structuration ratio increased at commit %s: %s > %s", c, structRatio, prevStruct)
		}
		if mgmtRatio.GreaterThan(prevMgmt.Add(dec("0.0001"))) {
			t.Errorf("management ratio increased at commit %s: %s > %s", c, mgmtRatio, prevMgmt)
		}
		prevStruct = structRatio
		prevMgmt = mgmtRatio
	}
}
