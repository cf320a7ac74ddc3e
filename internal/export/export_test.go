package export

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fundora/ledger/internal/captable"
	"github.com/fundora/ledger/internal/domain"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type mockSource struct {
	entries    []domain.CapTableEntry
	summary    captable.Summary
	capErr     error
	summaryErr error
}

func (m *mockSource) CapTable(_ context.Context, _ string) ([]domain.CapTableEntry, error) {
	return m.entries, m.capErr
}

func (m *mockSource) Summary(_ context.Context, _ string) (captable.Summary, error) {
	return m.summary, m.summaryErr
}

type mockWriter struct {
	written  *CapTable
	writeErr error
}

func (m *mockWriter) Write(_ context.Context, ct CapTable) error {
	m.written = &ct
	return m.writeErr
}

func TestExportDelegatesToWriter(t *testing.T) {
	source := &mockSource{
		entries: []domain.CapTableEntry{{InvestorName: "Alice"}},
		summary: captable.Summary{StrategyName: "Growth", InvestorCount: 1},
	}
	writer := &mockWriter{}

	svc := NewService(source, writer)
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

	if err := svc.Export(context.Background(), "s1"); err != nil {
		t.Fatalf("export: %v", err)
	}
	if writer.written == nil {
		t.Fatal("writer not invoked")
	}
	if writer.written.Summary.StrategyName != "Growth" {
		t.Errorf("summary name = %q, want Growth", writer.written.Summary.StrategyName)
	}
	if !writer.written.GeneratedAt.Equal(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("generated at = %v, want injected clock", writer.written.GeneratedAt)
	}
}

func TestExportSourceError(t *testing.T) {
	wantErr := errors.New("source down")
	svc := NewService(&mockSource{capErr: wantErr}, &mockWriter{})

	if err := svc.Export(context.Background(), "s1"); !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want wrapped source error", err)
	}
}

func TestBuildRows(t *testing.T) {
	ct := CapTable{
		Entries: []domain.CapTableEntry{
			{
				InvestorName:          "Alice",
				PaidAmount:            dec("51250"),
				InvestedAmount:        dec("46250"),
				NonInvestedAmount:     dec("37000"),
				OwnershipPercentage:   dec("60"),
				InvestorWallet:        dec("48750"),
				SPVWallet:             dec("9250"),
				SansoWallet:           dec("37000"),
				InitialFundCallAmount: dec("9250"),
			},
			{
				InvestorName:        "Bob",
				PaidAmount:          dec("25625"),
				InvestedAmount:      dec("23125"),
				OwnershipPercentage: dec("40"),
			},
		},
	}

	rows := buildRows(ct)
	// Header + two investors + totals.
	if len(rows) != 4 {
		t.Fatalf("row count = %d, want 4", len(rows))
	}
	if rows[0][0] != "Investor" {
		t.Errorf("header[0] = %v, want Investor", rows[0][0])
	}
	if rows[1][0] != "Alice" || rows[2][0] != "Bob" {
		t.Errorf("investor order = %v, %v, want Alice, Bob", rows[1][0], rows[2][0])
	}

	totals := rows[3]
	if totals[0] != "Total" {
		t.Fatalf("totals label = %v, want Total", totals[0])
	}
	if got := totals[1].(float64); got != 76875 {
		t.Errorf("paid total = %v, want 76875", got)
	}
	if got := totals[4].(float64); got != 100 {
		t.Errorf("ownership total = %v, want 100", got)
	}
}

func TestBuildSummaryRows(t *testing.T) {
	ct := CapTable{
		Summary: captable.Summary{
			StrategyName:       "Growth",
			InvestorCount:      2,
			IndicativeAmount:   dec("1200000"),
			PercentageOfTarget: dec("105"),
		},
		GeneratedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	rows := buildSummaryRows(ct)
	if rows[0][1] != "Growth" {
		t.Errorf("strategy name = %v, want Growth", rows[0][1])
	}
	if rows[2][1] != 2 {
		t.Errorf("investor count = %v, want 2", rows[2][1])
	}
	if rows[7][1].(float64) != 105 {
		t.Errorf("%% of target = %v, want 105", rows[7][1])
	}
}
