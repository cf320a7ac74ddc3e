// Package export writes the cap table of a strategy to spreadsheet
// destinations: Google Sheets or a local XLSX file.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/fundora/ledger/internal/captable"
	"github.com/fundora/ledger/internal/domain"
)

// CapTableSource provides the cap table data for one strategy.
type CapTableSource interface {
	CapTable(ctx context.Context, id string) ([]domain.CapTableEntry, error)
	Summary(ctx context.Context, id string) (captable.Summary, error)
}

// CapTable is one assembled export: the rows plus the fundraising summary.
type CapTable struct {
	Summary     captable.Summary
	Entries     []domain.CapTableEntry
	GeneratedAt time.Time
}

// SheetWriter writes an assembled cap table to a spreadsheet destination.
type SheetWriter interface {
	Write(ctx context.Context, ct CapTable) error
}

// Service assembles cap tables and delegates writing to a SheetWriter.
type Service struct {
	source CapTableSource
	writer SheetWriter
	now    func() time.Time
}

// NewService creates a new export Service. Both dependencies are required.
func NewService(source CapTableSource, writer SheetWriter) *Service {
	if source == nil {
		panic("export.NewService: source is nil")
	}
	if writer == nil {
		panic("export.NewService: writer is nil")
	}
	return &Service{source: source, writer: writer, now: time.Now}
}

// Export assembles the cap table for the strategy and writes it out.
func (s *Service) Export(ctx context.Context, strategyID string) error {
	entries, err := s.source.CapTable(ctx, strategyID)
	if err != nil {
		return fmt.Errorf("building cap table: %w", err)
	}
	summary, err := s.source.Summary(ctx, strategyID)
	if err != nil {
		return fmt.Errorf("building summary: %w", err)
	}

	return s.writer.Write(ctx, CapTable{
		Summary:     summary,
		Entries:     entries,
		GeneratedAt: s.now().UTC(),
	})
}

// capTableHeader is the column layout shared by every spreadsheet destination.
var capTableHeader = []any{
	"Investor", "Paid", "Invested", "Non-invested", "Ownership %",
	"Investor Wallet", "SPV Wallet", "Sanso Wallet",
	"Initial Call", "Interest Received", "Distributions Received",
}

// buildRows flattens the cap table into spreadsheet rows: header, one row per
// investor and a totals row.
func buildRows(ct CapTable) [][]any {
	data := make([][]any, 0, len(ct.Entries)+2)
	data = append(data, capTableHeader)

	for _, e := range ct.Entries {
		data = append(data, []any{
			e.InvestorName,
			toFloat(e.PaidAmount),
			toFloat(e.InvestedAmount),
			toFloat(e.NonInvestedAmount),
			toFloat(e.OwnershipPercentage),
			toFloat(e.InvestorWallet),
			toFloat(e.SPVWallet),
			toFloat(e.SansoWallet),
			toFloat(e.InitialFundCallAmount),
			toFloat(e.SansoInterest),
			toFloat(e.TargetFundDistribution),
		})
	}

	data = append(data, totalsRow(ct.Entries))
	return data
}

func totalsRow(entries []domain.CapTableEntry) []any {
	sum := func(pick func(domain.CapTableEntry) decimal.Decimal) any {
		return toFloat(lo.Reduce(entries, func(acc decimal.Decimal, e domain.CapTableEntry, _ int) decimal.Decimal {
			return acc.Add(pick(e))
		}, decimal.Zero))
	}

	return []any{
		"Total",
		sum(func(e domain.CapTableEntry) decimal.Decimal { return e.PaidAmount }),
		sum(func(e domain.CapTableEntry) decimal.Decimal { return e.InvestedAmount }),
		sum(func(e domain.CapTableEntry) decimal.Decimal { return e.NonInvestedAmount }),
		sum(func(e domain.CapTableEntry) decimal.Decimal { return e.OwnershipPercentage }),
		sum(func(e domain.CapTableEntry) decimal.Decimal { return e.InvestorWallet }),
		sum(func(e domain.CapTableEntry) decimal.Decimal { return e.SPVWallet }),
		sum(func(e domain.CapTableEntry) decimal.Decimal { return e.SansoWallet }),
		sum(func(e domain.CapTableEntry) decimal.Decimal { return e.InitialFundCallAmount }),
		sum(func(e domain.CapTableEntry) decimal.Decimal { return e.SansoInterest }),
		sum(func(e domain.CapTableEntry) decimal.Decimal { return e.TargetFundDistribution }),
	}
}

// buildSummaryRows renders the fundraising summary as label/value pairs.
func buildSummaryRows(ct CapTable) [][]any {
	return [][]any{
		{"Strategy", ct.Summary.StrategyName},
		{"Generated", ct.GeneratedAt.Format("2006-01-02 15:04:05 UTC")},
		{"Investors", ct.Summary.InvestorCount},
		{"Indicative Amount", toFloat(ct.Summary.IndicativeAmount)},
		{"Total Raised", toFloat(ct.Summary.TotalRaisedAmount)},
		{"Total Net Invested", toFloat(ct.Summary.TotalNetInvestedAmount)},
		{"Remaining To Invest", toFloat(ct.Summary.RemainingToInvest)},
		{"% of Target", toFloat(ct.Summary.PercentageOfTarget)},
	}
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
