package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvestorHistory holds the append-only, time-ordered event logs.
// Records are never mutated or removed once written.
type InvestorHistory struct {
	SansoInterests          []CouponRecord       `json:"sansoInterests"`
	TargetFundDistributions []DistributionRecord `json:"targetFundDistributions"`
	FundCalls               []FundCallRecord     `json:"fundCalls"`
	FundoraFees             []FeeRecord          `json:"fundoraFees"`
}

// CouponRecord logs one interest coupon received from the reserve placement.
type CouponRecord struct {
	Amount           decimal.Decimal `json:"amount"`
	DistributionDate time.Time       `json:"distributionDate"`
	EntryNAV         decimal.Decimal `json:"entryNav"`
	ExitNAV          decimal.Decimal `json:"exitNav"`
	InterestRate     decimal.Decimal `json:"interestRate"`
	Year             int             `json:"year"`
	DaysPeriod       int             `json:"daysPeriod"`
}

// DistributionRecord logs one target-fund distribution.
type DistributionRecord struct {
	Amount           decimal.Decimal `json:"amount"`
	DistributionDate time.Time       `json:"distributionDate"`
	Multiple         decimal.Decimal `json:"multiple"`
	Year             int             `json:"year"`
}

// FundCallRecord logs one fund call. Call #1 is synthetic, written at onboarding.
type FundCallRecord struct {
	CallNumber  int             `json:"callNumber"`
	Amount      decimal.Decimal `json:"amount"`
	Percentage  decimal.Decimal `json:"percentage"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description,omitempty"`
}

// FeeRecord logs fees credited to the fee pool, split by kind.
type FeeRecord struct {
	Date             time.Time       `json:"date"`
	StructurationFee decimal.Decimal `json:"structurationFee"`
	ManagementFee    decimal.Decimal `json:"managementFee"`
	TotalFee         decimal.Decimal `json:"totalFee"`
	Description      string          `json:"description,omitempty"`
}
