package domain

import "github.com/shopspring/decimal"

// CapTableEntry is one display row per investor, consumed by tables and
// exports outside the core.
type CapTableEntry struct {
	InvestorID   string `json:"investorId"`
	InvestorName string `json:"investorName"`

	PaidAmount          decimal.Decimal `json:"paidAmount"`
	InvestedAmount      decimal.Decimal `json:"investedAmount"`
	NonInvestedAmount   decimal.Decimal `json:"nonInvestedAmount"`
	OwnershipPercentage decimal.Decimal `json:"ownershipPercentage"`

	SPVWallet      decimal.Decimal `json:"spvWallet"`
	SansoWallet    decimal.Decimal `json:"sansoWallet"`
	InvestorWallet decimal.Decimal `json:"investorWallet"`

	SansoInterest          decimal.Decimal `json:"sansoInterest"`
	TargetFundDistribution decimal.Decimal `json:"targetFundDistribution"`
	InitialFundCallAmount  decimal.Decimal `json:"initialFundCallAmount"`

	SansoInterestHistory          []CouponRecord       `json:"sansoInterestHistory,omitempty"`
	TargetFundDistributionHistory []DistributionRecord `json:"targetFundDistributionHistory,omitempty"`
	FundCallsHistory              []FundCallRecord     `json:"fundCallsHistory,omitempty"`
}
