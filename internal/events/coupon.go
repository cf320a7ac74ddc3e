// Package events replays financial events against all investors of a
// strategy: interest coupons, target-fund distributions and incremental fund
// calls. Every operation takes the current strategy value and returns a new
// one; the input is never mutated.
package events

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fundora/ledger/internal/domain"
)

// ErrDuplicatePeriod indicates that a coupon for the requested year was
// already simulated on this strategy. Years cannot be re-simulated.
var ErrDuplicatePeriod = errors.New("coupon year already simulated")

var daysPerYear = decimal.NewFromInt(365)

// CouponParams describes one interest coupon period. The rate is implied by
// the NAV move between entry and exit.
type CouponParams struct {
	EntryNAV         decimal.Decimal `json:"entryNav"`
	ExitNAV          decimal.Decimal `json:"exitNav"`
	EntryDate        time.Time       `json:"entryDate"`
	ExitDate         time.Time       `json:"exitDate"`
	DistributionDate time.Time       `json:"distributionDate"`
	Year             int             `json:"year"`
}

// ApplyCoupon distributes the period's interest to every investor: each
// receives sanso x rate x days/365, moved from the reserve wallet to free cash.
func ApplyCoupon(s domain.Strategy, p CouponParams) (domain.Strategy, error) {
	if p.EntryNAV.LessThanOrEqual(decimal.Zero) {
		return domain.Strategy{}, domain.Invalid("entryNav", "must be positive")
	}
	if !p.ExitDate.After(p.EntryDate) {
		return domain.Strategy{}, domain.Invalid("exitDate", "must be after entry date")
	}
	if p.Year <= 0 {
		return domain.Strategy{}, domain.Invalid("year", "must be positive")
	}
	if yearSimulated(s, p.Year) {
		return domain.Strategy{}, fmt.Errorf("year %d: %w", p.Year, ErrDuplicatePeriod)
	}

	interestRate := domain.PercentOf(p.ExitNAV.Sub(p.EntryNAV), p.EntryNAV)
	daysPeriod := wholeDays(p.EntryDate, p.ExitDate)
	timeFactor := decimal.NewFromInt(int64(daysPeriod)).Div(daysPerYear)

	out := s.Clone()
	for i := range out.Investors {
		inv := &out.Investors[i]

		interest := domain.RoundMoney(domain.ApplyPercent(inv.Wallets.Sanso, interestRate).Mul(timeFactor))

		inv.Wallets.Sanso = inv.Wallets.Sanso.Sub(interest)
		inv.Wallets.Investor = inv.Wallets.Investor.Add(interest)
		inv.Transactions.SansoInterest = inv.Transactions.SansoInterest.Add(interest)
		inv.History.SansoInterests = append(inv.History.SansoInterests, domain.CouponRecord{
			Amount:           interest,
			DistributionDate: p.DistributionDate,
			EntryNAV:         p.EntryNAV,
			ExitNAV:          p.ExitNAV,
			InterestRate:     interestRate,
			Year:             p.Year,
			DaysPeriod:       daysPeriod,
		})
	}
	return out, nil
}

// yearSimulated reports whether any investor already holds a coupon record
// for the year. The guard lives inside the operation so no caller can bypass it.
func yearSimulated(s domain.Strategy, year int) bool {
	for _, inv := range s.Investors {
		for _, rec := range inv.History.SansoInterests {
			if rec.Year == year {
				return true
			}
		}
	}
	return false
}

// wholeDays counts calendar days between the two dates. Both are normalized
// to midnight UTC first so zone offsets and DST shifts cannot shave a day off.
func wholeDays(from, to time.Time) int {
	return int(midnightUTC(to).Sub(midnightUTC(from)).Hours() / 24)
}

func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
