// Package strategy is the application service: it loads strategies from the
// store, runs the pure ledger operations against them and persists the result.
package strategy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fundora/ledger/internal/captable"
	"github.com/fundora/ledger/internal/domain"
	"github.com/fundora/ledger/internal/events"
	"github.com/fundora/ledger/internal/onboarding"
)

// ErrNoCurrentStrategy indicates that no strategy has been selected yet.
var ErrNoCurrentStrategy = errors.New("no strategy selected")

// The subscription target is 120% of the net allocation, leaving headroom
// for fees and the bond reserve.
var indicativeRatio = decimal.RequireFromString("1.2")

var hundred = decimal.NewFromInt(100)

// Store is the persistence dependency of the service.
type Store interface {
	ListStrategies(ctx context.Context) ([]domain.Strategy, error)
	GetStrategy(ctx context.Context, id string) (domain.Strategy, error)
	SaveStrategy(ctx context.Context, s domain.Strategy) error
	CurrentStrategyID(ctx context.Context) (string, error)
	SetCurrentStrategyID(ctx context.Context, id string) error
}

// Service orchestrates strategy lifecycle and event simulation.
type Service struct {
	store          Store
	defaultBalance decimal.Decimal
	now            func() time.Time
}

// NewService creates a new strategy Service. The store is required.
func NewService(st Store, defaultBalance decimal.Decimal) *Service {
	if st == nil {
		panic("strategy.NewService: store is nil")
	}
	return &Service{
		store:          st,
		defaultBalance: defaultBalance,
		now:            time.Now,
	}
}

// CreateParams holds the strategy configuration supplied by the caller.
// BondFundPercentage and IndicativeAmount are derived, never accepted.
type CreateParams struct {
	Name                  string          `json:"name"`
	NetTargetAllocation   decimal.Decimal `json:"netTargetAllocation"`
	TargetFundPercentage  decimal.Decimal `json:"targetFundPercentage"`
	InitialCallPercentage decimal.Decimal `json:"initialCallPercentage"`
	StartDate             time.Time       `json:"startDate"`
	InvestmentHorizon     time.Time       `json:"investmentHorizon"`
}

// Create validates the configuration, derives the dependent fields and
// persists a new open strategy with no investors.
func (s *Service) Create(ctx context.Context, p CreateParams) (domain.Strategy, error) {
	if p.Name == "" {
		return domain.Strategy{}, domain.Invalid("name", "must not be empty")
	}
	if p.NetTargetAllocation.LessThanOrEqual(decimal.Zero) {
		return domain.Strategy{}, domain.Invalid("netTargetAllocation", "must be positive")
	}
	if p.TargetFundPercentage.IsNegative() || p.TargetFundPercentage.GreaterThan(hundred) {
		return domain.Strategy{}, domain.Invalid("targetFundPercentage", "must be between 0 and 100")
	}
	if !p.InvestmentHorizon.After(p.StartDate) {
		return domain.Strategy{}, domain.Invalid("investmentHorizon", "must be after start date")
	}

	initialCall := p.InitialCallPercentage
	if initialCall.IsZero() {
		initialCall = p.TargetFundPercentage
	}
	if initialCall.IsNegative() || initialCall.GreaterThan(hundred) {
		return domain.Strategy{}, domain.Invalid("initialCallPercentage", "must be between 0 and 100")
	}

	out := domain.Strategy{
		ID:                    uuid.NewString(),
		Name:                  p.Name,
		NetTargetAllocation:   p.NetTargetAllocation,
		TargetFundPercentage:  p.TargetFundPercentage,
		BondFundPercentage:    hundred.Sub(p.TargetFundPercentage),
		InitialCallPercentage: initialCall,
		StartDate:             p.StartDate,
		InvestmentHorizon:     p.InvestmentHorizon,
		DurationYears:         durationYears(p.StartDate, p.InvestmentHorizon),
		IndicativeAmount:      domain.RoundMoney(p.NetTargetAllocation.Mul(indicativeRatio)),
		RemainingToInvest:     p.NetTargetAllocation,
		Status:                domain.StatusOpen,
		CreatedAt:             s.now(),
	}

	if err := s.store.SaveStrategy(ctx, out); err != nil {
		return domain.Strategy{}, fmt.Errorf("saving strategy: %w", err)
	}
	slog.Info("strategy created", "id", out.ID, "name", out.Name,
		"indicativeAmount", out.IndicativeAmount)
	return out, nil
}

// List returns all strategies in creation order.
func (s *Service) List(ctx context.Context) ([]domain.Strategy, error) {
	return s.store.ListStrategies(ctx)
}

// Get returns one strategy by id.
func (s *Service) Get(ctx context.Context, id string) (domain.Strategy, error) {
	return s.store.GetStrategy(ctx, id)
}

// AddInvestors onboards a batch of prospects and persists the updated
// strategy. The returned adjustment is non-nil when the batch was scaled to
// fit the subscription window.
func (s *Service) AddInvestors(ctx context.Context, id string, prospects []onboarding.Prospect) (domain.Strategy, *onboarding.Adjustment, error) {
	current, err := s.openStrategy(ctx, id)
	if err != nil {
		return domain.Strategy{}, nil, err
	}

	updated, adjustment, err := onboarding.AddInvestors(current, prospects, s.defaultBalance, s.now())
	if err != nil {
		return domain.Strategy{}, nil, err
	}
	if adjustment != nil {
		slog.Warn("investor batch adjusted to subscription window",
			"strategy", id, "kind", adjustment.Kind,
			"factor", adjustment.Factor, "percentageOfTarget", adjustment.PercentageOfTarget)
	}

	if err := s.store.SaveStrategy(ctx, updated); err != nil {
		return domain.Strategy{}, nil, fmt.Errorf("saving strategy: %w", err)
	}
	return updated, adjustment, nil
}

// SimulateCoupon applies one interest coupon period and persists the result.
func (s *Service) SimulateCoupon(ctx context.Context, id string, p events.CouponParams) (domain.Strategy, error) {
	return s.mutate(ctx, id, func(current domain.Strategy) (domain.Strategy, error) {
		return events.ApplyCoupon(current, p)
	})
}

// SimulateDistribution applies one target-fund distribution and persists the result.
func (s *Service) SimulateDistribution(ctx context.Context, id string, p events.DistributionParams) (domain.Strategy, error) {
	return s.mutate(ctx, id, func(current domain.Strategy) (domain.Strategy, error) {
		return events.ApplyDistribution(current, p)
	})
}

// SimulateFundCall applies one incremental fund call and persists the result.
func (s *Service) SimulateFundCall(ctx context.Context, id string, callNumber int, callPercentage decimal.Decimal) (domain.Strategy, error) {
	return s.mutate(ctx, id, func(current domain.Strategy) (domain.Strategy, error) {
		return events.ApplyFundCall(current, callNumber, callPercentage, s.now())
	})
}

// CapTable builds the per-investor cap table rows for one strategy.
func (s *Service) CapTable(ctx context.Context, id string) ([]domain.CapTableEntry, error) {
	current, err := s.store.GetStrategy(ctx, id)
	if err != nil {
		return nil, err
	}
	return captable.Build(current), nil
}

// Summary builds the fundraising summary for one strategy.
func (s *Service) Summary(ctx context.Context, id string) (captable.Summary, error) {
	current, err := s.store.GetStrategy(ctx, id)
	if err != nil {
		return captable.Summary{}, err
	}
	return captable.Summarize(current), nil
}

// Current returns the selected strategy, or ErrNoCurrentStrategy when none is selected.
func (s *Service) Current(ctx context.Context) (domain.Strategy, error) {
	id, err := s.store.CurrentStrategyID(ctx)
	if err != nil {
		return domain.Strategy{}, fmt.Errorf("reading current strategy id: %w", err)
	}
	if id == "" {
		return domain.Strategy{}, ErrNoCurrentStrategy
	}
	return s.store.GetStrategy(ctx, id)
}

// SelectCurrent marks the strategy as the selected one. The id must exist.
func (s *Service) SelectCurrent(ctx context.Context, id string) error {
	return s.store.SetCurrentStrategyID(ctx, id)
}

func (s *Service) mutate(ctx context.Context, id string, op func(domain.Strategy) (domain.Strategy, error)) (domain.Strategy, error) {
	current, err := s.openStrategy(ctx, id)
	if err != nil {
		return domain.Strategy{}, err
	}

	updated, err := op(current)
	if err != nil {
		return domain.Strategy{}, err
	}

	if err := s.store.SaveStrategy(ctx, updated); err != nil {
		return domain.Strategy{}, fmt.Errorf("saving strategy: %w", err)
	}
	return updated, nil
}

func (s *Service) openStrategy(ctx context.Context, id string) (domain.Strategy, error) {
	current, err := s.store.GetStrategy(ctx, id)
	if err != nil {
		return domain.Strategy{}, err
	}
	if current.Status == domain.StatusClosed {
		return domain.Strategy{}, domain.Invalid("status", "strategy is closed")
	}
	return current, nil
}

// durationYears counts whole years between the two dates, at least one.
func durationYears(start, horizon time.Time) int {
	years := horizon.Year() - start.Year()
	anniversary := start.AddDate(years, 0, 0)
	if anniversary.After(horizon) {
		years--
	}
	if years < 1 {
		years = 1
	}
	return years
}
