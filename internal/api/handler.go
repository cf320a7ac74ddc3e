// Package api exposes the strategy ledger over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/fundora/ledger/internal/captable"
	"github.com/fundora/ledger/internal/domain"
	"github.com/fundora/ledger/internal/events"
	"github.com/fundora/ledger/internal/onboarding"
	"github.com/fundora/ledger/internal/store"
	"github.com/fundora/ledger/internal/strategy"
)

// Handler provides HTTP endpoints for the strategy API.
type Handler struct {
	strategies *strategy.Service
}

// NewHandler creates a new API handler.
func NewHandler(strategies *strategy.Service) *Handler {
	return &Handler{strategies: strategies}
}

// CreateStrategy handles POST /api/v1/strategies.
func (h *Handler) CreateStrategy(w http.ResponseWriter, r *http.Request) {
	var p strategy.CreateParams
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s, err := h.strategies.Create(r.Context(), p)
	if err != nil {
		h.handleError(w, err, "failed to create strategy")
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

// ListStrategies handles GET /api/v1/strategies.
func (h *Handler) ListStrategies(w http.ResponseWriter, r *http.Request) {
	list, err := h.strategies.List(r.Context())
	if err != nil {
		h.handleError(w, err, "failed to list strategies")
		return
	}
	if list == nil {
		list = []domain.Strategy{}
	}
	writeJSON(w, http.StatusOK, list)
}

// GetStrategy handles GET /api/v1/strategies/{id}.
func (h *Handler) GetStrategy(w http.ResponseWriter, r *http.Request) {
	s, err := h.strategies.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.handleError(w, err, "failed to get strategy")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

type addInvestorsRequest struct {
	Investors []onboarding.Prospect `json:"investors"`
}

type addInvestorsResponse struct {
	Strategy   domain.Strategy        `json:"strategy"`
	Adjustment *onboarding.Adjustment `json:"adjustment,omitempty"`
}

// AddInvestors handles POST /api/v1/strategies/{id}/investors.
func (h *Handler) AddInvestors(w http.ResponseWriter, r *http.Request) {
	var req addInvestorsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s, adjustment, err := h.strategies.AddInvestors(r.Context(), r.PathValue("id"), req.Investors)
	if err != nil {
		h.handleError(w, err, "failed to add investors")
		return
	}
	writeJSON(w, http.StatusOK, addInvestorsResponse{Strategy: s, Adjustment: adjustment})
}

// SimulateCoupon handles POST /api/v1/strategies/{id}/coupon.
func (h *Handler) SimulateCoupon(w http.ResponseWriter, r *http.Request) {
	var p events.CouponParams
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s, err := h.strategies.SimulateCoupon(r.Context(), r.PathValue("id"), p)
	if err != nil {
		h.handleError(w, err, "failed to simulate coupon")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// SimulateDistribution handles POST /api/v1/strategies/{id}/distribution.
func (h *Handler) SimulateDistribution(w http.ResponseWriter, r *http.Request) {
	var p events.DistributionParams
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s, err := h.strategies.SimulateDistribution(r.Context(), r.PathValue("id"), p)
	if err != nil {
		h.handleError(w, err, "failed to simulate distribution")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

type fundCallRequest struct {
	CallNumber     int             `json:"callNumber"`
	CallPercentage decimal.Decimal `json:"callPercentage"`
}

// SimulateFundCall handles POST /api/v1/strategies/{id}/fund-call.
func (h *Handler) SimulateFundCall(w http.ResponseWriter, r *http.Request) {
	var req fundCallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s, err := h.strategies.SimulateFundCall(r.Context(), r.PathValue("id"), req.CallNumber, req.CallPercentage)
	if err != nil {
		h.handleError(w, err, "failed to simulate fund call")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

type capTableResponse struct {
	Entries []domain.CapTableEntry `json:"entries"`
	Summary captable.Summary       `json:"summary"`
}

// GetCapTable handles GET /api/v1/strategies/{id}/captable.
func (h *Handler) GetCapTable(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	entries, err := h.strategies.CapTable(r.Context(), id)
	if err != nil {
		h.handleError(w, err, "failed to build cap table")
		return
	}
	summary, err := h.strategies.Summary(r.Context(), id)
	if err != nil {
		h.handleError(w, err, "failed to build summary")
		return
	}
	if entries == nil {
		entries = []domain.CapTableEntry{}
	}
	writeJSON(w, http.StatusOK, capTableResponse{Entries: entries, Summary: summary})
}

// GetCurrentStrategy handles GET /api/v1/current-strategy.
func (h *Handler) GetCurrentStrategy(w http.ResponseWriter, r *http.Request) {
	s, err := h.strategies.Current(r.Context())
	if err != nil {
		h.handleError(w, err, "failed to get current strategy")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

type selectStrategyRequest struct {
	ID string `json:"id"`
}

// SetCurrentStrategy handles PUT /api/v1/current-strategy.
func (h *Handler) SetCurrentStrategy(w http.ResponseWriter, r *http.Request) {
	var req selectStrategyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.strategies.SelectCurrent(r.Context(), req.ID); err != nil {
		h.handleError(w, err, "failed to select strategy")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"currentStrategyId": req.ID})
}

// handleError maps domain errors to HTTP status codes.
func (h *Handler) handleError(w http.ResponseWriter, err error, logMsg string) {
	var verr *domain.ValidationError
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "strategy not found")
	case errors.Is(err, strategy.ErrNoCurrentStrategy):
		writeError(w, http.StatusNotFound, "no strategy selected")
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, events.ErrDuplicatePeriod):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, onboarding.ErrCapacityExceeded):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.Error(logMsg, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Warn("failed to write HTTP response body", "error", err)
		return
	}
	_, _ = w.Write([]byte("\n"))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
