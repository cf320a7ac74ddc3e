package api

import (
	"net/http"
	"time"

	"github.com/fundora/ledger/internal/strategy"
)

// NewServer creates an HTTP server with all routes configured.
func NewServer(port string, strategies *strategy.Service) *http.Server {
	handler := NewHandler(strategies)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/strategies", handler.CreateStrategy)
	mux.HandleFunc("GET /api/v1/strategies", handler.ListStrategies)
	mux.HandleFunc("GET /api/v1/strategies/{id}", handler.GetStrategy)
	mux.HandleFunc("POST /api/v1/strategies/{id}/investors", handler.AddInvestors)
	mux.HandleFunc("POST /api/v1/strategies/{id}/coupon", handler.SimulateCoupon)
	mux.HandleFunc("POST /api/v1/strategies/{id}/distribution", handler.SimulateDistribution)
	mux.HandleFunc("POST /api/v1/strategies/{id}/fund-call", handler.SimulateFundCall)
	mux.HandleFunc("GET /api/v1/strategies/{id}/captable", handler.GetCapTable)
	mux.HandleFunc("GET /api/v1/current-strategy", handler.GetCurrentStrategy)
	mux.HandleFunc("PUT /api/v1/current-strategy", handler.SetCurrentStrategy)

	return &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
