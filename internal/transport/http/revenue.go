package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/joaoppegoraro/garage-management/internal/app"
)

// RevenueCalculator is the minimal interface needed to serve revenue reads.
type RevenueCalculator interface {
	DailyRevenue(ctx context.Context, sector string, date time.Time) (app.DailyRevenue, error)
}

const revenueDateLayout = "2006-01-02"

// HandleRevenue returns the handler for the daily revenue query.
func HandleRevenue(svc RevenueCalculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		sector := r.URL.Query().Get("sector")
		rawDate := r.URL.Query().Get("date")

		date, err := time.Parse(revenueDateLayout, rawDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidDate, "date must be formatted YYYY-MM-DD")
			return
		}

		revenue, err := svc.DailyRevenue(r.Context(), sector, date)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := revenueResponse{
			Amount:    revenue.Amount,
			Currency:  revenue.Currency,
			Timestamp: revenue.Timestamp,
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type revenueResponse struct {
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Timestamp time.Time       `json:"timestamp"`
}
