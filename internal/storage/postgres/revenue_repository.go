package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// RevenueRepository is the read-only aggregation side; it takes no locks.
type RevenueRepository struct {
	pool *pgxpool.Pool
}

func NewRevenueRepository(pool *pgxpool.Pool) *RevenueRepository {
	return &RevenueRepository{pool: pool}
}

// SumFinalPrices totals billed amounts of completed records whose exit time
// falls in [from, to) for the sector. No matching records yields zero.
func (r *RevenueRepository) SumFinalPrices(ctx context.Context, sector string, from, to time.Time) (decimal.Decimal, error) {
	const query = `
SELECT COALESCE(SUM(final_price), 0)
FROM parking_records
WHERE sector = $1 AND status = 'COMPLETED' AND exit_time >= $2 AND exit_time < $3`

	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, sector, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum final prices: %w", err)
	}
	return total, nil
}
