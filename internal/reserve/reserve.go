// Package reserve models the external yield-bearing reserve. The system
// only ever sees the narrow capability surface below; the reserve's
// interest-accrual mechanics stay behind it.
package reserve

import (
	"context"
	"errors"
)

var (
	ErrInsufficientLiquidity = errors.New("reserve: insufficient liquidity")
	ErrZeroAmount            = errors.New("reserve: amount must be positive")
)

// Reserve is one client's view of a pooled external reserve.
type Reserve interface {
	// Place deposits amount into the reserve pool. On error nothing moves.
	Place(ctx context.Context, amount int64) error
	// Reclaim withdraws exactly amount back to the client. If the pool
	// cannot return the full amount it fails with
	// ErrInsufficientLiquidity rather than returning a partial amount.
	Reclaim(ctx context.Context, amount int64) error
	// Valuation reports this client's proportional claim on the pooled
	// valuation, rounded down.
	Valuation(ctx context.Context) (int64, error)
}

// RateReporter is optionally implemented by reserves that can report the
// accrual rate backing them, in basis points per year.
type RateReporter interface {
	RateBps() int64
}
