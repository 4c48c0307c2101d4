package faucet

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/ricardofontes/goalvault/internal/ledger"
)

// Minter is the slice of the balance rail the faucet needs.
type Minter interface {
	Mint(ctx context.Context, account, currency string, amount int64) error
}

type Config struct {
	DripAmount int64
	Interval   time.Duration
	Burst      int
}

type Service struct {
	mu       sync.Mutex
	minter   Minter
	drip     int64
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
}

func NewService(minter Minter, cfg Config) *Service {
	return &Service{
		minter:   minter,
		drip:     cfg.DripAmount,
		limit:    rate.Every(cfg.Interval),
		burst:    cfg.Burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Dispense mints one drip to the caller's account. Each (caller, currency)
// pair has its own token bucket; a drained bucket fails fast rather than
// queueing the request.
func (s *Service) Dispense(ctx context.Context, caller uuid.UUID, currency string) (int64, error) {
	if currency == "" {
		return 0, ErrInvalidCurrency
	}

	if !s.limiter(caller, currency).Allow() {
		return 0, ErrRateLimited
	}

	if err := s.minter.Mint(ctx, ledger.UserAccount(caller), currency, s.drip); err != nil {
		return 0, fmt.Errorf("dispensing drip: %w", err)
	}

	return s.drip, nil
}

func (s *Service) limiter(caller uuid.UUID, currency string) *rate.Limiter {
	key := caller.String() + "/" + currency

	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.limiters[key]
	if !ok {
		l = rate.NewLimiter(s.limit, s.burst)
		s.limiters[key] = l
	}

	return l
}
