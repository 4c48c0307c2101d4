package reserve

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"
)

const secondsPerYear = 365 * 24 * 60 * 60

// Funder is the slice of the balance rail the simulated reserve needs:
// moving placed value in and out, and minting accrued interest.
type Funder interface {
	Transfer(ctx context.Context, from, to, currency string, amount int64) error
	Mint(ctx context.Context, account, currency string, amount int64) error
}

// Accrual selects how the simulated pool earns interest.
type Accrual int

const (
	// AccrualLinear grows the pool continuously at RateBps per year.
	AccrualLinear Accrual = iota
	// AccrualStepped only grows the pool on explicit Step calls.
	AccrualStepped
)

type SimulatedConfig struct {
	// Account is the rail account holding the pooled funds.
	Account  string
	Currency string
	RateBps  int64
	Accrual  Accrual
	Clock    func() time.Time
}

// Simulated is a pooled reserve with internal share accounting, used by
// the test suite and by dev wiring. Interest is minted onto the rail so
// value stays conserved end to end. Liquidity can be capped to simulate
// funds committed elsewhere.
type Simulated struct {
	mu          sync.Mutex
	funder      Funder
	account     string
	currency    string
	rateBps     int64
	accrual     Accrual
	clock       func() time.Time
	lastAccrual time.Time

	pool        int64
	totalShares int64
	shares      map[string]int64
	liquid      int64 // max reclaimable right now; -1 means unlimited
}

func NewSimulated(funder Funder, cfg SimulatedConfig) *Simulated {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Simulated{
		funder:      funder,
		account:     cfg.Account,
		currency:    cfg.Currency,
		rateBps:     cfg.RateBps,
		accrual:     cfg.Accrual,
		clock:       clock,
		lastAccrual: clock(),
		shares:      make(map[string]int64),
		liquid:      -1,
	}
}

func (s *Simulated) RateBps() int64 {
	return s.rateBps
}

// SetLiquidity caps how much the pool will hand back on Reclaim.
// Pass -1 to lift the cap.
func (s *Simulated) SetLiquidity(n int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.liquid = n
}

// Step bumps the pooled valuation by amount, for stepped accrual runs.
func (s *Simulated) Step(ctx context.Context, amount int64) error {
	if amount <= 0 {
		return ErrZeroAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.funder.Mint(ctx, s.account, s.currency, amount); err != nil {
		return fmt.Errorf("minting stepped interest: %w", err)
	}

	s.pool += amount

	return nil
}

// Handle returns client's view of the pool, bound to the rail account the
// client places from and reclaims to.
func (s *Simulated) Handle(client, clientAccount string) *Handle {
	return &Handle{sim: s, client: client, account: clientAccount}
}

// accrue mints linear interest since the last accrual. Callers hold s.mu.
func (s *Simulated) accrue(ctx context.Context) error {
	if s.accrual != AccrualLinear {
		return nil
	}

	now := s.clock()

	secs := int64(now.Sub(s.lastAccrual) / time.Second)
	if secs <= 0 {
		return nil
	}

	s.lastAccrual = s.lastAccrual.Add(time.Duration(secs) * time.Second)

	interest := new(big.Int).Mul(big.NewInt(s.pool), big.NewInt(s.rateBps))
	interest.Mul(interest, big.NewInt(secs))
	interest.Div(interest, big.NewInt(10000*secondsPerYear))

	n := interest.Int64()
	if n <= 0 {
		return nil
	}

	if err := s.funder.Mint(ctx, s.account, s.currency, n); err != nil {
		return fmt.Errorf("minting accrued interest: %w", err)
	}

	s.pool += n

	return nil
}

// Handle implements Reserve for one pool client.
type Handle struct {
	sim     *Simulated
	client  string
	account string
}

func (h *Handle) Place(ctx context.Context, amount int64) error {
	if amount <= 0 {
		return ErrZeroAmount
	}

	s := h.sim

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.accrue(ctx); err != nil {
		return err
	}

	minted := amount
	if s.totalShares > 0 && s.pool > 0 {
		minted = mulDivFloor(amount, s.totalShares, s.pool)
	}

	if err := s.funder.Transfer(ctx, h.account, s.account, s.currency, amount); err != nil {
		return err
	}

	s.pool += amount
	s.totalShares += minted
	s.shares[h.client] += minted

	return nil
}

func (h *Handle) Reclaim(ctx context.Context, amount int64) error {
	if amount <= 0 {
		return ErrZeroAmount
	}

	s := h.sim

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.accrue(ctx); err != nil {
		return err
	}

	if s.liquid >= 0 && amount > s.liquid {
		return ErrInsufficientLiquidity
	}

	if s.totalShares == 0 {
		return ErrInsufficientLiquidity
	}

	claim := mulDivFloor(s.shares[h.client], s.pool, s.totalShares)
	if amount > claim {
		return ErrInsufficientLiquidity
	}

	burn := mulDivCeil(amount, s.totalShares, s.pool)
	if burn > s.shares[h.client] {
		burn = s.shares[h.client]
	}

	if err := s.funder.Transfer(ctx, s.account, h.account, s.currency, amount); err != nil {
		return err
	}

	s.pool -= amount
	s.totalShares -= burn
	s.shares[h.client] -= burn

	if s.liquid >= 0 {
		s.liquid -= amount
	}

	return nil
}

func (h *Handle) Valuation(ctx context.Context) (int64, error) {
	s := h.sim

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.accrue(ctx); err != nil {
		return 0, err
	}

	if s.totalShares == 0 {
		return 0, nil
	}

	return mulDivFloor(s.shares[h.client], s.pool, s.totalShares), nil
}

func (h *Handle) RateBps() int64 {
	return h.sim.RateBps()
}

func mulDivFloor(a, b, den int64) int64 {
	r := new(big.Int).Mul(big.NewInt(a), big.NewInt(b))
	r.Div(r, big.NewInt(den))

	return r.Int64()
}

func mulDivCeil(a, b, den int64) int64 {
	p := new(big.Int).Mul(big.NewInt(a), big.NewInt(b))

	q, m := new(big.Int).DivMod(p, big.NewInt(den), new(big.Int))
	if m.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}

	return q.Int64()
}
