package vault

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ricardofontes/goalvault/internal/reserve"
)

type Repository interface {
	State(ctx context.Context) (*State, error)
	SaveState(ctx context.Context, st *State) error
	Shares(ctx context.Context, holder string) (int64, error)
	SetShares(ctx context.Context, holder string, shares int64) error
}

// Ledger is the slice of the balance rail the vault needs.
type Ledger interface {
	Transfer(ctx context.Context, from, to, currency string, amount int64) error
}

type Config struct {
	ID       string
	Currency string
	Mode     string
	// Account is the rail account holding the vault's idle balance.
	Account    string
	Repository Repository
	Reserve    reserve.Reserve
	Ledger     Ledger
	AdminID    uuid.UUID
	Clock      func() time.Time
}

// Service maintains a share ledger over one external reserve plus an idle
// balance. Share conversions are conservative in every direction: mint
// rounds down, burn-by-amount rounds up, shares-to-value rounds down.
// Every mutating entry point runs under one lock, validates, applies its
// bookkeeping, then moves value.
type Service struct {
	mu       sync.Mutex
	id       string
	currency string
	mode     string
	account  string
	repo     Repository
	reserve  reserve.Reserve
	ledger   Ledger
	admin    uuid.UUID
	clock    func() time.Time
}

func NewService(cfg Config) *Service {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Service{
		id:       cfg.ID,
		currency: cfg.Currency,
		mode:     cfg.Mode,
		account:  cfg.Account,
		repo:     cfg.Repository,
		reserve:  cfg.Reserve,
		ledger:   cfg.Ledger,
		admin:    cfg.AdminID,
		clock:    clock,
	}
}

func (s *Service) ID() string       { return s.id }
func (s *Service) Currency() string { return s.currency }
func (s *Service) Mode() string     { return s.mode }

// Place pulls amount from the from account, places it with the external
// reserve and mints shares to receiver. If placement fails the pull is
// compensated and nothing is minted.
func (s *Service) Place(ctx context.Context, from, receiver string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrZeroAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.repo.State(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading vault state: %w", err)
	}

	assets, err := s.totalAssets(ctx, st)
	if err != nil {
		return 0, err
	}

	minted := amount
	if st.TotalShares > 0 && assets > 0 {
		minted = mulDivFloor(amount, st.TotalShares, assets)
	}

	if minted == 0 {
		return 0, ErrZeroShares
	}

	if err := s.ledger.Transfer(ctx, from, s.account, s.currency, amount); err != nil {
		return 0, err
	}

	if err := s.reserve.Place(ctx, amount); err != nil {
		if rbErr := s.ledger.Transfer(ctx, s.account, from, s.currency, amount); rbErr != nil {
			return 0, fmt.Errorf("unwinding failed placement: %w (place: %w)", rbErr, err)
		}

		return 0, fmt.Errorf("placing with reserve: %w", err)
	}

	held, err := s.repo.Shares(ctx, receiver)
	if err != nil {
		return 0, fmt.Errorf("loading shares of %s: %w", receiver, err)
	}

	if err := s.repo.SetShares(ctx, receiver, held+minted); err != nil {
		return 0, fmt.Errorf("crediting shares to %s: %w", receiver, err)
	}

	st.TotalShares += minted
	if err := s.repo.SaveState(ctx, st); err != nil {
		return 0, fmt.Errorf("saving vault state: %w", err)
	}

	return minted, nil
}

// Reclaim burns just enough of owner's shares (rounded up, protecting the
// remaining holders) to withdraw exactly amount to receiver.
func (s *Service) Reclaim(ctx context.Context, amount int64, receiver, owner string) (int64, error) {
	if amount <= 0 {
		return 0, ErrZeroAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.repo.State(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading vault state: %w", err)
	}

	if st.TotalShares == 0 {
		return 0, ErrInsufficientShares
	}

	assets, err := s.totalAssets(ctx, st)
	if err != nil {
		return 0, err
	}

	if assets == 0 {
		return 0, ErrInsufficientShares
	}

	burn := mulDivCeil(amount, st.TotalShares, assets)

	if err := s.withdraw(ctx, st, amount, burn, receiver, owner); err != nil {
		return 0, err
	}

	return burn, nil
}

// RedeemShares converts shares to value first (rounded down), then
// withdraws that value like Reclaim, burning exactly the given shares.
func (s *Service) RedeemShares(ctx context.Context, shares int64, receiver, owner string) (int64, error) {
	if shares <= 0 {
		return 0, ErrZeroAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.repo.State(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading vault state: %w", err)
	}

	if st.TotalShares == 0 {
		return 0, ErrInsufficientShares
	}

	assets, err := s.totalAssets(ctx, st)
	if err != nil {
		return 0, err
	}

	value := mulDivFloor(shares, assets, st.TotalShares)
	if value == 0 {
		return 0, ErrZeroAmount
	}

	if err := s.withdraw(ctx, st, value, shares, receiver, owner); err != nil {
		return 0, err
	}

	return value, nil
}

// withdraw burns shares from owner and pays amount to receiver, sourcing
// the idle balance first and reclaiming any shortfall from the reserve.
// Callers hold s.mu and have validated amount and burn.
func (s *Service) withdraw(ctx context.Context, st *State, amount, burn int64, receiver, owner string) error {
	held, err := s.repo.Shares(ctx, owner)
	if err != nil {
		return fmt.Errorf("loading shares of %s: %w", owner, err)
	}

	if burn > held {
		return ErrInsufficientShares
	}

	if amount > st.Idle {
		shortfall := amount - st.Idle

		if err := s.reserve.Reclaim(ctx, shortfall); err != nil {
			return fmt.Errorf("reclaiming %d from reserve: %w", shortfall, err)
		}

		st.Idle += shortfall
	}

	if err := s.repo.SetShares(ctx, owner, held-burn); err != nil {
		return fmt.Errorf("burning shares of %s: %w", owner, err)
	}

	st.TotalShares -= burn
	st.Idle -= amount

	if err := s.repo.SaveState(ctx, st); err != nil {
		return fmt.Errorf("saving vault state: %w", err)
	}

	if err := s.ledger.Transfer(ctx, s.account, receiver, s.currency, amount); err != nil {
		return err
	}

	return nil
}

// PreviewRedeem reports the current value of shares without moving anything.
func (s *Service) PreviewRedeem(ctx context.Context, shares int64) (int64, error) {
	if shares <= 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.repo.State(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading vault state: %w", err)
	}

	if st.TotalShares == 0 {
		return 0, nil
	}

	assets, err := s.totalAssets(ctx, st)
	if err != nil {
		return 0, err
	}

	return mulDivFloor(shares, assets, st.TotalShares), nil
}

// TotalAssets is the idle balance plus this vault's claim on the reserve.
// It can grow between calls purely from external accrual.
func (s *Service) TotalAssets(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.repo.State(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading vault state: %w", err)
	}

	return s.totalAssets(ctx, st)
}

func (s *Service) totalAssets(ctx context.Context, st *State) (int64, error) {
	valuation, err := s.reserve.Valuation(ctx)
	if err != nil {
		return 0, fmt.Errorf("reading reserve valuation: %w", err)
	}

	return st.Idle + valuation, nil
}

// PendingYield is the growth above the harvest checkpoint, not yet swept.
func (s *Service) PendingYield(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.repo.State(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading vault state: %w", err)
	}

	assets, err := s.totalAssets(ctx, st)
	if err != nil {
		return 0, err
	}

	if assets <= st.Checkpoint {
		return 0, nil
	}

	return assets - st.Checkpoint, nil
}

// HarvestAndDonate sweeps everything above the checkpoint high-water mark
// out of the reserve to the donation recipient, then advances the
// checkpoint to the pre-sweep valuation. Callable by anyone.
func (s *Service) HarvestAndDonate(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.repo.State(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading vault state: %w", err)
	}

	assets, err := s.totalAssets(ctx, st)
	if err != nil {
		return 0, err
	}

	delta := assets - st.Checkpoint
	if delta <= 0 {
		return 0, nil
	}

	if err := s.reserve.Reclaim(ctx, delta); err != nil {
		return 0, fmt.Errorf("reclaiming harvest from reserve: %w", err)
	}

	st.Checkpoint = assets
	if err := s.repo.SaveState(ctx, st); err != nil {
		return 0, fmt.Errorf("saving vault state: %w", err)
	}

	if err := s.ledger.Transfer(ctx, s.account, st.DonationRecipient, s.currency, delta); err != nil {
		return 0, err
	}

	return delta, nil
}

func (s *Service) Info(ctx context.Context) (*Info, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.repo.State(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading vault state: %w", err)
	}

	assets, err := s.totalAssets(ctx, st)
	if err != nil {
		return nil, err
	}

	price := decimal.Zero
	if st.TotalShares > 0 {
		price = decimal.NewFromInt(assets).DivRound(decimal.NewFromInt(st.TotalShares), 8)
	}

	return &Info{
		ID:                s.id,
		Currency:          s.currency,
		Mode:              s.mode,
		TotalShares:       st.TotalShares,
		TotalAssets:       assets,
		Idle:              st.Idle,
		Checkpoint:        st.Checkpoint,
		DonationRecipient: st.DonationRecipient,
		SharePrice:        price,
	}, nil
}

// CurrentAPY reports the reserve's accrual rate as a percentage figure.
// Informational only; value accounting never touches it.
func (s *Service) CurrentAPY(ctx context.Context) (decimal.Decimal, error) {
	if rr, ok := s.reserve.(reserve.RateReporter); ok {
		return decimal.NewFromInt(rr.RateBps()).DivRound(decimal.NewFromInt(100), 2), nil
	}

	return decimal.Zero, nil
}

func (s *Service) SetDonationRecipient(ctx context.Context, caller uuid.UUID, account string) error {
	if caller != s.admin {
		return ErrUnauthorized
	}

	if account == "" {
		return ErrInvalidRecipient
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.repo.State(ctx)
	if err != nil {
		return fmt.Errorf("loading vault state: %w", err)
	}

	st.DonationRecipient = account

	if err := s.repo.SaveState(ctx, st); err != nil {
		return fmt.Errorf("saving vault state: %w", err)
	}

	return nil
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
