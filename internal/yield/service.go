package yield

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ricardofontes/goalvault/internal/ledger"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=yield
type Repository interface {
	Settings(ctx context.Context) (*Settings, error)
	SaveSettings(ctx context.Context, s *Settings) error
	IsWhitelisted(ctx context.Context, currency string) (bool, error)
	SetWhitelisted(ctx context.Context, currency string, allowed bool) error
	AddDonation(ctx context.Context, depositor uuid.UUID, currency string, amount int64) error
	GlobalTotal(ctx context.Context, currency string) (int64, error)
	UserTotal(ctx context.Context, depositor uuid.UUID, currency string) (int64, error)
}

// Ledger is the slice of the balance rail the router needs.
type Ledger interface {
	Balance(ctx context.Context, account, currency string) (int64, error)
	Transfer(ctx context.Context, from, to, currency string, amount int64) error
}

// Service splits yield between depositor and donation sink. It holds no
// goal state, only cumulative donation totals and admin switches. The
// caller must have moved the yield onto the router's rail account before
// routing it.
type Service struct {
	mu      sync.Mutex
	repo    Repository
	ledger  Ledger
	account string
	admin   uuid.UUID
}

func NewService(repo Repository, l Ledger, admin uuid.UUID) *Service {
	return &Service{
		repo:    repo,
		ledger:  l,
		account: ledger.AccountYieldRouter,
		admin:   admin,
	}
}

// routable checks the stateless routing preconditions and returns the
// current settings. Callers hold s.mu.
func (s *Service) routable(ctx context.Context, currency string, donationBps int64) (*Settings, error) {
	settings, err := s.repo.Settings(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading router settings: %w", err)
	}

	if settings.Paused {
		return nil, ErrPaused
	}

	if donationBps < 0 || donationBps > MaxDonationBps {
		return nil, ErrInvalidPercentage
	}

	whitelisted, err := s.repo.IsWhitelisted(ctx, currency)
	if err != nil {
		return nil, fmt.Errorf("checking whitelist: %w", err)
	}

	if !whitelisted {
		return nil, ErrNotWhitelisted
	}

	return settings, nil
}

// CanRoute reports whether a RouteYield for this currency and percentage
// would pass the router's preconditions, without moving anything. Callers
// that must not mutate state before routing use it as a preflight.
func (s *Service) CanRoute(ctx context.Context, currency string, donationBps int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.routable(ctx, currency, donationBps)

	return err
}

// RouteYield pays the depositor's part of totalYield to the depositor and
// the donation part to the donation recipient. Bookkeeping is updated
// before any transfer leaves the router.
func (s *Service) RouteYield(ctx context.Context, currency string, totalYield, donationBps int64, depositor uuid.UUID) (int64, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.routable(ctx, currency, donationBps)
	if err != nil {
		return 0, 0, err
	}

	if totalYield <= 0 {
		return 0, 0, ErrZeroAmount
	}

	balance, err := s.ledger.Balance(ctx, s.account, currency)
	if err != nil {
		return 0, 0, fmt.Errorf("reading router balance: %w", err)
	}

	if balance < totalYield {
		return 0, 0, ErrUnfunded
	}

	depositorAmount, donationAmount := CalculateSplit(totalYield, donationBps)

	if donationAmount > 0 {
		if err := s.repo.AddDonation(ctx, depositor, currency, donationAmount); err != nil {
			return 0, 0, fmt.Errorf("recording donation: %w", err)
		}
	}

	if depositorAmount > 0 {
		if err := s.ledger.Transfer(ctx, s.account, ledger.UserAccount(depositor), currency, depositorAmount); err != nil {
			return 0, 0, err
		}
	}

	if donationAmount > 0 {
		if err := s.ledger.Transfer(ctx, s.account, settings.DonationRecipient, currency, donationAmount); err != nil {
			return 0, 0, err
		}
	}

	return depositorAmount, donationAmount, nil
}

// RouteResult is the outcome of one item of a batch route.
type RouteResult struct {
	DepositorAmount int64
	DonationAmount  int64
	Err             error
}

// BatchRouteYield applies RouteYield over parallel arrays. Unequal lengths
// reject the whole batch before any item runs; within a valid batch each
// item is applied independently and earlier items are never rolled back.
func (s *Service) BatchRouteYield(ctx context.Context, currencies []string, totalYields, donationBps []int64, depositors []uuid.UUID) ([]RouteResult, error) {
	n := len(currencies)
	if len(totalYields) != n || len(donationBps) != n || len(depositors) != n {
		return nil, ErrArrayLengthMismatch
	}

	results := make([]RouteResult, n)

	for i := 0; i < n; i++ {
		dep, don, err := s.RouteYield(ctx, currencies[i], totalYields[i], donationBps[i], depositors[i])
		results[i] = RouteResult{DepositorAmount: dep, DonationAmount: don, Err: err}
	}

	return results, nil
}

func (s *Service) SetDonationRecipient(ctx context.Context, caller uuid.UUID, account string) error {
	if caller != s.admin {
		return ErrUnauthorized
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.repo.Settings(ctx)
	if err != nil {
		return fmt.Errorf("loading router settings: %w", err)
	}

	settings.DonationRecipient = account

	return s.repo.SaveSettings(ctx, settings)
}

func (s *Service) SetTokenWhitelist(ctx context.Context, caller uuid.UUID, currency string, allowed bool) error {
	if caller != s.admin {
		return ErrUnauthorized
	}

	return s.repo.SetWhitelisted(ctx, currency, allowed)
}

func (s *Service) SetPaused(ctx context.Context, caller uuid.UUID, paused bool) error {
	if caller != s.admin {
		return ErrUnauthorized
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.repo.Settings(ctx)
	if err != nil {
		return fmt.Errorf("loading router settings: %w", err)
	}

	settings.Paused = paused

	return s.repo.SaveSettings(ctx, settings)
}

// RescueTokens drains amount of currency from the router account to an
// arbitrary destination. Emergency use only; this is the one path that can
// make the donation totals diverge from moved value.
func (s *Service) RescueTokens(ctx context.Context, caller uuid.UUID, currency string, amount int64, to string) error {
	if caller != s.admin {
		return ErrUnauthorized
	}

	if amount <= 0 {
		return ErrZeroAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ledger.Transfer(ctx, s.account, to, currency, amount)
}

func (s *Service) TotalDonationsByUser(ctx context.Context, depositor uuid.UUID, currency string) (int64, error) {
	return s.repo.UserTotal(ctx, depositor, currency)
}

func (s *Service) GlobalStats(ctx context.Context, currency string) (*Stats, error) {
	total, err := s.repo.GlobalTotal(ctx, currency)
	if err != nil {
		return nil, fmt.Errorf("reading global totals: %w", err)
	}

	return &Stats{Currency: currency, TotalDonated: total}, nil
}

func (s *Service) IsTokenWhitelisted(ctx context.Context, currency string) (bool, error) {
	return s.repo.IsWhitelisted(ctx, currency)
}
