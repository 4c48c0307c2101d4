package goal

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"

	"github.com/ricardofontes/goalvault/internal/ledger"
)

const (
	// Early-exit penalty: 2% of the entire redeemed amount, split evenly
	// between the reward pool and the treasury, odd unit to the treasury.
	earlyExitPenaltyBps = 200
	bpsDenominator      = 10000
	maxDonationBps      = 10000

	apyCacheTTL = time.Minute
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=goal
type Repository interface {
	CreateGoal(ctx context.Context, g *Goal) error
	Goal(ctx context.Context, id int64) (*Goal, error)
	SaveGoal(ctx context.Context, g *Goal) error
	GoalsByOwner(ctx context.Context, owner uuid.UUID) ([]*Goal, error)

	Position(ctx context.Context, goalID int64) (*Position, error)
	SavePosition(ctx context.Context, p *Position) error
	DeletePosition(ctx context.Context, goalID int64) error

	SaveVaultConfig(ctx context.Context, currency string, mode Mode, vaultID string) error
}

// Vault is the slice of the vault adapter the goal manager drives.
type Vault interface {
	Place(ctx context.Context, from, receiver string, amount int64) (int64, error)
	RedeemShares(ctx context.Context, shares int64, receiver, owner string) (int64, error)
	PreviewRedeem(ctx context.Context, shares int64) (int64, error)
	CurrentAPY(ctx context.Context) (decimal.Decimal, error)
}

// Router splits withdrawn yield between depositor and donation sink.
type Router interface {
	CanRoute(ctx context.Context, currency string, donationBps int64) error
	RouteYield(ctx context.Context, currency string, totalYield, donationBps int64, depositor uuid.UUID) (int64, int64, error)
}

// Ledger is the slice of the balance rail the goal manager needs.
type Ledger interface {
	Transfer(ctx context.Context, from, to, currency string, amount int64) error
}

type Config struct {
	Repository  Repository
	Router      Router
	Ledger      Ledger
	AdminID     uuid.UUID
	MinDuration time.Duration
	Clock       func() time.Time
}

// Service owns goal lifecycle and per-goal value tracking. It is the only
// share holder on the vaults it drives; depositors hold goals, not shares.
type Service struct {
	mu          sync.Mutex
	repo        Repository
	router      Router
	ledger      Ledger
	vaults      map[VaultKey]Vault
	admin       uuid.UUID
	minDuration time.Duration
	clock       func() time.Time
	apyCache    *cache.Cache
}

func NewService(cfg Config) *Service {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Service{
		repo:        cfg.Repository,
		router:      cfg.Router,
		ledger:      cfg.Ledger,
		vaults:      make(map[VaultKey]Vault),
		admin:       cfg.AdminID,
		minDuration: cfg.MinDuration,
		clock:       clock,
		apyCache:    cache.New(apyCacheTTL, 5*time.Minute),
	}
}

// ConfigureVault registers a vault for a (currency, mode) pair and marks
// the currency supported. Admin only.
func (s *Service) ConfigureVault(ctx context.Context, caller uuid.UUID, currency string, mode Mode, vaultID string, v Vault) error {
	if caller != s.admin {
		return ErrAdminOnly
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.SaveVaultConfig(ctx, currency, mode, vaultID); err != nil {
		return fmt.Errorf("saving vault config: %w", err)
	}

	s.vaults[VaultKey{Currency: currency, Mode: mode}] = v

	return nil
}

func (s *Service) CreateGoal(ctx context.Context, owner uuid.UUID, currency string, mode Mode, target int64, duration time.Duration, donationBps int64) (*Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.currencySupported(currency) {
		return nil, ErrCurrencyNotSupported
	}

	if target <= 0 {
		return nil, ErrZeroAmount
	}

	if duration < s.minDuration {
		return nil, ErrInvalidDuration
	}

	if donationBps < 0 || donationBps > maxDonationBps {
		return nil, ErrInvalidPercentage
	}

	if _, ok := s.vaults[VaultKey{Currency: currency, Mode: mode}]; !ok {
		return nil, ErrVaultNotConfigured
	}

	g := &Goal{
		Owner:       owner,
		Currency:    currency,
		Mode:        mode,
		Target:      target,
		Duration:    duration,
		DonationBps: donationBps,
		Status:      StatusActive,
		CreatedAt:   s.clock(),
	}

	if err := s.repo.CreateGoal(ctx, g); err != nil {
		return nil, fmt.Errorf("creating goal: %w", err)
	}

	return g, nil
}

// Deposit pulls amount from the caller into the goal's vault. Reaching the
// target completes the goal in the same call; yield growth never does.
func (s *Service) Deposit(ctx context.Context, caller uuid.UUID, goalID, amount int64) error {
	if amount <= 0 {
		return ErrZeroAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g, v, err := s.ownedGoal(ctx, caller, goalID)
	if err != nil {
		return err
	}

	if g.Status != StatusActive {
		return ErrGoalNotActive
	}

	minted, err := v.Place(ctx, ledger.UserAccount(caller), ledger.AccountGoalManager, amount)
	if err != nil {
		return err
	}

	now := s.clock()

	pos, err := s.repo.Position(ctx, goalID)
	if err != nil {
		if !errors.Is(err, ErrNoPosition) {
			return fmt.Errorf("loading position: %w", err)
		}

		pos = &Position{GoalID: goalID}
	}

	pos.Principal += amount
	pos.Shares += minted
	pos.UpdatedAt = now

	if err := s.repo.SavePosition(ctx, pos); err != nil {
		return fmt.Errorf("saving position: %w", err)
	}

	g.Deposited += amount
	g.LastDepositAt = &now

	if g.Deposited >= g.Target {
		if err := s.transition(g, StatusCompleted); err != nil {
			return err
		}
	}

	if err := s.repo.SaveGoal(ctx, g); err != nil {
		return fmt.Errorf("saving goal: %w", err)
	}

	return nil
}

// WithdrawCompleted redeems a completed goal: principal back to the owner,
// yield split through the router when a donation percentage is set. The
// position is cleared, so a second call fails with ErrNoPosition.
func (s *Service) WithdrawCompleted(ctx context.Context, caller uuid.UUID, goalID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, v, err := s.ownedGoal(ctx, caller, goalID)
	if err != nil {
		return err
	}

	if g.Status != StatusCompleted {
		return ErrGoalNotCompleted
	}

	pos, err := s.repo.Position(ctx, goalID)
	if err != nil {
		return err
	}

	// refuse before anything moves: a paused or de-whitelisted router must
	// leave the position intact so the owner can retry later
	if g.DonationBps > 0 {
		if err := s.router.CanRoute(ctx, g.Currency, g.DonationBps); err != nil {
			return err
		}
	}

	value, err := v.RedeemShares(ctx, pos.Shares, ledger.AccountGoalManager, ledger.AccountGoalManager)
	if err != nil {
		return err
	}

	yieldEarned := value - pos.Principal
	if yieldEarned < 0 {
		yieldEarned = 0
	}

	// a harvest sweep can leave less than the tracked principal
	principalOut := pos.Principal
	if value < principalOut {
		principalOut = value
	}

	if err := s.repo.DeletePosition(ctx, goalID); err != nil {
		return fmt.Errorf("clearing position: %w", err)
	}

	owner := ledger.UserAccount(caller)

	if principalOut > 0 {
		if err := s.ledger.Transfer(ctx, ledger.AccountGoalManager, owner, g.Currency, principalOut); err != nil {
			return err
		}
	}

	if yieldEarned > 0 {
		if g.DonationBps > 0 {
			if err := s.ledger.Transfer(ctx, ledger.AccountGoalManager, ledger.AccountYieldRouter, g.Currency, yieldEarned); err != nil {
				return err
			}

			if _, _, err := s.router.RouteYield(ctx, g.Currency, yieldEarned, g.DonationBps, caller); err != nil {
				// the router flipped between preflight and routing; the
				// position is already gone, so pay the yield straight to
				// the owner rather than strand it on the router account
				return s.ledger.Transfer(ctx, ledger.AccountYieldRouter, owner, g.Currency, yieldEarned)
			}
		} else if err := s.ledger.Transfer(ctx, ledger.AccountGoalManager, owner, g.Currency, yieldEarned); err != nil {
			return err
		}
	}

	return nil
}

// WithdrawEarly abandons an active goal. The whole redeemed amount, yield
// included, takes the 2% penalty in place of any donation routing.
func (s *Service) WithdrawEarly(ctx context.Context, caller uuid.UUID, goalID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, v, err := s.ownedGoal(ctx, caller, goalID)
	if err != nil {
		return err
	}

	if g.Status != StatusActive {
		return ErrGoalNotActive
	}

	pos, err := s.repo.Position(ctx, goalID)
	if err != nil {
		return err
	}

	total, err := v.RedeemShares(ctx, pos.Shares, ledger.AccountGoalManager, ledger.AccountGoalManager)
	if err != nil {
		return err
	}

	penalty := total * earlyExitPenaltyBps / bpsDenominator
	toRewards := penalty / 2
	toTreasury := penalty - toRewards
	payout := total - penalty

	if err := s.transition(g, StatusAbandoned); err != nil {
		return err
	}

	if err := s.repo.DeletePosition(ctx, goalID); err != nil {
		return fmt.Errorf("clearing position: %w", err)
	}

	if err := s.repo.SaveGoal(ctx, g); err != nil {
		return fmt.Errorf("saving goal: %w", err)
	}

	if payout > 0 {
		if err := s.ledger.Transfer(ctx, ledger.AccountGoalManager, ledger.UserAccount(caller), g.Currency, payout); err != nil {
			return err
		}
	}

	if toRewards > 0 {
		if err := s.ledger.Transfer(ctx, ledger.AccountGoalManager, ledger.AccountRewardPool, g.Currency, toRewards); err != nil {
			return err
		}
	}

	if toTreasury > 0 {
		if err := s.ledger.Transfer(ctx, ledger.AccountGoalManager, ledger.AccountTreasury, g.Currency, toTreasury); err != nil {
			return err
		}
	}

	return nil
}

// SetDonationPercentage updates a goal's donation split. Deliberately not
// gated on goal status; it only has effect on a withdrawal still to come.
func (s *Service) SetDonationPercentage(ctx context.Context, caller uuid.UUID, goalID, donationBps int64) error {
	if donationBps < 0 || donationBps > maxDonationBps {
		return ErrInvalidPercentage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.repo.Goal(ctx, goalID)
	if err != nil {
		return err
	}

	if g.Owner != caller {
		return ErrUnauthorized
	}

	g.DonationBps = donationBps

	if err := s.repo.SaveGoal(ctx, g); err != nil {
		return fmt.Errorf("saving goal: %w", err)
	}

	return nil
}

func (s *Service) GetGoalDetails(ctx context.Context, goalID int64) (*Details, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.repo.Goal(ctx, goalID)
	if err != nil {
		return nil, err
	}

	d := &Details{Goal: g}

	pos, err := s.repo.Position(ctx, goalID)
	if err != nil {
		if errors.Is(err, ErrNoPosition) {
			return d, nil
		}

		return nil, fmt.Errorf("loading position: %w", err)
	}

	v, ok := s.vaults[VaultKey{Currency: g.Currency, Mode: g.Mode}]
	if !ok {
		return nil, ErrVaultNotConfigured
	}

	value, err := v.PreviewRedeem(ctx, pos.Shares)
	if err != nil {
		return nil, err
	}

	d.CurrentValue = value

	if value > pos.Principal {
		d.YieldEarned = value - pos.Principal
	}

	return d, nil
}

func (s *Service) GetUserGoals(ctx context.Context, owner uuid.UUID) ([]*Goal, error) {
	return s.repo.GoalsByOwner(ctx, owner)
}

func (s *Service) GetVaultAPY(ctx context.Context, currency string, mode Mode) (decimal.Decimal, error) {
	key := currency + "/" + string(mode)

	if cached, ok := s.apyCache.Get(key); ok {
		return cached.(decimal.Decimal), nil
	}

	s.mu.Lock()
	v, ok := s.vaults[VaultKey{Currency: currency, Mode: mode}]
	s.mu.Unlock()

	if !ok {
		return decimal.Zero, ErrVaultNotConfigured
	}

	apy, err := v.CurrentAPY(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	s.apyCache.Set(key, apy, cache.DefaultExpiration)

	return apy, nil
}

// GetSupportedCurrencies lists the currencies with at least one registered
// vault. The live registry is the single source of truth here; vault_configs
// only rebuilds it on startup.
func (s *Service) GetSupportedCurrencies(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	var currencies []string

	for key := range s.vaults {
		if !seen[key.Currency] {
			seen[key.Currency] = true
			currencies = append(currencies, key.Currency)
		}
	}

	sort.Strings(currencies)

	return currencies, nil
}

// ownedGoal loads a goal, its vault, and enforces ownership. Callers hold s.mu.
func (s *Service) ownedGoal(ctx context.Context, caller uuid.UUID, goalID int64) (*Goal, Vault, error) {
	g, err := s.repo.Goal(ctx, goalID)
	if err != nil {
		return nil, nil, err
	}

	if g.Owner != caller {
		return nil, nil, ErrUnauthorized
	}

	v, ok := s.vaults[VaultKey{Currency: g.Currency, Mode: g.Mode}]
	if !ok {
		return nil, nil, ErrVaultNotConfigured
	}

	return g, v, nil
}

func (s *Service) transition(g *Goal, to Status) error {
	if !canTransition(g.Status, to) {
		return fmt.Errorf("%w: %s to %s", ErrBadTransition, g.Status, to)
	}

	g.Status = to

	return nil
}

// currencySupported consults the live registry. Callers hold s.mu.
func (s *Service) currencySupported(currency string) bool {
	for key := range s.vaults {
		if key.Currency == currency {
			return true
		}
	}

	return false
}
