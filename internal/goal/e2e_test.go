package goal_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ricardofontes/goalvault/internal/goal"
	"github.com/ricardofontes/goalvault/internal/ledger"
	"github.com/ricardofontes/goalvault/internal/ledger/ledgertest"
	"github.com/ricardofontes/goalvault/internal/reserve"
	"github.com/ricardofontes/goalvault/internal/vault"
	"github.com/ricardofontes/goalvault/internal/yield"
)

// The fakes below are plain in-memory repositories so the full flow runs
// with real balance arithmetic: deposits land in the reserve, accrued
// yield comes back out, and every final balance can be checked.

type goalRepo struct {
	mu        sync.Mutex
	nextID    int64
	goals     map[int64]*goal.Goal
	positions map[int64]*goal.Position
	vaultIDs  map[goal.VaultKey]string
}

func newGoalRepo() *goalRepo {
	return &goalRepo{
		nextID:    1,
		goals:     make(map[int64]*goal.Goal),
		positions: make(map[int64]*goal.Position),
		vaultIDs:  make(map[goal.VaultKey]string),
	}
}

func (r *goalRepo) CreateGoal(_ context.Context, g *goal.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g.ID = r.nextID
	r.nextID++

	clone := *g
	r.goals[g.ID] = &clone

	return nil
}

func (r *goalRepo) Goal(_ context.Context, id int64) (*goal.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.goals[id]
	if !ok {
		return nil, goal.ErrNotFound
	}

	clone := *g

	return &clone, nil
}

func (r *goalRepo) SaveGoal(_ context.Context, g *goal.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.goals[g.ID]; !ok {
		return goal.ErrNotFound
	}

	clone := *g
	r.goals[g.ID] = &clone

	return nil
}

func (r *goalRepo) GoalsByOwner(_ context.Context, owner uuid.UUID) ([]*goal.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*goal.Goal

	for _, g := range r.goals {
		if g.Owner == owner {
			clone := *g
			out = append(out, &clone)
		}
	}

	return out, nil
}

func (r *goalRepo) Position(_ context.Context, goalID int64) (*goal.Position, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.positions[goalID]
	if !ok {
		return nil, goal.ErrNoPosition
	}

	clone := *p

	return &clone, nil
}

func (r *goalRepo) SavePosition(_ context.Context, p *goal.Position) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *p
	r.positions[p.GoalID] = &clone

	return nil
}

func (r *goalRepo) DeletePosition(_ context.Context, goalID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.positions, goalID)

	return nil
}

func (r *goalRepo) SaveVaultConfig(_ context.Context, currency string, mode goal.Mode, vaultID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.vaultIDs[goal.VaultKey{Currency: currency, Mode: mode}] = vaultID

	return nil
}

type vaultRepo struct {
	mu     sync.Mutex
	st     vault.State
	shares map[string]int64
}

func newVaultRepo() *vaultRepo {
	return &vaultRepo{
		st:     vault.State{DonationRecipient: ledger.AccountDonationSink},
		shares: make(map[string]int64),
	}
}

func (r *vaultRepo) State(context.Context) (*vault.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st := r.st

	return &st, nil
}

func (r *vaultRepo) SaveState(_ context.Context, st *vault.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.st = *st

	return nil
}

func (r *vaultRepo) Shares(_ context.Context, holder string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.shares[holder], nil
}

func (r *vaultRepo) SetShares(_ context.Context, holder string, shares int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.shares[holder] = shares

	return nil
}

type yieldRepo struct {
	mu         sync.Mutex
	settings   yield.Settings
	whitelist  map[string]bool
	totals     map[string]int64
	userTotals map[uuid.UUID]map[string]int64
}

func newYieldRepo() *yieldRepo {
	return &yieldRepo{
		settings:   yield.Settings{DonationRecipient: ledger.AccountDonationSink},
		whitelist:  make(map[string]bool),
		totals:     make(map[string]int64),
		userTotals: make(map[uuid.UUID]map[string]int64),
	}
}

func (r *yieldRepo) Settings(context.Context) (*yield.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.settings

	return &s, nil
}

func (r *yieldRepo) SaveSettings(_ context.Context, s *yield.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.settings = *s

	return nil
}

func (r *yieldRepo) IsWhitelisted(_ context.Context, currency string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.whitelist[currency], nil
}

func (r *yieldRepo) SetWhitelisted(_ context.Context, currency string, allowed bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.whitelist[currency] = allowed

	return nil
}

func (r *yieldRepo) AddDonation(_ context.Context, depositor uuid.UUID, currency string, amount int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.totals[currency] += amount

	if r.userTotals[depositor] == nil {
		r.userTotals[depositor] = make(map[string]int64)
	}

	r.userTotals[depositor][currency] += amount

	return nil
}

func (r *yieldRepo) GlobalTotal(_ context.Context, currency string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.totals[currency], nil
}

func (r *yieldRepo) UserTotal(_ context.Context, depositor uuid.UUID, currency string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.userTotals[depositor][currency], nil
}

type harness struct {
	svc    *goal.Service
	router *yield.Service
	rail   *ledger.Service
	sim    *reserve.Simulated
	admin  uuid.UUID
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	ctx := context.Background()
	admin := uuid.New()
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	rail := ledger.NewService(ledgertest.New())

	sim := reserve.NewSimulated(rail, reserve.SimulatedConfig{
		Account:  ledger.ReserveAccount("sim"),
		Currency: "BRL",
		RateBps:  450,
		Accrual:  reserve.AccrualStepped,
		Clock:    clock,
	})

	vaultAccount := ledger.VaultAccount("brl-lite")

	vaultSvc := vault.NewService(vault.Config{
		ID:         "brl-lite",
		Currency:   "BRL",
		Mode:       "lite",
		Account:    vaultAccount,
		Repository: newVaultRepo(),
		Reserve:    sim.Handle("brl-lite", vaultAccount),
		Ledger:     rail,
		AdminID:    admin,
		Clock:      clock,
	})

	router := yield.NewService(newYieldRepo(), rail, admin)
	require.NoError(t, router.SetTokenWhitelist(ctx, admin, "BRL", true))

	svc := goal.NewService(goal.Config{
		Repository:  newGoalRepo(),
		Router:      router,
		Ledger:      rail,
		AdminID:     admin,
		MinDuration: 7 * 24 * time.Hour,
		Clock:       clock,
	})
	require.NoError(t, svc.ConfigureVault(ctx, admin, "BRL", goal.ModeLite, "brl-lite", vaultSvc))

	return &harness{svc: svc, router: router, rail: rail, sim: sim, admin: admin}
}

func (h *harness) balance(t *testing.T, account string) int64 {
	t.Helper()

	n, err := h.rail.Balance(context.Background(), account, "BRL")
	require.NoError(t, err)

	return n
}

func TestGoalLifecycle_CompleteAndWithdraw(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	user := uuid.New()

	require.NoError(t, h.rail.Mint(ctx, ledger.UserAccount(user), "BRL", 1000))

	g, err := h.svc.CreateGoal(ctx, user, "BRL", goal.ModeLite, 1000, 30*24*time.Hour, 3000)
	require.NoError(t, err)

	// the full deposit hits the target, completing the goal in-line
	require.NoError(t, h.svc.Deposit(ctx, user, g.ID, 1000))
	assert.Zero(t, h.balance(t, ledger.UserAccount(user)))

	goals, err := h.svc.GetUserGoals(ctx, user)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, goal.StatusCompleted, goals[0].Status)

	// reserve earns 100; the position is now worth 1100
	require.NoError(t, h.sim.Step(ctx, 100))

	d, err := h.svc.GetGoalDetails(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1100), d.CurrentValue)
	assert.Equal(t, int64(100), d.YieldEarned)

	require.NoError(t, h.svc.WithdrawCompleted(ctx, user, g.ID))

	// principal back in full, yield split 70/30 per the 3000 bps setting
	assert.Equal(t, int64(1070), h.balance(t, ledger.UserAccount(user)))
	assert.Equal(t, int64(30), h.balance(t, ledger.AccountDonationSink))
	assert.Zero(t, h.balance(t, ledger.AccountGoalManager))
	assert.Zero(t, h.balance(t, ledger.AccountYieldRouter))
	assert.Zero(t, h.balance(t, ledger.VaultAccount("brl-lite")))

	donated, err := h.router.TotalDonationsByUser(ctx, user, "BRL")
	require.NoError(t, err)
	assert.Equal(t, int64(30), donated)

	// the position is gone; withdrawing again fails
	assert.ErrorIs(t, h.svc.WithdrawCompleted(ctx, user, g.ID), goal.ErrNoPosition)
}

func TestGoalLifecycle_PausedRouterBlocksWithdrawalCleanly(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	user := uuid.New()

	require.NoError(t, h.rail.Mint(ctx, ledger.UserAccount(user), "BRL", 1000))

	g, err := h.svc.CreateGoal(ctx, user, "BRL", goal.ModeLite, 1000, 30*24*time.Hour, 3000)
	require.NoError(t, err)
	require.NoError(t, h.svc.Deposit(ctx, user, g.ID, 1000))
	require.NoError(t, h.sim.Step(ctx, 100))

	require.NoError(t, h.router.SetPaused(ctx, h.admin, true))

	// the withdrawal is refused before anything moves: the position keeps
	// its full value and no balance has shifted
	assert.ErrorIs(t, h.svc.WithdrawCompleted(ctx, user, g.ID), yield.ErrPaused)

	assert.Zero(t, h.balance(t, ledger.UserAccount(user)))
	assert.Zero(t, h.balance(t, ledger.AccountGoalManager))
	assert.Zero(t, h.balance(t, ledger.AccountYieldRouter))
	assert.Zero(t, h.balance(t, ledger.AccountDonationSink))

	d, err := h.svc.GetGoalDetails(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1100), d.CurrentValue)

	// unpausing makes the same withdrawal go through in full
	require.NoError(t, h.router.SetPaused(ctx, h.admin, false))
	require.NoError(t, h.svc.WithdrawCompleted(ctx, user, g.ID))

	assert.Equal(t, int64(1070), h.balance(t, ledger.UserAccount(user)))
	assert.Equal(t, int64(30), h.balance(t, ledger.AccountDonationSink))
	assert.Zero(t, h.balance(t, ledger.AccountYieldRouter))
}

func TestGoalLifecycle_EarlyExitPenalty(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	user := uuid.New()

	require.NoError(t, h.rail.Mint(ctx, ledger.UserAccount(user), "BRL", 500))

	g, err := h.svc.CreateGoal(ctx, user, "BRL", goal.ModeLite, 1000, 30*24*time.Hour, 3000)
	require.NoError(t, err)

	require.NoError(t, h.svc.Deposit(ctx, user, g.ID, 500))

	// still short of the target, so this is an early exit: 2% of the
	// whole redemption is withheld, split between rewards and treasury
	require.NoError(t, h.svc.WithdrawEarly(ctx, user, g.ID))

	assert.Equal(t, int64(490), h.balance(t, ledger.UserAccount(user)))
	assert.Equal(t, int64(5), h.balance(t, ledger.AccountRewardPool))
	assert.Equal(t, int64(5), h.balance(t, ledger.AccountTreasury))
	assert.Zero(t, h.balance(t, ledger.AccountDonationSink))

	goals, err := h.svc.GetUserGoals(ctx, user)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, goal.StatusAbandoned, goals[0].Status)

	// an abandoned goal takes no further deposits
	assert.ErrorIs(t, h.svc.Deposit(ctx, user, g.ID, 100), goal.ErrGoalNotActive)
}
