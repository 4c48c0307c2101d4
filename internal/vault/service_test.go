package vault_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ricardofontes/goalvault/internal/ledger"
	"github.com/ricardofontes/goalvault/internal/ledger/ledgertest"
	"github.com/ricardofontes/goalvault/internal/reserve"
	"github.com/ricardofontes/goalvault/internal/vault"
)

const (
	vaultID      = "brl-lite"
	depositor    = "user:depositor"
	holder       = ledger.AccountGoalManager
	reserveIdent = "reserve:sim"
)

// memRepo is an in-memory vault repository. The share-price and rounding
// properties need real state evolving across calls, which expectation
// mocks cannot give us.
type memRepo struct {
	mu     sync.Mutex
	st     vault.State
	shares map[string]int64
}

func newMemRepo() *memRepo {
	return &memRepo{
		st:     vault.State{DonationRecipient: ledger.AccountDonationSink},
		shares: make(map[string]int64),
	}
}

func (r *memRepo) State(context.Context) (*vault.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := r.st

	return &cp, nil
}

func (r *memRepo) SaveState(_ context.Context, st *vault.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.st = *st

	return nil
}

func (r *memRepo) Shares(_ context.Context, holder string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.shares[holder], nil
}

func (r *memRepo) SetShares(_ context.Context, holder string, shares int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.shares[holder] = shares

	return nil
}

type fixture struct {
	svc   *vault.Service
	repo  *memRepo
	rail  *ledger.Service
	sim   *reserve.Simulated
	admin uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		repo:  newMemRepo(),
		rail:  ledger.NewService(ledgertest.New()),
		admin: uuid.New(),
	}

	f.sim = reserve.NewSimulated(f.rail, reserve.SimulatedConfig{
		Account:  reserveIdent,
		Currency: "BRL",
		Accrual:  reserve.AccrualStepped,
		Clock:    func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) },
	})

	account := ledger.VaultAccount(vaultID)

	f.svc = vault.NewService(vault.Config{
		ID:         vaultID,
		Currency:   "BRL",
		Mode:       "lite",
		Account:    account,
		Repository: f.repo,
		Reserve:    f.sim.Handle(vaultID, account),
		Ledger:     f.rail,
		AdminID:    f.admin,
	})

	require.NoError(t, f.rail.Mint(context.Background(), depositor, "BRL", 10_000_000))

	return f
}

func TestService_Place(t *testing.T) {
	ctx := context.Background()

	t.Run("FirstDepositMintsOneToOne", func(t *testing.T) {
		f := newFixture(t)

		shares, err := f.svc.Place(ctx, depositor, holder, 1000)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), shares)

		assets, err := f.svc.TotalAssets(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), assets)
	})

	t.Run("ProportionalAfterAccrual", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Place(ctx, depositor, holder, 1000)
		require.NoError(t, err)

		require.NoError(t, f.sim.Step(ctx, 100)) // assets now 1100

		shares, err := f.svc.Place(ctx, depositor, holder, 1000)
		require.NoError(t, err)
		assert.Equal(t, int64(909), shares) // floor(1000*1000/1100)
	})

	t.Run("ZeroAmount", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Place(ctx, depositor, holder, 0)
		assert.ErrorIs(t, err, vault.ErrZeroAmount)
	})

	t.Run("UnfundedCallerMovesNothing", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Place(ctx, "user:broke", holder, 1000)
		assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)

		assets, err := f.svc.TotalAssets(ctx)
		require.NoError(t, err)
		assert.Zero(t, assets)
	})
}

func TestService_Reclaim(t *testing.T) {
	ctx := context.Background()

	t.Run("BurnsSharesRoundedUp", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Place(ctx, depositor, holder, 1000)
		require.NoError(t, err)
		require.NoError(t, f.sim.Step(ctx, 100)) // 1000 shares now worth 1100

		burned, err := f.svc.Reclaim(ctx, 100, depositor, holder)
		require.NoError(t, err)
		assert.Equal(t, int64(91), burned) // ceil(100*1000/1100)
	})

	t.Run("LiquidityShortfallMovesNothing", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Place(ctx, depositor, holder, 1000)
		require.NoError(t, err)

		f.sim.SetLiquidity(0)

		_, err = f.svc.Reclaim(ctx, 500, depositor, holder)
		assert.ErrorIs(t, err, reserve.ErrInsufficientLiquidity)

		shares, err := f.repo.Shares(ctx, holder)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), shares)

		assets, err := f.svc.TotalAssets(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), assets)
	})

	t.Run("MoreThanHeldFails", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Place(ctx, depositor, holder, 1000)
		require.NoError(t, err)

		_, err = f.svc.Reclaim(ctx, 2000, depositor, holder)
		assert.ErrorIs(t, err, vault.ErrInsufficientShares)
	})
}

func TestService_RedeemShares(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Place(ctx, depositor, holder, 1000)
	require.NoError(t, err)
	require.NoError(t, f.sim.Step(ctx, 100))

	before, err := f.rail.Balance(ctx, depositor, "BRL")
	require.NoError(t, err)

	value, err := f.svc.RedeemShares(ctx, 91, depositor, holder)
	require.NoError(t, err)
	assert.Equal(t, int64(100), value) // floor(91*1100/1000)

	after, err := f.rail.Balance(ctx, depositor, "BRL")
	require.NoError(t, err)
	assert.Equal(t, before+100, after)

	shares, err := f.repo.Shares(ctx, holder)
	require.NoError(t, err)
	assert.Equal(t, int64(909), shares)
}

func TestService_HarvestAndDonate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Place(ctx, depositor, holder, 1000)
	require.NoError(t, err)
	require.NoError(t, f.sim.Step(ctx, 50))

	// the checkpoint is a raw high-water mark: deposits count toward the
	// delta, so the sweep takes everything above it, principal included
	pending, err := f.svc.PendingYield(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1050), pending)

	harvested, err := f.svc.HarvestAndDonate(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1050), harvested)

	sink, err := f.rail.Balance(ctx, ledger.AccountDonationSink, "BRL")
	require.NoError(t, err)
	assert.Equal(t, int64(1050), sink)

	// nothing new accrued: a second sweep is a no-op
	harvested, err = f.svc.HarvestAndDonate(ctx)
	require.NoError(t, err)
	assert.Zero(t, harvested)

	pending, err = f.svc.PendingYield(ctx)
	require.NoError(t, err)
	assert.Zero(t, pending)
}

func TestService_SharePriceNonDecreasing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	price := func() (int64, int64) {
		info, err := f.svc.Info(ctx)
		require.NoError(t, err)

		return info.TotalAssets, info.TotalShares
	}

	// cross-multiplied comparison avoids fractional share prices
	assertNotBelow := func(a1, s1, a2, s2 int64) {
		t.Helper()

		if s1 == 0 || s2 == 0 {
			return
		}

		assert.LessOrEqual(t, a1*s2, a2*s1, "share price decreased")
	}

	_, err := f.svc.Place(ctx, depositor, holder, 1000)
	require.NoError(t, err)

	a1, s1 := price()

	_, err = f.svc.Place(ctx, depositor, holder, 333)
	require.NoError(t, err)

	a2, s2 := price()
	assertNotBelow(a1, s1, a2, s2)

	_, err = f.svc.Reclaim(ctx, 177, depositor, holder)
	require.NoError(t, err)

	a3, s3 := price()
	assertNotBelow(a2, s2, a3, s3)

	_, err = f.svc.RedeemShares(ctx, 101, depositor, holder)
	require.NoError(t, err)

	a4, s4 := price()
	assertNotBelow(a3, s3, a4, s4)
}

func TestService_SetDonationRecipient(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	err := f.svc.SetDonationRecipient(ctx, uuid.New(), "charity:water")
	assert.ErrorIs(t, err, vault.ErrUnauthorized)

	require.NoError(t, f.svc.SetDonationRecipient(ctx, f.admin, "charity:water"))

	info, err := f.svc.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, "charity:water", info.DonationRecipient)
}
