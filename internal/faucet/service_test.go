package faucet_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ricardofontes/goalvault/internal/faucet"
	"github.com/ricardofontes/goalvault/internal/ledger"
	"github.com/ricardofontes/goalvault/internal/ledger/ledgertest"
)

func newFaucet(rail *ledger.Service) *faucet.Service {
	return faucet.NewService(rail, faucet.Config{
		DripAmount: 100_000,
		Interval:   time.Hour,
		Burst:      2,
	})
}

func TestService_Dispense(t *testing.T) {
	ctx := context.Background()
	rail := ledger.NewService(ledgertest.New())
	svc := newFaucet(rail)
	caller := uuid.New()

	got, err := svc.Dispense(ctx, caller, "BRL")
	require.NoError(t, err)
	assert.Equal(t, int64(100_000), got)

	balance, err := rail.Balance(ctx, ledger.UserAccount(caller), "BRL")
	require.NoError(t, err)
	assert.Equal(t, int64(100_000), balance)
}

func TestService_Dispense_RateLimited(t *testing.T) {
	ctx := context.Background()
	rail := ledger.NewService(ledgertest.New())
	svc := newFaucet(rail)
	caller := uuid.New()

	// burst of two, then the bucket is dry for an hour
	for range 2 {
		_, err := svc.Dispense(ctx, caller, "BRL")
		require.NoError(t, err)
	}

	_, err := svc.Dispense(ctx, caller, "BRL")
	assert.ErrorIs(t, err, faucet.ErrRateLimited)

	// other callers and currencies have their own buckets
	_, err = svc.Dispense(ctx, uuid.New(), "BRL")
	assert.NoError(t, err)

	_, err = svc.Dispense(ctx, caller, "USD")
	assert.NoError(t, err)
}

func TestService_Dispense_EmptyCurrency(t *testing.T) {
	svc := newFaucet(ledger.NewService(ledgertest.New()))

	_, err := svc.Dispense(context.Background(), uuid.New(), "")
	assert.ErrorIs(t, err, faucet.ErrInvalidCurrency)
}
