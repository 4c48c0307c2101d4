// Package ledgertest provides an in-memory ledger repository for tests
// that need real balance arithmetic rather than call expectations.
package ledgertest

import (
	"context"
	"sync"

	"github.com/ricardofontes/goalvault/internal/ledger"
)

type key struct {
	account  string
	currency string
}

type Repo struct {
	mu       sync.Mutex
	balances map[key]int64
}

func New() *Repo {
	return &Repo{balances: make(map[key]int64)}
}

func (r *Repo) Balance(_ context.Context, account, currency string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.balances[key{account, currency}], nil
}

func (r *Repo) Mint(_ context.Context, account, currency string, amount int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.balances[key{account, currency}] += amount

	return nil
}

func (r *Repo) Transfer(_ context.Context, from, to, currency string, amount int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.balances[key{from, currency}] < amount {
		return ledger.ErrInsufficientFunds
	}

	r.balances[key{from, currency}] -= amount
	r.balances[key{to, currency}] += amount

	return nil
}
