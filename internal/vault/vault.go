package vault

import (
	"errors"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
)

var (
	ErrZeroAmount         = errors.New("vault: amount must be positive")
	ErrZeroShares         = errors.New("vault: amount too small to mint shares")
	ErrUnauthorized       = errors.New("vault: caller is not the admin")
	ErrInsufficientShares = errors.New("vault: insufficient shares")
	ErrInvalidRecipient   = errors.New("vault: invalid donation recipient")
)

// State is the persisted share-ledger header for one vault.
type State struct {
	TotalShares       int64
	Idle              int64
	Checkpoint        int64
	DonationRecipient string
}

// Info is a read-only snapshot of a vault.
type Info struct {
	ID                string          `json:"id"`
	Currency          string          `json:"currency"`
	Mode              string          `json:"mode"`
	TotalShares       int64           `json:"total_shares"`
	TotalAssets       int64           `json:"total_assets"`
	Idle              int64           `json:"idle"`
	Checkpoint        int64           `json:"checkpoint"`
	DonationRecipient string          `json:"donation_recipient"`
	SharePrice        decimal.Decimal `json:"share_price"`
}

// Key identifies a vault by its (currency, mode) pair.
type Key struct {
	Currency string
	Mode     string
}

// Registry holds the live vault services keyed by (currency, mode).
type Registry struct {
	mu     sync.RWMutex
	vaults map[Key]*Service
}

func NewRegistry() *Registry {
	return &Registry{vaults: make(map[Key]*Service)}
}

func (r *Registry) Register(currency, mode string, svc *Service) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.vaults[Key{Currency: currency, Mode: mode}] = svc
}

func (r *Registry) Get(currency, mode string) (*Service, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	svc, ok := r.vaults[Key{Currency: currency, Mode: mode}]

	return svc, ok
}

func (r *Registry) List() []*Service {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Service, 0, len(r.vaults))
	for _, svc := range r.vaults {
		out = append(out, svc)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })

	return out
}
