package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Well-known system accounts on the balance rail.
const (
	AccountGoalManager  = "goal-manager"
	AccountYieldRouter  = "yield-router"
	AccountDonationSink = "donation-sink"
	AccountTreasury     = "treasury"
	AccountRewardPool   = "reward-pool"
)

var (
	ErrZeroAmount        = errors.New("amount must be positive")
	ErrInvalidAccount    = errors.New("invalid account")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// UserAccount returns the rail account for a depositor.
func UserAccount(id uuid.UUID) string {
	return "user:" + id.String()
}

// VaultAccount returns the rail account holding a vault's idle balance.
func VaultAccount(vaultID string) string {
	return "vault:" + vaultID
}

// ReserveAccount returns the rail account of an external reserve pool.
func ReserveAccount(name string) string {
	return "reserve:" + name
}

// Entry is a journal record of a single balance movement: one row per
// transfer, with FromAccount empty on mints. Written for audit; never
// read back by the services.
type Entry struct {
	ID          uuid.UUID
	FromAccount string
	ToAccount   string
	Currency    string
	Amount      int64
	CreatedAt   time.Time
}
