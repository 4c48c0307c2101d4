package goal

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Mode selects the vault flavor a goal saves into.
type Mode string

const (
	ModeLite Mode = "lite"
	ModePro  Mode = "pro"
)

// Status is the lifecycle state of a goal.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusAbandoned Status = "abandoned"
)

// canTransition is the single definition of legal status moves. Both
// terminal states admit nothing further.
func canTransition(from, to Status) bool {
	switch from {
	case StatusActive:
		return to == StatusCompleted || to == StatusAbandoned
	default:
		return false
	}
}

var (
	ErrNotFound             = errors.New("goal: not found")
	ErrUnauthorized         = errors.New("goal: caller is not the owner")
	ErrAdminOnly            = errors.New("goal: caller is not the admin")
	ErrGoalNotActive        = errors.New("goal: goal is not active")
	ErrGoalNotCompleted     = errors.New("goal: goal is not completed")
	ErrCurrencyNotSupported = errors.New("goal: currency not supported")
	ErrInvalidDuration      = errors.New("goal: duration below minimum")
	ErrInvalidPercentage    = errors.New("goal: donation percentage out of range")
	ErrVaultNotConfigured   = errors.New("goal: no vault configured for currency and mode")
	ErrZeroAmount           = errors.New("goal: amount must be positive")
	ErrNoPosition           = errors.New("goal: no deposit position")
	ErrBadTransition        = errors.New("goal: illegal status transition")
)

// Goal is one savings goal. Deposited only grows while Active; status
// moves one way and a non-Active goal stays as history.
type Goal struct {
	ID            int64
	Owner         uuid.UUID
	Currency      string
	Mode          Mode
	Target        int64
	Duration      time.Duration
	DonationBps   int64
	Deposited     int64
	Status        Status
	CreatedAt     time.Time
	LastDepositAt *time.Time
}

// Position tracks a goal's principal and the vault shares backing it.
// Created on first deposit, gone after any withdrawal.
type Position struct {
	GoalID    int64
	Principal int64
	Shares    int64
	UpdatedAt time.Time
}

// VaultKey identifies a configured vault.
type VaultKey struct {
	Currency string
	Mode     Mode
}

// Details is a goal with its current redeemable value.
type Details struct {
	Goal         *Goal
	CurrentValue int64
	YieldEarned  int64
}
