package yield

import (
	"errors"
)

// Percentages are basis points, integer units of 1/10000.
const (
	BpsDenominator = 10000
	MaxDonationBps = 10000
)

var (
	ErrPaused              = errors.New("yield: router is paused")
	ErrNotWhitelisted      = errors.New("yield: currency not whitelisted")
	ErrInvalidPercentage   = errors.New("yield: donation percentage out of range")
	ErrZeroAmount          = errors.New("yield: amount must be positive")
	ErrUnauthorized        = errors.New("yield: caller is not the admin")
	ErrUnfunded            = errors.New("yield: router has not received the yield")
	ErrArrayLengthMismatch = errors.New("yield: batch arrays differ in length")
)

// Settings is the persisted admin state of the router.
type Settings struct {
	Paused            bool
	DonationRecipient string
}

// Stats is the global donation tally for one currency.
type Stats struct {
	Currency     string `json:"currency"`
	TotalDonated int64  `json:"total_donated"`
}

// CalculateSplit divides totalYield between depositor and donation parts.
// The donation part rounds down, so the two always sum exactly to
// totalYield with any remainder favoring the depositor. Callers validate
// donationBps <= MaxDonationBps.
func CalculateSplit(totalYield, donationBps int64) (depositorAmount, donationAmount int64) {
	donationAmount = totalYield * donationBps / BpsDenominator
	depositorAmount = totalYield - donationAmount

	return depositorAmount, donationAmount
}
