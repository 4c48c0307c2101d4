// Package faucet hands out play-money so depositors on a fresh
// deployment have something to save. Drips are rate limited per caller
// and currency.
package faucet

import "errors"

var (
	ErrRateLimited     = errors.New("faucet: drip rate exceeded")
	ErrInvalidCurrency = errors.New("faucet: currency is required")
)
