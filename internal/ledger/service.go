package ledger

import (
	"context"
	"errors"
	"fmt"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	Balance(ctx context.Context, account, currency string) (int64, error)
	Mint(ctx context.Context, account, currency string, amount int64) error
	Transfer(ctx context.Context, from, to, currency string, amount int64) error
}

// Service is the internal value rail. Every movement of value between
// depositors, vaults, the yield router and the fixed sinks goes through
// here; balances are per (account, currency) and never go negative.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Balance(ctx context.Context, account, currency string) (int64, error) {
	if account == "" || currency == "" {
		return 0, ErrInvalidAccount
	}

	return s.repo.Balance(ctx, account, currency)
}

// Mint creates new value on the rail. Only the faucet and the simulated
// reserve's interest accrual use it.
func (s *Service) Mint(ctx context.Context, account, currency string, amount int64) error {
	if account == "" || currency == "" {
		return ErrInvalidAccount
	}

	if amount <= 0 {
		return ErrZeroAmount
	}

	if err := s.repo.Mint(ctx, account, currency, amount); err != nil {
		return fmt.Errorf("minting %d %s to %s: %w", amount, currency, account, err)
	}

	return nil
}

// Transfer moves value between two accounts. The debit and credit are
// applied in one store transaction; a short balance fails the whole call
// with ErrInsufficientFunds.
func (s *Service) Transfer(ctx context.Context, from, to, currency string, amount int64) error {
	if from == "" || to == "" || currency == "" || from == to {
		return ErrInvalidAccount
	}

	if amount <= 0 {
		return ErrZeroAmount
	}

	if err := s.repo.Transfer(ctx, from, to, currency, amount); err != nil {
		if errors.Is(err, ErrInsufficientFunds) {
			return err
		}

		return fmt.Errorf("transferring %d %s from %s to %s: %w", amount, currency, from, to, err)
	}

	return nil
}
