package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ricardofontes/goalvault/internal/ledger"
	"github.com/ricardofontes/goalvault/internal/yield"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Settings(ctx context.Context) (*yield.Settings, error) {
	var st yield.Settings

	err := s.db.QueryRowContext(ctx,
		`SELECT paused, donation_recipient FROM yield_settings`).
		Scan(&st.Paused, &st.DonationRecipient)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &yield.Settings{DonationRecipient: ledger.AccountDonationSink}, nil
		}

		return nil, fmt.Errorf("reading router settings: %w", err)
	}

	return &st, nil
}

func (s *Store) SaveSettings(ctx context.Context, st *yield.Settings) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO yield_settings (id, paused, donation_recipient)
		VALUES (TRUE, $1, $2)
		ON CONFLICT (id) DO UPDATE SET paused = $1, donation_recipient = $2
	`, st.Paused, st.DonationRecipient)
	if err != nil {
		return fmt.Errorf("saving router settings: %w", err)
	}

	return nil
}

func (s *Store) IsWhitelisted(ctx context.Context, currency string) (bool, error) {
	var allowed bool

	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM yield_whitelist WHERE currency = $1)`, currency).
		Scan(&allowed)
	if err != nil {
		return false, fmt.Errorf("checking whitelist: %w", err)
	}

	return allowed, nil
}

func (s *Store) SetWhitelisted(ctx context.Context, currency string, allowed bool) error {
	var err error

	if allowed {
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO yield_whitelist (currency) VALUES ($1)
			ON CONFLICT (currency) DO NOTHING
		`, currency)
	} else {
		_, err = s.db.ExecContext(ctx,
			`DELETE FROM yield_whitelist WHERE currency = $1`, currency)
	}

	if err != nil {
		return fmt.Errorf("updating whitelist for %s: %w", currency, err)
	}

	return nil
}

func (s *Store) AddDonation(ctx context.Context, depositor uuid.UUID, currency string, amount int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning donation record: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO donation_totals (currency, total) VALUES ($1, $2)
		ON CONFLICT (currency) DO UPDATE SET total = donation_totals.total + $2
	`, currency, amount)
	if err != nil {
		return fmt.Errorf("updating global donation total: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO donation_user_totals (depositor, currency, total) VALUES ($1, $2, $3)
		ON CONFLICT (depositor, currency) DO UPDATE SET total = donation_user_totals.total + $3
	`, depositor, currency, amount)
	if err != nil {
		return fmt.Errorf("updating user donation total: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing donation record: %w", err)
	}

	return nil
}

func (s *Store) GlobalTotal(ctx context.Context, currency string) (int64, error) {
	var total int64

	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(
		(SELECT total FROM donation_totals WHERE currency = $1), 0)`, currency).
		Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("reading global donation total: %w", err)
	}

	return total, nil
}

func (s *Store) UserTotal(ctx context.Context, depositor uuid.UUID, currency string) (int64, error) {
	var total int64

	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(
		(SELECT total FROM donation_user_totals WHERE depositor = $1 AND currency = $2), 0)`,
		depositor, currency).
		Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("reading user donation total: %w", err)
	}

	return total, nil
}
