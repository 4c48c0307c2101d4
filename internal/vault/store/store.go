package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ricardofontes/goalvault/internal/ledger"
	"github.com/ricardofontes/goalvault/internal/vault"
)

// Store persists one vault's share ledger, keyed by vault id.
type Store struct {
	db      *sql.DB
	vaultID string
}

func New(db *sql.DB, vaultID string) *Store {
	return &Store{db: db, vaultID: vaultID}
}

func (s *Store) State(ctx context.Context) (*vault.State, error) {
	query := `
		SELECT total_shares, idle, checkpoint, donation_recipient
		FROM vault_state WHERE vault_id = $1
	`

	var st vault.State

	err := s.db.QueryRowContext(ctx, query, s.vaultID).
		Scan(&st.TotalShares, &st.Idle, &st.Checkpoint, &st.DonationRecipient)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &vault.State{DonationRecipient: ledger.AccountDonationSink}, nil
		}

		return nil, fmt.Errorf("reading vault state: %w", err)
	}

	return &st, nil
}

func (s *Store) SaveState(ctx context.Context, st *vault.State) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vault_state (vault_id, total_shares, idle, checkpoint, donation_recipient)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (vault_id) DO UPDATE SET
			total_shares = $2, idle = $3, checkpoint = $4, donation_recipient = $5
	`, s.vaultID, st.TotalShares, st.Idle, st.Checkpoint, st.DonationRecipient)
	if err != nil {
		return fmt.Errorf("saving vault state: %w", err)
	}

	return nil
}

func (s *Store) Shares(ctx context.Context, holder string) (int64, error) {
	query := `SELECT COALESCE(
		(SELECT shares FROM vault_shares WHERE vault_id = $1 AND holder = $2), 0)`

	var shares int64
	if err := s.db.QueryRowContext(ctx, query, s.vaultID, holder).Scan(&shares); err != nil {
		return 0, fmt.Errorf("reading shares of %s: %w", holder, err)
	}

	return shares, nil
}

func (s *Store) SetShares(ctx context.Context, holder string, shares int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vault_shares (vault_id, holder, shares)
		VALUES ($1, $2, $3)
		ON CONFLICT (vault_id, holder) DO UPDATE SET shares = $3
	`, s.vaultID, holder, shares)
	if err != nil {
		return fmt.Errorf("setting shares of %s: %w", holder, err)
	}

	return nil
}
