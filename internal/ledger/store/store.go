package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ricardofontes/goalvault/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Balance(ctx context.Context, account, currency string) (int64, error) {
	query := `SELECT COALESCE(
		(SELECT balance FROM balances WHERE account = $1 AND currency = $2), 0)`

	var balance int64
	if err := s.db.QueryRowContext(ctx, query, account, currency).Scan(&balance); err != nil {
		return 0, fmt.Errorf("reading balance: %w", err)
	}

	return balance, nil
}

func (s *Store) Mint(ctx context.Context, account, currency string, amount int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning mint: %w", err)
	}
	defer tx.Rollback()

	if err := credit(ctx, tx, account, currency, amount); err != nil {
		return err
	}

	if err := journal(ctx, tx, "", account, currency, amount); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing mint: %w", err)
	}

	return nil
}

func (s *Store) Transfer(ctx context.Context, from, to, currency string, amount int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transfer: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE balances SET balance = balance - $3
		WHERE account = $1 AND currency = $2 AND balance >= $3
	`, from, currency, amount)
	if err != nil {
		return fmt.Errorf("debiting %s: %w", from, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("debiting %s: %w", from, err)
	}

	if rows == 0 {
		return ledger.ErrInsufficientFunds
	}

	if err := credit(ctx, tx, to, currency, amount); err != nil {
		return err
	}

	if err := journal(ctx, tx, from, to, currency, amount); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transfer: %w", err)
	}

	return nil
}

func credit(ctx context.Context, tx *sql.Tx, account, currency string, amount int64) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO balances (account, currency, balance)
		VALUES ($1, $2, $3)
		ON CONFLICT (account, currency) DO UPDATE SET balance = balances.balance + $3
	`, account, currency, amount)
	if err != nil {
		return fmt.Errorf("crediting %s: %w", account, err)
	}

	return nil
}

const journalInsert = `
	INSERT INTO ledger_entries (id, from_account, to_account, currency, amount, created_at)
	VALUES (gen_random_uuid(), NULLIF($1, ''), $2, $3, $4, NOW())
`

// journal records one movement row; from is empty on mints.
func journal(ctx context.Context, tx *sql.Tx, from, to, currency string, amount int64) error {
	_, err := tx.ExecContext(ctx, journalInsert, from, to, currency, amount)
	if err != nil {
		return fmt.Errorf("journaling entry to %s: %w", to, err)
	}

	return nil
}
