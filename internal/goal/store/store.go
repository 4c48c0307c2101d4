package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ricardofontes/goalvault/internal/goal"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectGoalColumns = `
	id, owner_id, currency, mode, target, duration_secs, donation_bps,
	deposited, status, created_at, last_deposit_at
`

func scanGoal(s scanner) (*goal.Goal, error) {
	var (
		g            goal.Goal
		modeStr      string
		statusStr    string
		durationSecs int64
		lastDeposit  sql.NullTime
	)

	if err := s.Scan(
		&g.ID, &g.Owner, &g.Currency, &modeStr, &g.Target, &durationSecs,
		&g.DonationBps, &g.Deposited, &statusStr, &g.CreatedAt, &lastDeposit,
	); err != nil {
		return nil, err
	}

	g.Mode = goal.Mode(modeStr)
	g.Status = goal.Status(statusStr)
	g.Duration = time.Duration(durationSecs) * time.Second

	if lastDeposit.Valid {
		t := lastDeposit.Time
		g.LastDepositAt = &t
	}

	return &g, nil
}

func (s *Store) CreateGoal(ctx context.Context, g *goal.Goal) error {
	query := `
		INSERT INTO goals (owner_id, currency, mode, target, duration_secs,
			donation_bps, deposited, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		g.Owner,
		g.Currency,
		string(g.Mode),
		g.Target,
		int64(g.Duration/time.Second),
		g.DonationBps,
		g.Deposited,
		string(g.Status),
		g.CreatedAt,
	).Scan(&g.ID)
	if err != nil {
		return fmt.Errorf("creating goal: %w", err)
	}

	return nil
}

func (s *Store) Goal(ctx context.Context, id int64) (*goal.Goal, error) {
	query := `SELECT ` + selectGoalColumns + ` FROM goals WHERE id = $1`

	g, err := scanGoal(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goal.ErrNotFound
		}

		return nil, fmt.Errorf("getting goal: %w", err)
	}

	return g, nil
}

func (s *Store) SaveGoal(ctx context.Context, g *goal.Goal) error {
	query := `
		UPDATE goals SET donation_bps = $2, deposited = $3, status = $4,
			last_deposit_at = $5
		WHERE id = $1
	`

	res, err := s.db.ExecContext(ctx, query,
		g.ID, g.DonationBps, g.Deposited, string(g.Status), g.LastDepositAt)
	if err != nil {
		return fmt.Errorf("saving goal: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("saving goal: %w", err)
	}

	if rows == 0 {
		return goal.ErrNotFound
	}

	return nil
}

func (s *Store) GoalsByOwner(ctx context.Context, owner uuid.UUID) ([]*goal.Goal, error) {
	query := `SELECT ` + selectGoalColumns + ` FROM goals WHERE owner_id = $1 ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	defer rows.Close()

	var goals []*goal.Goal

	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}

		goals = append(goals, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}

	return goals, nil
}

func (s *Store) Position(ctx context.Context, goalID int64) (*goal.Position, error) {
	query := `SELECT goal_id, principal, shares, updated_at FROM goal_positions WHERE goal_id = $1`

	var p goal.Position

	err := s.db.QueryRowContext(ctx, query, goalID).
		Scan(&p.GoalID, &p.Principal, &p.Shares, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goal.ErrNoPosition
		}

		return nil, fmt.Errorf("getting position: %w", err)
	}

	return &p, nil
}

func (s *Store) SavePosition(ctx context.Context, p *goal.Position) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO goal_positions (goal_id, principal, shares, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (goal_id) DO UPDATE SET
			principal = $2, shares = $3, updated_at = $4
	`, p.GoalID, p.Principal, p.Shares, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving position: %w", err)
	}

	return nil
}

func (s *Store) DeletePosition(ctx context.Context, goalID int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM goal_positions WHERE goal_id = $1`, goalID)
	if err != nil {
		return fmt.Errorf("deleting position: %w", err)
	}

	return nil
}

func (s *Store) SaveVaultConfig(ctx context.Context, currency string, mode goal.Mode, vaultID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vault_configs (currency, mode, vault_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (currency, mode) DO UPDATE SET vault_id = $3
	`, currency, string(mode), vaultID)
	if err != nil {
		return fmt.Errorf("saving vault config: %w", err)
	}

	return nil
}
