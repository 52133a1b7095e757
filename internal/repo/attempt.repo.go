package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/YashMagare365/mess-management-backend/internal/domain"
)

// AttemptRepo persists the provisioning saga's attempt and step-outcome
// records. Each write is committed immediately; the log must survive a later
// step failing.
type AttemptRepo interface {
	CreateAttempt(ctx context.Context, attempt *domain.ProvisioningAttempt) error
	SetAccount(ctx context.Context, id uuid.UUID, uid string) error
	SetStatus(ctx context.Context, id uuid.UUID, status domain.AttemptStatus) error
	RecordStepOutcome(ctx context.Context, outcome *domain.StepOutcome) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.ProvisioningAttempt, error)
	StepOutcomes(ctx context.Context, attemptID uuid.UUID) ([]domain.StepOutcome, error)
	// FindOrphanedBefore returns ORPHANED attempts untouched for longer than
	// olderThan, oldest first.
	FindOrphanedBefore(ctx context.Context, olderThan time.Duration, limit int) ([]domain.ProvisioningAttempt, error)
}

type attemptRepo struct {
	db *sql.DB
}

func NewAttemptRepo(db *sql.DB) AttemptRepo {
	return &attemptRepo{db: db}
}

func (r *attemptRepo) CreateAttempt(ctx context.Context, attempt *domain.ProvisioningAttempt) error {
	query := `INSERT INTO provisioning_attempts (id, email, display_name, address, uid, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(
		ctx, query,
		attempt.ID, attempt.Email, attempt.DisplayName, attempt.Address,
		attempt.UID, attempt.Status, attempt.CreatedAt, attempt.UpdatedAt,
	)
	return err
}

func (r *attemptRepo) SetAccount(ctx context.Context, id uuid.UUID, uid string) error {
	query := `UPDATE provisioning_attempts SET uid = $2, updated_at = now() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, uid)
	return err
}

func (r *attemptRepo) SetStatus(ctx context.Context, id uuid.UUID, status domain.AttemptStatus) error {
	query := `UPDATE provisioning_attempts SET status = $2, updated_at = now() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, status)
	return err
}

func (r *attemptRepo) RecordStepOutcome(ctx context.Context, outcome *domain.StepOutcome) error {
	query := `INSERT INTO provisioning_step_outcomes (attempt_id, step, status, detail, recorded_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(
		ctx, query,
		outcome.AttemptID, outcome.Step, outcome.Status, outcome.Detail, outcome.RecordedAt,
	)
	return err
}

func (r *attemptRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.ProvisioningAttempt, error) {
	query := `SELECT id, email, display_name, address, uid, status, created_at, updated_at
		FROM provisioning_attempts WHERE id = $1`
	var a domain.ProvisioningAttempt
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID,
		&a.Email,
		&a.DisplayName,
		&a.Address,
		&a.UID,
		&a.Status,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil // not found
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *attemptRepo) StepOutcomes(ctx context.Context, attemptID uuid.UUID) ([]domain.StepOutcome, error) {
	query := `SELECT attempt_id, step, status, detail, recorded_at
		FROM provisioning_step_outcomes WHERE attempt_id = $1 ORDER BY recorded_at`
	rows, err := r.db.QueryContext(ctx, query, attemptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outcomes []domain.StepOutcome
	for rows.Next() {
		var o domain.StepOutcome
		if err := rows.Scan(&o.AttemptID, &o.Step, &o.Status, &o.Detail, &o.RecordedAt); err != nil {
			return nil, err
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}

func (r *attemptRepo) FindOrphanedBefore(ctx context.Context, olderThan time.Duration, limit int) ([]domain.ProvisioningAttempt, error) {
	query := `SELECT id, email, display_name, address, uid, status, created_at, updated_at
		FROM provisioning_attempts
		WHERE status = $1 AND updated_at < $2
		ORDER BY updated_at
		LIMIT $3`
	rows, err := r.db.QueryContext(ctx, query, domain.AttemptOrphaned, time.Now().Add(-olderThan), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []domain.ProvisioningAttempt
	for rows.Next() {
		var a domain.ProvisioningAttempt
		if err := rows.Scan(
			&a.ID,
			&a.Email,
			&a.DisplayName,
			&a.Address,
			&a.UID,
			&a.Status,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}
