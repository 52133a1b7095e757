package database

import (
	"context"
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS provisioning_attempts (
	id           UUID PRIMARY KEY,
	email        TEXT NOT NULL,
	display_name TEXT NOT NULL,
	address      TEXT NOT NULL DEFAULT '',
	uid          TEXT NOT NULL DEFAULT '',
	status       TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_provisioning_attempts_status
	ON provisioning_attempts (status, updated_at);

CREATE TABLE IF NOT EXISTS provisioning_step_outcomes (
	attempt_id  UUID NOT NULL REFERENCES provisioning_attempts (id),
	step        TEXT NOT NULL,
	status      TEXT NOT NULL,
	detail      TEXT NOT NULL DEFAULT '',
	recorded_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_provisioning_step_outcomes_attempt
	ON provisioning_step_outcomes (attempt_id, recorded_at);
`

// Migrate creates the provisioning attempt log tables if they do not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
