package domain

import (
	"time"

	"github.com/google/uuid"
)

type AttemptStatus string

const (
	AttemptRunning   AttemptStatus = "RUNNING"
	AttemptSucceeded AttemptStatus = "SUCCEEDED"
	AttemptFailed    AttemptStatus = "FAILED"
	// AttemptOrphaned means the identity account exists but a later step
	// failed; the reconciliation worker sweeps these.
	AttemptOrphaned AttemptStatus = "ORPHANED"
	AttemptRepaired AttemptStatus = "REPAIRED"
)

// Provisioning step names, in execution order.
const (
	StepCreateAccount = "create-account"
	StepAssignClaims  = "assign-claims"
	StepWriteProfile  = "write-profile"
)

type StepStatus string

const (
	StepOK      StepStatus = "OK"
	StepFailed  StepStatus = "FAILED"
	StepSkipped StepStatus = "SKIPPED"
)

// ProvisioningAttempt is the durable record of one run of the admin
// provisioning saga. It carries enough of the original request for the
// reconciliation worker to replay the profile write.
type ProvisioningAttempt struct {
	ID          uuid.UUID
	Email       string
	DisplayName string
	Address     string
	UID         string
	Status      AttemptStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StepOutcome records what happened to a single saga step. Every executed
// step gets exactly one row per run, including the non-fatal claim
// assignment, so a failure there is visible even though it does not abort
// the flow.
type StepOutcome struct {
	AttemptID  uuid.UUID
	Step       string
	Status     StepStatus
	Detail     string
	RecordedAt time.Time
}
