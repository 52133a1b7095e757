package domain

import (
	"github.com/google/uuid"
)

// ValidationError means the request was malformed; no external call was made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// UpstreamError means a call to one of the external systems failed. System
// names the failing collaborator for logging; the error text is the upstream
// message alone, since that is what goes on the wire.
type UpstreamError struct {
	System string
	Err    error
}

func (e *UpstreamError) Error() string { return e.Err.Error() }

func (e *UpstreamError) Unwrap() error { return e.Err }

// PartialProvisioningError means an identity account was created but a later
// provisioning step failed, leaving an orphaned account. The wire format
// collapses this into a generic failure; the type is kept distinct so the
// reconciliation worker and callers inside the process can tell the cases
// apart.
type PartialProvisioningError struct {
	AttemptID uuid.UUID
	UID       string
	Step      string
	Err       error
}

func (e *PartialProvisioningError) Error() string { return e.Err.Error() }

func (e *PartialProvisioningError) Unwrap() error { return e.Err }
