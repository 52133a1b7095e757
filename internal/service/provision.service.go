package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/YashMagare365/mess-management-backend/internal/domain"
	"github.com/YashMagare365/mess-management-backend/internal/infrastructure/identity"
	"github.com/YashMagare365/mess-management-backend/internal/infrastructure/recordstore"
	"github.com/YashMagare365/mess-management-backend/internal/repo"
)

type ProvisioningService interface {
	ProvisionAdmin(ctx context.Context, req domain.AdminSignupRequest) (*domain.IdentityAccount, error)
}

// sagaStep is one forward action of the provisioning saga. A required step
// aborts the saga when it fails; a non-required step only has its failure
// recorded. compensate would undo the step after a later failure; no step
// carries one today, orphan repair is the reconciliation worker's job.
type sagaStep struct {
	name       string
	run        func(ctx context.Context) error
	compensate func(ctx context.Context) error
	required   bool
	onFail     domain.AttemptStatus
}

type provisioningService struct {
	identity identity.Provider
	store    recordstore.Store
	attempts repo.AttemptRepo
	log      *zap.Logger
	now      func() time.Time
}

func NewProvisioningService(
	provider identity.Provider,
	store recordstore.Store,
	attempts repo.AttemptRepo,
	log *zap.Logger,
) ProvisioningService {
	return &provisioningService{
		identity: provider,
		store:    store,
		attempts: attempts,
		log:      log,
		now:      time.Now,
	}
}

// ProvisionAdmin runs the provisioning saga: create the identity account,
// attach the admin claim, write the profile record. Steps run strictly in
// that order; the claim assignment is not required for overall success but
// its outcome is still recorded. There is no atomicity across the three
// systems: a profile-write failure leaves the account in place and the
// attempt marked ORPHANED.
func (s *provisioningService) ProvisionAdmin(ctx context.Context, req domain.AdminSignupRequest) (*domain.IdentityAccount, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	attempt := &domain.ProvisioningAttempt{
		ID:          uuid.New(),
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Address:     req.Address,
		Status:      domain.AttemptRunning,
		CreatedAt:   s.now(),
		UpdatedAt:   s.now(),
	}
	s.audit(s.attempts.CreateAttempt(ctx, attempt))

	var account *domain.IdentityAccount

	steps := []sagaStep{
		{
			name:     domain.StepCreateAccount,
			required: true,
			onFail:   domain.AttemptFailed,
			run: func(ctx context.Context) error {
				acct, err := s.identity.CreateAccount(ctx, identity.NewAccount{
					Email:       req.Email,
					Password:    req.Password,
					DisplayName: req.DisplayName,
				})
				if err != nil {
					return &domain.UpstreamError{System: "identity provider", Err: err}
				}
				account = acct
				s.audit(s.attempts.SetAccount(ctx, attempt.ID, acct.UID))
				return nil
			},
		},
		{
			name: domain.StepAssignClaims,
			run: func(ctx context.Context) error {
				if err := s.identity.SetCustomClaims(ctx, account.UID, map[string]any{"admin": true}); err != nil {
					return &domain.UpstreamError{System: "identity provider", Err: err}
				}
				return nil
			},
		},
		{
			name:     domain.StepWriteProfile,
			required: true,
			onFail:   domain.AttemptOrphaned,
			run: func(ctx context.Context) error {
				record := domain.AdminProfileRecord{
					Email:       req.Email,
					DisplayName: req.DisplayName,
					Address:     req.Address,
					CreatedAt:   s.now(),
				}
				if err := s.store.Write(ctx, "admins/"+account.UID, record); err != nil {
					return &domain.UpstreamError{System: "record store", Err: err}
				}
				return nil
			},
		},
	}

	for i, step := range steps {
		err := step.run(ctx)
		s.recordStep(ctx, attempt.ID, step.name, err)
		if err == nil {
			continue
		}

		if !step.required {
			s.log.Warn("non-fatal provisioning step failed",
				zap.String("attemptId", attempt.ID.String()),
				zap.String("step", step.name),
				zap.Error(err))
			continue
		}

		s.runCompensations(ctx, steps[:i])
		s.audit(s.attempts.SetStatus(ctx, attempt.ID, step.onFail))

		if account != nil {
			s.log.Error("admin provisioning left an orphaned account",
				zap.String("attemptId", attempt.ID.String()),
				zap.String("uid", account.UID),
				zap.String("step", step.name),
				zap.Error(err))
			return nil, &domain.PartialProvisioningError{
				AttemptID: attempt.ID,
				UID:       account.UID,
				Step:      step.name,
				Err:       err,
			}
		}

		s.log.Error("admin provisioning failed",
			zap.String("attemptId", attempt.ID.String()),
			zap.String("step", step.name),
			zap.Error(err))
		return nil, err
	}

	s.audit(s.attempts.SetStatus(ctx, attempt.ID, domain.AttemptSucceeded))
	s.log.Info("admin provisioned",
		zap.String("attemptId", attempt.ID.String()),
		zap.String("uid", account.UID),
		zap.String("email", account.Email))

	return account, nil
}

func (s *provisioningService) recordStep(ctx context.Context, attemptID uuid.UUID, name string, stepErr error) {
	outcome := &domain.StepOutcome{
		AttemptID:  attemptID,
		Step:       name,
		Status:     domain.StepOK,
		RecordedAt: s.now(),
	}
	if stepErr != nil {
		outcome.Status = domain.StepFailed
		outcome.Detail = stepErr.Error()
	}
	s.audit(s.attempts.RecordStepOutcome(ctx, outcome))
}

// runCompensations undoes completed steps in reverse order. Every
// compensation slot is nil today, so this is a no-op walk.
func (s *provisioningService) runCompensations(ctx context.Context, completed []sagaStep) {
	for i := len(completed) - 1; i >= 0; i-- {
		if completed[i].compensate == nil {
			continue
		}
		if err := completed[i].compensate(ctx); err != nil {
			s.log.Error("compensation failed",
				zap.String("step", completed[i].name),
				zap.Error(err))
		}
	}
}

// audit logs attempt-log write failures. The log is an audit trail; a failed
// write must not fail the provisioning flow itself.
func (s *provisioningService) audit(err error) {
	if err != nil {
		s.log.Error("attempt log write failed", zap.Error(err))
	}
}
