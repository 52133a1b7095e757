package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/YashMagare365/mess-management-backend/internal/domain"
	"github.com/YashMagare365/mess-management-backend/internal/infrastructure/identity"
	"github.com/YashMagare365/mess-management-backend/internal/infrastructure/recordstore"
	"github.com/YashMagare365/mess-management-backend/internal/repo"
)

const sweepLimit = 50

// ReconciliationWorker periodically sweeps the attempt log for orphaned
// provisioning attempts (an identity account exists but the profile record
// was never written) and replays the missing steps.
type ReconciliationWorker struct {
	attempts  repo.AttemptRepo
	identity  identity.Provider
	store     recordstore.Store
	interval  time.Duration
	olderThan time.Duration
	log       *zap.Logger
}

func NewReconciliationWorker(
	attempts repo.AttemptRepo,
	provider identity.Provider,
	store recordstore.Store,
	interval time.Duration,
	olderThan time.Duration,
	log *zap.Logger,
) *ReconciliationWorker {
	return &ReconciliationWorker{
		attempts:  attempts,
		identity:  provider,
		store:     store,
		interval:  interval,
		olderThan: olderThan,
		log:       log,
	}
}

func (rw *ReconciliationWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(rw.interval)
	defer ticker.Stop()

	rw.log.Info("reconciliation worker started")

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := rw.Process(ctx); err != nil {
				rw.log.Error("reconciliation sweep failed", zap.Error(err))
			}
		}
	}
}

// Process runs a single sweep. Repair failures leave the attempt ORPHANED
// for the next sweep.
func (rw *ReconciliationWorker) Process(ctx context.Context) error {
	orphans, err := rw.attempts.FindOrphanedBefore(ctx, rw.olderThan, sweepLimit)
	if err != nil {
		return err
	}

	if len(orphans) == 0 {
		return nil
	}

	rw.log.Info("found orphaned provisioning attempts", zap.Int("count", len(orphans)))

	for _, attempt := range orphans {
		if err := rw.repair(ctx, &attempt); err != nil {
			rw.log.Error("repair failed",
				zap.String("attemptId", attempt.ID.String()),
				zap.String("uid", attempt.UID),
				zap.Error(err))
			continue
		}
		rw.log.Info("orphaned attempt repaired",
			zap.String("attemptId", attempt.ID.String()),
			zap.String("uid", attempt.UID))
	}
	return nil
}

func (rw *ReconciliationWorker) repair(ctx context.Context, attempt *domain.ProvisioningAttempt) error {
	// Replay the claim assignment when its recorded outcome was a failure.
	if rw.claimsMissing(ctx, attempt) {
		if err := rw.identity.SetCustomClaims(ctx, attempt.UID, map[string]any{"admin": true}); err != nil {
			return err
		}
		rw.recordOutcome(ctx, attempt, domain.StepAssignClaims)
	}

	record := domain.AdminProfileRecord{
		Email:       attempt.Email,
		DisplayName: attempt.DisplayName,
		Address:     attempt.Address,
		CreatedAt:   attempt.CreatedAt,
	}
	if err := rw.store.Write(ctx, "admins/"+attempt.UID, record); err != nil {
		return err
	}
	rw.recordOutcome(ctx, attempt, domain.StepWriteProfile)

	return rw.attempts.SetStatus(ctx, attempt.ID, domain.AttemptRepaired)
}

// claimsMissing reports whether the attempt's last recorded assign-claims
// outcome was a failure. An unreadable log is treated as claims already
// assigned so the repair still proceeds with the profile write.
func (rw *ReconciliationWorker) claimsMissing(ctx context.Context, attempt *domain.ProvisioningAttempt) bool {
	outcomes, err := rw.attempts.StepOutcomes(ctx, attempt.ID)
	if err != nil {
		rw.log.Error("could not read step outcomes",
			zap.String("attemptId", attempt.ID.String()),
			zap.Error(err))
		return false
	}

	missing := false
	for _, o := range outcomes {
		if o.Step == domain.StepAssignClaims {
			missing = o.Status == domain.StepFailed
		}
	}
	return missing
}

func (rw *ReconciliationWorker) recordOutcome(ctx context.Context, attempt *domain.ProvisioningAttempt, step string) {
	err := rw.attempts.RecordStepOutcome(ctx, &domain.StepOutcome{
		AttemptID:  attempt.ID,
		Step:       step,
		Status:     domain.StepOK,
		Detail:     "replayed by reconciliation",
		RecordedAt: time.Now(),
	})
	if err != nil {
		rw.log.Error("attempt log write failed", zap.Error(err))
	}
}
