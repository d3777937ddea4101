package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/quartermaster-app/linkgraph/internal/domain"
	"github.com/quartermaster-app/linkgraph/pkg/logger"
	"github.com/quartermaster-app/linkgraph/pkg/retry"
)

// existenceValidator checks that a referenced entity is visible in the
// backing store. A caller typically creates a link right after saving the
// endpoint entity through a path whose effects may not be visible yet, so
// a miss is retried a bounded number of times before it counts as absence.
//
// Absence is ambiguous: never-existed, deleted and not-yet-visible all
// surface as false. The validator does not invent a distinction.
type existenceValidator struct {
	entities domain.EntityRepository
	attempts int
	delay    time.Duration
	sleep    retry.SleepFunc
	logger   *zap.Logger
}

func newExistenceValidator(entities domain.EntityRepository, attempts int, delay time.Duration, sleep retry.SleepFunc, lg *zap.Logger) *existenceValidator {
	return &existenceValidator{
		entities: entities,
		attempts: attempts,
		delay:    delay,
		sleep:    sleep,
		logger:   lg,
	}
}

// Exists reports whether the referenced entity became visible within the
// retry budget. Worst-case added latency is (attempts-1) * delay.
func (v *existenceValidator) Exists(ctx context.Context, ref domain.EntityRef) (bool, error) {
	attempt := 0
	ok, err := retry.UntilWithSleep(ctx, v.attempts, v.delay, func(ctx context.Context) (bool, error) {
		attempt++
		_, found, err := v.entities.Get(ctx, ref.Type, ref.ID)
		return found, err
	}, v.sleep)
	if err != nil {
		return false, err
	}
	if ok && attempt > 1 {
		v.logger.Debug("entity became visible after retry",
			zap.String(logger.FieldEntityType, string(ref.Type)),
			zap.String(logger.FieldEntityID, ref.ID),
			zap.Int(logger.FieldAttempts, attempt),
		)
	}
	return ok, nil
}
