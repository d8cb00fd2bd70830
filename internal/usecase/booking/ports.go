package booking

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/booking-engine/internal/audit"
	"github.com/BruksfildServices01/booking-engine/internal/domain/availability"
	domain "github.com/BruksfildServices01/booking-engine/internal/domain/booking"
	"github.com/BruksfildServices01/booking-engine/internal/httperr"
)

// ======================================================
// PORTS
// ======================================================

type Auditor interface {
	Dispatch(ev audit.Event)
}

// QuickSlotCache never fails a request; implementations log and degrade to
// a miss.
type QuickSlotCache interface {
	Get(ctx context.Context, providerID uint) (availability.QuickSlots, bool)
	Set(ctx context.Context, providerID uint, qs availability.QuickSlots)
	Invalidate(ctx context.Context, providerID uint)
}

// ======================================================
// HELPERS
// ======================================================

// storageError turns a repository failure into the error taxonomy.
func storageError(err error, notFoundCode, message string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrValidation(notFoundCode, message)
	}
	var be httperr.BusinessError
	if errors.As(err, &be) {
		return err
	}
	return httperr.ErrInfrastructure("storage_unavailable", err)
}

// notFoundOnly is storageError for use inside an admission, where other
// errors must reach the repository untouched so it can spot serialization
// failures.
func notFoundOnly(err error, notFoundCode, message string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrValidation(notFoundCode, message)
	}
	return err
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func uintPtr(v uint) *uint {
	return &v
}
