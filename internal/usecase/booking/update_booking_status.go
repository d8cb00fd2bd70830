package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/booking-engine/internal/audit"
	domain "github.com/BruksfildServices01/booking-engine/internal/domain/booking"
	"github.com/BruksfildServices01/booking-engine/internal/httperr"
	"github.com/BruksfildServices01/booking-engine/internal/models"
	"github.com/BruksfildServices01/booking-engine/internal/notify"
	"github.com/BruksfildServices01/booking-engine/internal/timezone"
)

type UpdateBookingStatus struct {
	repo     domain.Repository
	cache    QuickSlotCache
	audit    Auditor
	notifier notify.Notifier
	now      func() time.Time
}

func NewUpdateBookingStatus(
	repo domain.Repository,
	cache QuickSlotCache,
	audit Auditor,
	notifier notify.Notifier,
) *UpdateBookingStatus {
	return &UpdateBookingStatus{
		repo:     repo,
		cache:    cache,
		audit:    audit,
		notifier: notifier,
		now:      time.Now,
	}
}

func (uc *UpdateBookingStatus) Execute(
	ctx context.Context,
	providerID uint,
	bookingID uint,
	status string,
) (*models.Booking, error) {

	to, ok := domain.ParseStatus(status)
	if !ok {
		return nil, httperr.ErrValidation("invalid_status", "Unknown booking status.")
	}

	provider, err := uc.repo.GetProvider(ctx, providerID)
	if err != nil {
		return nil, storageError(err, "provider_not_found", "Provider not found.")
	}

	b, err := uc.repo.GetBookingForProvider(ctx, bookingID, providerID)
	if err != nil {
		return nil, storageError(err, "booking_not_found", "Booking not found.")
	}

	from := b.Status
	now := uc.now().In(timezone.Location(provider.Timezone))
	if err := domain.Transition(b, to, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, storageError(err, "booking_not_found", "Booking not found.")
	}

	uc.cache.Invalidate(ctx, providerID)

	uc.audit.Dispatch(audit.Event{
		ProviderID: providerID,
		ActorID:    uintPtr(providerID),
		Action:     audit.ActionBookingStatusChanged,
		Entity:     "booking",
		EntityID:   uintPtr(b.ID),
		Metadata:   map[string]string{"from": from, "to": b.Status},
	})

	uc.notifier.Notify(notify.Notification{
		Type:       notify.TypeBookingStatusChanged,
		Channel:    provider.NotifyChannel,
		ProviderID: providerID,
		BookingID:  b.ID,
		Date:       b.Date,
		Time:       b.Time,
		Status:     b.Status,
	})

	return b, nil
}
