package booking

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/booking-engine/internal/audit"
	"github.com/BruksfildServices01/booking-engine/internal/domain/availability"
	domain "github.com/BruksfildServices01/booking-engine/internal/domain/booking"
	"github.com/BruksfildServices01/booking-engine/internal/domain/interval"
	"github.com/BruksfildServices01/booking-engine/internal/domain/schedule"
	"github.com/BruksfildServices01/booking-engine/internal/httperr"
	"github.com/BruksfildServices01/booking-engine/internal/infra/lock"
	"github.com/BruksfildServices01/booking-engine/internal/models"
	"github.com/BruksfildServices01/booking-engine/internal/notify"
	"github.com/BruksfildServices01/booking-engine/internal/timezone"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	ProviderID uint

	// ServiceID wins over DurationMinutes when set.
	ServiceID       uint
	DurationMinutes int

	Date string
	Time string

	ClientName  string
	ClientPhone string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo     domain.Repository
	locker   lock.Locker
	cache    QuickSlotCache
	audit    Auditor
	notifier notify.Notifier
	log      *zap.Logger
	now      func() time.Time
}

func NewCreateBooking(
	repo domain.Repository,
	locker lock.Locker,
	cache QuickSlotCache,
	audit Auditor,
	notifier notify.Notifier,
	log *zap.Logger,
) *CreateBooking {
	if log == nil {
		log = zap.NewNop()
	}
	return &CreateBooking{
		repo:     repo,
		locker:   locker,
		cache:    cache,
		audit:    audit,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// 1. Input
	// --------------------------------------------------
	in.ClientName = strings.TrimSpace(in.ClientName)
	in.ClientPhone = strings.TrimSpace(in.ClientPhone)

	if in.ProviderID == 0 || in.ClientName == "" || in.ClientPhone == "" {
		return nil, httperr.ErrValidation("missing_fields", "Please fill in all required fields.")
	}
	if !datePattern.MatchString(in.Date) {
		return nil, httperr.ErrValidation("invalid_date", "Date must be YYYY-MM-DD.")
	}
	start, err := interval.TimeToMinutes(in.Time)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_time", "Time must be HH:MM.")
	}
	hm := interval.MinutesToTime(start)

	provider, err := uc.repo.GetProvider(ctx, in.ProviderID)
	if err != nil {
		return nil, storageError(err, "provider_not_found", "Provider not found.")
	}

	loc := timezone.Location(provider.Timezone)
	day, err := timezone.ParseDate(in.Date, loc)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date", "Date must be YYYY-MM-DD.")
	}

	now := uc.now().In(loc)
	today := timezone.StartOfDay(now)
	if day.Before(today) {
		return nil, httperr.ErrValidation("date_in_past", "This date has already passed.")
	}

	// --------------------------------------------------
	// 2. Duration
	// --------------------------------------------------
	duration := interval.NormalizeDuration(in.DurationMinutes)
	var serviceID *uint

	if in.ServiceID > 0 {
		svc, err := uc.repo.GetService(ctx, in.ProviderID, in.ServiceID)
		if err != nil {
			return nil, storageError(err, "service_not_found", "Service not found.")
		}
		if !svc.Active {
			return nil, httperr.ErrValidation("service_not_found", "Service not found.")
		}
		duration = interval.NormalizeDuration(svc.DurationMinutes)
		serviceID = uintPtr(svc.ID)
	}

	// --------------------------------------------------
	// 3. Slot lock
	// --------------------------------------------------
	release, err := uc.locker.Acquire(ctx, lock.SlotKey(in.ProviderID, in.Date))
	if err != nil {
		if errors.Is(err, lock.ErrWaitExceeded) {
			return nil, httperr.BusinessError{
				Kind: httperr.KindConflict,
				Code: "slot_busy",
				Err:  err,
			}
		}
		return nil, httperr.ErrInfrastructure("lock_unavailable", err)
	}
	defer release()

	// --------------------------------------------------
	// 4. Re-validate and insert
	// --------------------------------------------------
	var created *models.Booking

	err = uc.repo.WithinAdmission(ctx, func(tx domain.AdmissionTx) error {
		p, err := tx.GetProvider(ctx, in.ProviderID)
		if err != nil {
			return notFoundOnly(err, "provider_not_found", "Provider not found.")
		}

		ws := schedule.Parse(p.WorkSchedule)
		if !ws.IsWorkingDay(day.Weekday()) {
			return httperr.ErrUnavailable("provider_unavailable", "This provider has no bookable hours on that day.")
		}

		busy, err := tx.ListBusyBookings(ctx, in.ProviderID, in.Date, in.Date)
		if err != nil {
			return err
		}

		slots := availability.GenerateSlots(ws, day.Weekday(), duration, busy)
		if day.Equal(today) {
			slots = availability.FilterAfter(slots, minuteOfDay(now)+p.MinAdvanceMinutes)
		}
		if !availability.Contains(slots, hm) {
			return httperr.ErrConflict("slot_taken", "")
		}

		client, err := tx.GetOrCreateClient(ctx, in.ProviderID, in.ClientName, in.ClientPhone)
		if err != nil {
			return err
		}

		b := &models.Booking{
			ProviderID:      in.ProviderID,
			ServiceID:       serviceID,
			ClientID:        uintPtr(client.ID),
			ClientName:      in.ClientName,
			ClientPhone:     in.ClientPhone,
			Date:            in.Date,
			Time:            hm,
			DurationMinutes: duration,
			Status:          string(domain.InitialStatus()),
		}
		if err := tx.InsertBooking(ctx, b); err != nil {
			return err
		}

		created = b
		return nil
	})

	if err != nil {
		if httperr.IsConflict(err) {
			uc.audit.Dispatch(audit.Event{
				ProviderID: in.ProviderID,
				Action:     audit.ActionBookingConflict,
				Entity:     "booking",
				Metadata:   map[string]string{"date": in.Date, "time": hm},
			})
		}
		return nil, err
	}

	// --------------------------------------------------
	// 5. After commit
	// --------------------------------------------------
	uc.cache.Invalidate(ctx, in.ProviderID)

	uc.audit.Dispatch(audit.Event{
		ProviderID: in.ProviderID,
		Action:     audit.ActionBookingCreated,
		Entity:     "booking",
		EntityID:   uintPtr(created.ID),
	})

	uc.notifier.Notify(notify.Notification{
		Type:       notify.TypeBookingCreated,
		Channel:    provider.NotifyChannel,
		ProviderID: created.ProviderID,
		BookingID:  created.ID,
		Date:       created.Date,
		Time:       created.Time,
		Status:     created.Status,
		ClientName: created.ClientName,
	})

	uc.log.Info("booking admitted",
		zap.Uint("provider_id", created.ProviderID),
		zap.Uint("booking_id", created.ID),
		zap.String("date", created.Date),
		zap.String("time", created.Time),
	)

	return created, nil
}
