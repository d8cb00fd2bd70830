package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/booking-engine/internal/domain/availability"
	domain "github.com/BruksfildServices01/booking-engine/internal/domain/booking"
	"github.com/BruksfildServices01/booking-engine/internal/domain/schedule"
	"github.com/BruksfildServices01/booking-engine/internal/dto"
	"github.com/BruksfildServices01/booking-engine/internal/httperr"
	"github.com/BruksfildServices01/booking-engine/internal/timezone"
)

type GetAvailableSlotsInput struct {
	ProviderID      uint
	Date            string
	DurationMinutes int
	ServiceID       uint
}

type GetAvailableSlots struct {
	repo domain.Repository
	now  func() time.Time
}

func NewGetAvailableSlots(repo domain.Repository) *GetAvailableSlots {
	return &GetAvailableSlots{
		repo: repo,
		now:  time.Now,
	}
}

// Execute lists the free start times for one provider-local day. A closed
// day, an unconfigured schedule or a past date yield an empty list.
func (uc *GetAvailableSlots) Execute(
	ctx context.Context,
	in GetAvailableSlotsInput,
) (*dto.SlotsDTO, error) {

	provider, err := uc.repo.GetProvider(ctx, in.ProviderID)
	if err != nil {
		return nil, storageError(err, "provider_not_found", "Provider not found.")
	}

	loc := timezone.Location(provider.Timezone)
	day, err := timezone.ParseDate(in.Date, loc)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date", "Date must be YYYY-MM-DD.")
	}

	duration := in.DurationMinutes
	if in.ServiceID > 0 {
		svc, err := uc.repo.GetService(ctx, in.ProviderID, in.ServiceID)
		if err != nil {
			return nil, storageError(err, "service_not_found", "Service not found.")
		}
		if !svc.Active {
			return nil, httperr.ErrValidation("service_not_found", "Service not found.")
		}
		duration = svc.DurationMinutes
	}

	out := &dto.SlotsDTO{Date: in.Date, Slots: []string{}}

	ws := schedule.Parse(provider.WorkSchedule)
	if !ws.IsWorkingDay(day.Weekday()) {
		return out, nil
	}

	now := uc.now().In(loc)
	today := timezone.StartOfDay(now)
	if day.Before(today) {
		return out, nil
	}

	busy, err := uc.repo.ListBusyBookings(ctx, in.ProviderID, in.Date, in.Date)
	if err != nil {
		return nil, storageError(err, "provider_not_found", "Provider not found.")
	}

	slots := availability.GenerateSlots(ws, day.Weekday(), duration, busy)
	if day.Equal(today) {
		slots = availability.FilterAfter(slots, minuteOfDay(now)+provider.MinAdvanceMinutes)
	}

	out.Slots = slots
	return out, nil
}
