package booking

import (
	"context"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/BruksfildServices01/booking-engine/internal/domain/availability"
	domain "github.com/BruksfildServices01/booking-engine/internal/domain/booking"
	"github.com/BruksfildServices01/booking-engine/internal/domain/schedule"
	"github.com/BruksfildServices01/booking-engine/internal/models"
	"github.com/BruksfildServices01/booking-engine/internal/timezone"
)

const scanTimeout = 5 * time.Second

type GetQuickSlots struct {
	repo       domain.Repository
	cache      QuickSlotCache
	windowDays int
	now        func() time.Time

	inflight singleflight.Group
}

func NewGetQuickSlots(
	repo domain.Repository,
	cache QuickSlotCache,
	windowDays int,
) *GetQuickSlots {
	if windowDays <= 0 {
		windowDays = availability.DefaultWindowDays
	}
	return &GetQuickSlots{
		repo:       repo,
		cache:      cache,
		windowDays: windowDays,
		now:        time.Now,
	}
}

// Execute returns the "next available" teaser for a provider. A cached
// preview is served only while none of its slots has slipped into the lead
// window. Concurrent misses for the same provider share one scan.
func (uc *GetQuickSlots) Execute(
	ctx context.Context,
	providerID uint,
) (availability.QuickSlots, error) {

	if qs, ok := uc.cache.Get(ctx, providerID); ok {
		provider, err := uc.repo.GetProvider(ctx, providerID)
		if err != nil {
			return availability.QuickSlots{}, storageError(err, "provider_not_found", "Provider not found.")
		}
		now := uc.now().In(timezone.Location(provider.Timezone))
		if !qs.Stale(now, quickLead(provider)) {
			return qs, nil
		}
	}

	key := strconv.FormatUint(uint64(providerID), 10)
	v, err, _ := uc.inflight.Do(key, func() (any, error) {
		// shared by every waiter, so one caller going away must not fail the rest
		scanCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), scanTimeout)
		defer cancel()
		return uc.scan(scanCtx, providerID)
	})
	if err != nil {
		return availability.QuickSlots{}, err
	}

	return v.(availability.QuickSlots), nil
}

// quickLead keeps the preview inside what admission accepts today.
func quickLead(p *models.Provider) int {
	return max(availability.DefaultLeadTimeMinutes, p.MinAdvanceMinutes)
}

func (uc *GetQuickSlots) scan(
	ctx context.Context,
	providerID uint,
) (availability.QuickSlots, error) {

	provider, err := uc.repo.GetProvider(ctx, providerID)
	if err != nil {
		return availability.QuickSlots{}, storageError(err, "provider_not_found", "Provider not found.")
	}

	ws := schedule.Parse(provider.WorkSchedule)
	loc := timezone.Location(provider.Timezone)
	now := uc.now().In(loc)

	var busyByDate map[string][]availability.Busy
	if ws.HasAnyWorkingDay() {
		from := timezone.FormatDate(now)
		to := timezone.FormatDate(now.AddDate(0, 0, uc.windowDays-1))

		busy, err := uc.repo.ListBusyBookings(ctx, providerID, from, to)
		if err != nil {
			return availability.QuickSlots{}, storageError(err, "provider_not_found", "Provider not found.")
		}
		busyByDate = availability.GroupByDate(busy)
	}

	qs := availability.ScanUpcoming(ws, busyByDate, availability.ScanOptions{
		Now:             now,
		Location:        loc,
		WindowDays:      uc.windowDays,
		LeadTimeMinutes: quickLead(provider),
	})

	uc.cache.Set(ctx, providerID, qs)
	return qs, nil
}
