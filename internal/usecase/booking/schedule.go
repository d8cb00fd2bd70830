package booking

import (
	"context"

	"github.com/BruksfildServices01/booking-engine/internal/audit"
	domain "github.com/BruksfildServices01/booking-engine/internal/domain/booking"
	"github.com/BruksfildServices01/booking-engine/internal/domain/schedule"
	"github.com/BruksfildServices01/booking-engine/internal/httperr"
)

type ScheduleView struct {
	Configured bool `json:"configured"`
	schedule.Config
}

type GetSchedule struct {
	repo domain.Repository
}

func NewGetSchedule(repo domain.Repository) *GetSchedule {
	return &GetSchedule{repo: repo}
}

func (uc *GetSchedule) Execute(ctx context.Context, providerID uint) (*ScheduleView, error) {
	provider, err := uc.repo.GetProvider(ctx, providerID)
	if err != nil {
		return nil, storageError(err, "provider_not_found", "Provider not found.")
	}

	ws := schedule.Parse(provider.WorkSchedule)
	return &ScheduleView{
		Configured: ws.Configured,
		Config:     ws.Config(),
	}, nil
}

type UpdateSchedule struct {
	repo  domain.Repository
	cache QuickSlotCache
	audit Auditor
}

func NewUpdateSchedule(
	repo domain.Repository,
	cache QuickSlotCache,
	audit Auditor,
) *UpdateSchedule {
	return &UpdateSchedule{
		repo:  repo,
		cache: cache,
		audit: audit,
	}
}

// Execute stores cfg in canonical form. Existing bookings are left alone
// even if they now fall outside working hours.
func (uc *UpdateSchedule) Execute(
	ctx context.Context,
	providerID uint,
	cfg schedule.Config,
) (*ScheduleView, error) {

	ws := schedule.FromConfig(cfg)
	if !ws.Configured {
		return nil, httperr.ErrValidation("invalid_schedule", "Opening hours must start before they end and list at least one day.")
	}
	if (cfg.BreakStart != "" || cfg.BreakEnd != "") && ws.Break == nil {
		return nil, httperr.ErrValidation("invalid_break", "The break must fall inside opening hours.")
	}

	canonical := ws.Config()
	blob, err := schedule.Encode(canonical)
	if err != nil {
		return nil, httperr.ErrInfrastructure("encode_failed", err)
	}

	if err := uc.repo.UpdateSchedule(ctx, providerID, blob); err != nil {
		return nil, storageError(err, "provider_not_found", "Provider not found.")
	}

	uc.cache.Invalidate(ctx, providerID)

	uc.audit.Dispatch(audit.Event{
		ProviderID: providerID,
		ActorID:    uintPtr(providerID),
		Action:     audit.ActionScheduleUpdated,
		Entity:     "provider",
		EntityID:   uintPtr(providerID),
		Metadata:   canonical,
	})

	return &ScheduleView{Configured: true, Config: canonical}, nil
}
