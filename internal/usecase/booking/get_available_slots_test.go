package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-engine/internal/httperr"
	"github.com/BruksfildServices01/booking-engine/internal/models"
)

func TestGetAvailableSlots(t *testing.T) {
	ctx := context.Background()

	t.Run("grid is anchored to the service duration", func(t *testing.T) {
		f := newFixture(t)
		uc := f.availableSlots(monday0800)

		hourly, err := uc.Execute(ctx, GetAvailableSlotsInput{ProviderID: f.providerID, Date: "2026-10-20", DurationMinutes: 60})
		require.NoError(t, err)
		assert.Len(t, hourly.Slots, 8)
		assert.Equal(t, "2026-10-20", hourly.Date)

		long, err := uc.Execute(ctx, GetAvailableSlotsInput{ProviderID: f.providerID, Date: "2026-10-20", DurationMinutes: 15, ServiceID: f.long})
		require.NoError(t, err)
		assert.Equal(t, []string{"09:00", "10:30", "12:00", "13:30", "15:00"}, long.Slots)
	})

	t.Run("busy bookings are excluded and results are stable", func(t *testing.T) {
		f := newFixture(t)
		f.seed("2026-10-20", "10:00", f.hourly, "confirmed")
		uc := f.availableSlots(monday0800)
		in := GetAvailableSlotsInput{ProviderID: f.providerID, Date: "2026-10-20", DurationMinutes: 60}

		first, err := uc.Execute(ctx, in)
		require.NoError(t, err)
		second, err := uc.Execute(ctx, in)
		require.NoError(t, err)

		assert.NotContains(t, first.Slots, "10:00")
		assert.Contains(t, first.Slots, "09:00")
		assert.Contains(t, first.Slots, "11:00")
		assert.Equal(t, first, second)
	})

	t.Run("today drops slots that already started", func(t *testing.T) {
		f := newFixture(t)
		now := time.Date(2026, 10, 19, 13, 30, 0, 0, time.UTC) // 10:30 local

		out, err := f.availableSlots(now).Execute(ctx, GetAvailableSlotsInput{ProviderID: f.providerID, Date: "2026-10-19", DurationMinutes: 60})

		require.NoError(t, err)
		assert.Equal(t, "11:00", out.Slots[0])
	})

	t.Run("empty is not an error", func(t *testing.T) {
		f := newFixture(t)
		unconfigured := f.store.AddProvider(models.Provider{Name: "New", Timezone: providerTZ})
		uc := f.availableSlots(monday0800)

		for name, in := range map[string]GetAvailableSlotsInput{
			"sunday":       {ProviderID: f.providerID, Date: "2026-10-25"},
			"past date":    {ProviderID: f.providerID, Date: "2026-10-16"},
			"unconfigured": {ProviderID: unconfigured, Date: "2026-10-20"},
		} {
			out, err := uc.Execute(ctx, in)
			require.NoError(t, err, name)
			assert.NotNil(t, out.Slots, name)
			assert.Empty(t, out.Slots, name)
		}
	})

	t.Run("errors", func(t *testing.T) {
		f := newFixture(t)
		uc := f.availableSlots(monday0800)

		_, err := uc.Execute(ctx, GetAvailableSlotsInput{ProviderID: f.providerID, Date: "tomorrow"})
		assert.True(t, httperr.IsBusiness(err, "invalid_date"))

		_, err = uc.Execute(ctx, GetAvailableSlotsInput{ProviderID: 999, Date: "2026-10-20"})
		assert.True(t, httperr.IsBusiness(err, "provider_not_found"))

		_, err = uc.Execute(ctx, GetAvailableSlotsInput{ProviderID: f.providerID, Date: "2026-10-20", ServiceID: 999})
		assert.True(t, httperr.IsBusiness(err, "service_not_found"))
	})

	t.Run("inactive service matches admission", func(t *testing.T) {
		f := newFixture(t)
		retired := f.store.AddService(models.Service{ProviderID: f.providerID, Name: "Old", DurationMinutes: 60, Active: false})

		_, err := f.availableSlots(monday0800).Execute(ctx, GetAvailableSlotsInput{ProviderID: f.providerID, Date: "2026-10-20", ServiceID: retired})
		assert.True(t, httperr.IsBusiness(err, "service_not_found"))

		_, err = f.createBooking(monday0800).Execute(ctx, CreateBookingInput{
			ProviderID: f.providerID, ServiceID: retired, Date: "2026-10-20", Time: "09:00",
			ClientName: "Maria", ClientPhone: "11",
		})
		assert.True(t, httperr.IsBusiness(err, "service_not_found"))
	})
}
