package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-engine/internal/httperr"
	"github.com/BruksfildServices01/booking-engine/internal/models"
)

func (f *fixture) otherProvider() models.Provider {
	return models.Provider{Name: "Other", Timezone: providerTZ}
}

func TestListBookingsByDate(t *testing.T) {
	f := newFixture(t)
	f.seed("2026-10-20", "14:00", f.long, "confirmed")
	f.seed("2026-10-20", "09:00", 999, "pending")
	f.seed("2026-10-21", "09:00", f.hourly, "pending")

	out, err := NewListBookingsByDate(f.store).Execute(context.Background(), f.providerID, "2026-10-20")
	require.NoError(t, err)

	require.Len(t, out, 2)
	assert.Equal(t, "09:00", out[0].Time)
	assert.Equal(t, "10:00", out[0].EndTime)
	assert.Equal(t, "", out[0].ServiceName)

	assert.Equal(t, "14:00", out[1].Time)
	assert.Equal(t, "15:30", out[1].EndTime)
	assert.Equal(t, "Colour", out[1].ServiceName)

	_, err = NewListBookingsByDate(f.store).Execute(context.Background(), f.providerID, "20-10-2026")
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
}

func TestListBookingsByMonth(t *testing.T) {
	f := newFixture(t)
	f.seed("2026-09-30", "09:00", f.hourly, "pending")
	f.seed("2026-10-01", "09:00", f.hourly, "pending")
	f.seed("2026-10-31", "16:00", f.hourly, "cancelled")
	f.seed("2026-11-01", "09:00", f.hourly, "pending")

	uc := NewListBookingsByMonth(f.store)

	out, err := uc.Execute(context.Background(), f.providerID, 2026, 10)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "2026-10-01", out[0].Date)
	assert.Equal(t, "2026-10-31", out[1].Date)

	_, err = uc.Execute(context.Background(), f.providerID, 2026, 13)
	assert.True(t, httperr.IsBusiness(err, "invalid_month"))
}
