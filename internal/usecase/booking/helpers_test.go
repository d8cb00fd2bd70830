package booking

import (
	"context"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-engine/internal/audit"
	"github.com/BruksfildServices01/booking-engine/internal/domain/availability"
	"github.com/BruksfildServices01/booking-engine/internal/domain/schedule"
	"github.com/BruksfildServices01/booking-engine/internal/infra/lock"
	"github.com/BruksfildServices01/booking-engine/internal/infra/memstore"
	"github.com/BruksfildServices01/booking-engine/internal/models"
	"github.com/BruksfildServices01/booking-engine/internal/notify"
)

const providerTZ = "America/Sao_Paulo"

// monday0800 is 2026-10-19 08:00 in the provider's zone.
var monday0800 = time.Date(2026, 10, 19, 11, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

type recordingCache struct {
	mu          sync.Mutex
	entries     map[uint]availability.QuickSlots
	invalidated []uint
	sets        int
}

func newRecordingCache() *recordingCache {
	return &recordingCache{entries: make(map[uint]availability.QuickSlots)}
}

func (c *recordingCache) Get(_ context.Context, id uint) (availability.QuickSlots, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	qs, ok := c.entries[id]
	return qs, ok
}

func (c *recordingCache) Set(_ context.Context, id uint, qs availability.QuickSlots) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[id] = qs
	c.sets++
}

func (c *recordingCache) Invalidate(_ context.Context, id uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
	c.invalidated = append(c.invalidated, id)
}

type recordingAuditor struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *recordingAuditor) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

func (a *recordingAuditor) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.events))
	for _, ev := range a.events {
		out = append(out, ev.Action)
	}
	return out
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notify.Notification
}

func (n *recordingNotifier) Notify(x notify.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, x)
}

type fixture struct {
	store    *memstore.Store
	cache    *recordingCache
	auditor  *recordingAuditor
	notifier *recordingNotifier

	providerID uint
	hourly     uint
	long       uint
}

// newFixture seeds a provider open Mon-Fri 09:00-17:00 with a 60 and a 90
// minute service.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	blob, err := schedule.Encode(schedule.Config{
		StartTime:   "09:00",
		EndTime:     "17:00",
		WorkingDays: []int{1, 2, 3, 4, 5},
	})
	require.NoError(t, err)

	f := &fixture{
		store:    memstore.New(),
		cache:    newRecordingCache(),
		auditor:  &recordingAuditor{},
		notifier: &recordingNotifier{},
	}
	f.providerID = f.store.AddProvider(models.Provider{
		Name:          "Studio Ana",
		Slug:          "studio-ana",
		Timezone:      providerTZ,
		WorkSchedule:  blob,
		NotifyChannel: "provider-studio-ana",
	})
	f.hourly = f.store.AddService(models.Service{ProviderID: f.providerID, Name: "Cut", DurationMinutes: 60, Active: true})
	f.long = f.store.AddService(models.Service{ProviderID: f.providerID, Name: "Colour", DurationMinutes: 90, Active: true})
	return f
}

func (f *fixture) createBooking(now time.Time) *CreateBooking {
	uc := NewCreateBooking(f.store, lock.NewLocalLocker(time.Second), f.cache, f.auditor, f.notifier, nil)
	uc.now = fixedClock(now)
	return uc
}

func (f *fixture) availableSlots(now time.Time) *GetAvailableSlots {
	uc := NewGetAvailableSlots(f.store)
	uc.now = fixedClock(now)
	return uc
}

func (f *fixture) seed(date, hm string, serviceID uint, status string) uint {
	var sid *uint
	if serviceID != 0 {
		sid = &serviceID
	}
	return f.store.AddBooking(models.Booking{
		ProviderID: f.providerID,
		ServiceID:  sid,
		Date:       date,
		Time:       hm,
		Status:     status,
	})
}
