package memstore

import (
	"github.com/BruksfildServices01/booking-engine/internal/domain/schedule"
	"github.com/BruksfildServices01/booking-engine/internal/models"
)

// SeedDemo adds a provider open Mon-Sat 09:00-18:00 with a lunch break and
// two services, so the memory backend is usable out of the box.
func (s *Store) SeedDemo(timezone string) (uint, error) {
	blob, err := schedule.Encode(schedule.Config{
		StartTime:   "09:00",
		EndTime:     "18:00",
		WorkingDays: []int{1, 2, 3, 4, 5, 6},
		BreakStart:  "12:00",
		BreakEnd:    "13:00",
	})
	if err != nil {
		return 0, err
	}

	id := s.AddProvider(models.Provider{
		Name:          "Demo Studio",
		Slug:          "demo-studio",
		Timezone:      timezone,
		WorkSchedule:  blob,
		NotifyChannel: "provider-demo-studio",
	})
	s.AddService(models.Service{ProviderID: id, Name: "Haircut", DurationMinutes: 30, Active: true})
	s.AddService(models.Service{ProviderID: id, Name: "Colour", DurationMinutes: 90, Active: true})
	return id, nil
}
