package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/booking-engine/internal/domain/availability"
	domain "github.com/BruksfildServices01/booking-engine/internal/domain/booking"
	"github.com/BruksfildServices01/booking-engine/internal/httperr"
	"github.com/BruksfildServices01/booking-engine/internal/models"
)

// Store is an in-memory Repository. Admissions run one at a time, which is
// the strongest form of serializable isolation, and staged writes are
// discarded when the admission fails.
type Store struct {
	admission sync.Mutex

	mu        sync.RWMutex
	nextID    uint
	providers map[uint]models.Provider
	services  map[uint]models.Service
	clients   map[uint]models.Client
	bookings  map[uint]models.Booking
}

func New() *Store {
	return &Store{
		providers: make(map[uint]models.Provider),
		services:  make(map[uint]models.Service),
		clients:   make(map[uint]models.Client),
		bookings:  make(map[uint]models.Booking),
	}
}

// --------------------------------------------------
// Seeding
// --------------------------------------------------

func (s *Store) AddProvider(p models.Provider) uint {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.id(p.ID)
	s.providers[p.ID] = p
	return p.ID
}

func (s *Store) AddService(svc models.Service) uint {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc.ID = s.id(svc.ID)
	s.services[svc.ID] = svc
	return svc.ID
}

func (s *Store) DeleteService(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.services, id)
}

func (s *Store) AddBooking(b models.Booking) uint {
	s.mu.Lock()
	defer s.mu.Unlock()

	b.ID = s.id(b.ID)
	s.bookings[b.ID] = b
	return b.ID
}

// Bookings returns every stored booking ordered by id.
func (s *Store) Bookings() []models.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) id(requested uint) uint {
	if requested > s.nextID {
		s.nextID = requested
		return requested
	}
	if requested != 0 {
		return requested
	}
	s.nextID++
	return s.nextID
}

// --------------------------------------------------
// Provider
// --------------------------------------------------

func (s *Store) GetProvider(_ context.Context, id uint) (*models.Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.providers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (s *Store) UpdateSchedule(_ context.Context, providerID uint, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.providers[providerID]
	if !ok {
		return domain.ErrNotFound
	}
	p.WorkSchedule = datatypes.JSON(append([]byte(nil), blob...))
	p.UpdatedAt = time.Now()
	s.providers[providerID] = p
	return nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (s *Store) GetService(_ context.Context, providerID, serviceID uint) (*models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	svc, ok := s.services[serviceID]
	if !ok || svc.ProviderID != providerID {
		return nil, domain.ErrNotFound
	}
	return &svc, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (s *Store) ListBusyBookings(_ context.Context, providerID uint, fromDate, toDate string) ([]availability.Busy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.busy(providerID, fromDate, toDate, nil), nil
}

func (s *Store) busy(providerID uint, fromDate, toDate string, staged []models.Booking) []availability.Busy {
	var out []availability.Busy

	add := func(b models.Booking) {
		if b.ProviderID != providerID || b.Date < fromDate || b.Date > toDate {
			return
		}
		if !domain.Status(b.Status).IsBusy() {
			return
		}
		out = append(out, availability.Busy{
			Date:            b.Date,
			Time:            b.Time,
			DurationMinutes: s.serviceDuration(b),
		})
	}

	for _, b := range s.bookings {
		add(b)
	}
	for _, b := range staged {
		add(b)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out
}

// serviceDuration mirrors the SQL join: zero when the service is gone.
func (s *Store) serviceDuration(b models.Booking) int {
	if b.ServiceID == nil {
		return 0
	}
	svc, ok := s.services[*b.ServiceID]
	if !ok || svc.ProviderID != b.ProviderID {
		return 0
	}
	return svc.DurationMinutes
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (s *Store) ListBookingsForPeriod(_ context.Context, providerID uint, fromDate, toDate string) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Booking
	for _, b := range s.bookings {
		if b.ProviderID != providerID || b.Date < fromDate || b.Date > toDate {
			continue
		}
		if b.ServiceID != nil {
			if svc, ok := s.services[*b.ServiceID]; ok {
				b.Service = &svc
			}
		}
		out = append(out, b)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (s *Store) GetBookingForProvider(_ context.Context, bookingID, providerID uint) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[bookingID]
	if !ok || b.ProviderID != providerID {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

func (s *Store) UpdateBooking(_ context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[b.ID]; !ok {
		return domain.ErrNotFound
	}
	b.UpdatedAt = time.Now()
	s.bookings[b.ID] = *b
	return nil
}

// --------------------------------------------------
// Admission
// --------------------------------------------------

func (s *Store) WithinAdmission(ctx context.Context, fn func(tx domain.AdmissionTx) error) error {
	s.admission.Lock()
	defer s.admission.Unlock()

	if err := ctx.Err(); err != nil {
		return httperr.ErrInfrastructure("storage_unavailable", err)
	}

	tx := &admissionTx{store: s}
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return httperr.ErrInfrastructure("storage_unavailable", err)
	}

	return s.commit(tx)
}

func (s *Store) commit(tx *admissionTx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range tx.bookings {
		for _, existing := range s.bookings {
			if existing.ProviderID == b.ProviderID &&
				existing.Date == b.Date &&
				existing.Time == b.Time &&
				domain.Status(existing.Status).IsBusy() {
				return httperr.ErrConflict("slot_taken", "")
			}
		}
	}

	for _, c := range tx.clients {
		s.clients[c.ID] = c
	}
	for _, b := range tx.bookings {
		s.bookings[b.ID] = b
	}
	return nil
}

type admissionTx struct {
	store    *Store
	clients  []models.Client
	bookings []models.Booking
}

func (t *admissionTx) GetProvider(ctx context.Context, id uint) (*models.Provider, error) {
	return t.store.GetProvider(ctx, id)
}

func (t *admissionTx) ListBusyBookings(_ context.Context, providerID uint, fromDate, toDate string) ([]availability.Busy, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	return t.store.busy(providerID, fromDate, toDate, t.bookings), nil
}

func (t *admissionTx) GetOrCreateClient(_ context.Context, providerID uint, name, phone string) (*models.Client, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	for _, c := range t.store.clients {
		if c.ProviderID == providerID && c.Phone == phone {
			return &c, nil
		}
	}
	for _, c := range t.clients {
		if c.ProviderID == providerID && c.Phone == phone {
			return &c, nil
		}
	}

	c := models.Client{
		ID:         t.store.id(0),
		ProviderID: providerID,
		Name:       name,
		Phone:      phone,
		CreatedAt:  time.Now(),
	}
	t.clients = append(t.clients, c)
	return &c, nil
}

func (t *admissionTx) InsertBooking(_ context.Context, b *models.Booking) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	now := time.Now()
	b.ID = t.store.id(0)
	b.CreatedAt = now
	b.UpdatedAt = now
	t.bookings = append(t.bookings, *b)
	return nil
}

var _ domain.Repository = (*Store)(nil)
var _ domain.AdmissionTx = (*admissionTx)(nil)
