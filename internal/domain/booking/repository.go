package booking

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/booking-engine/internal/domain/availability"
	"github.com/BruksfildServices01/booking-engine/internal/models"
)

var ErrNotFound = errors.New("record not found")

type Repository interface {
	// -------- Provider --------
	GetProvider(
		ctx context.Context,
		id uint,
	) (*models.Provider, error)

	UpdateSchedule(
		ctx context.Context,
		providerID uint,
		blob []byte,
	) error

	// -------- Service --------
	GetService(
		ctx context.Context,
		providerID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Availability --------
	// ListBusyBookings returns Pending/Confirmed bookings with dates in
	// [fromDate, toDate], each carrying its service's current duration.
	ListBusyBookings(
		ctx context.Context,
		providerID uint,
		fromDate string,
		toDate string,
	) ([]availability.Busy, error)

	// -------- Booking (agenda / state change) --------
	ListBookingsForPeriod(
		ctx context.Context,
		providerID uint,
		fromDate string,
		toDate string,
	) ([]models.Booking, error)

	GetBookingForProvider(
		ctx context.Context,
		bookingID uint,
		providerID uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Admission --------
	// WithinAdmission runs fn in one serializable transaction. A
	// serialization failure or a duplicate active slot surfaces as a
	// conflict error.
	WithinAdmission(
		ctx context.Context,
		fn func(tx AdmissionTx) error,
	) error
}

// AdmissionTx is the view of the store available inside an admission.
type AdmissionTx interface {
	GetProvider(
		ctx context.Context,
		id uint,
	) (*models.Provider, error)

	ListBusyBookings(
		ctx context.Context,
		providerID uint,
		fromDate string,
		toDate string,
	) ([]availability.Busy, error)

	GetOrCreateClient(
		ctx context.Context,
		providerID uint,
		name string,
		phone string,
	) (*models.Client, error)

	InsertBooking(
		ctx context.Context,
		b *models.Booking,
	) error
}
