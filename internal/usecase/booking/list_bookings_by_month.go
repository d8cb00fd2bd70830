package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/booking-engine/internal/domain/booking"
	"github.com/BruksfildServices01/booking-engine/internal/dto"
	"github.com/BruksfildServices01/booking-engine/internal/httperr"
	"github.com/BruksfildServices01/booking-engine/internal/timezone"
)

type ListBookingsByMonth struct {
	repo domain.Repository
}

func NewListBookingsByMonth(
	repo domain.Repository,
) *ListBookingsByMonth {
	return &ListBookingsByMonth{
		repo: repo,
	}
}

func (uc *ListBookingsByMonth) Execute(
	ctx context.Context,
	providerID uint,
	year int,
	month int,
) ([]dto.BookingListDTO, error) {

	if year < 1970 || month < 1 || month > 12 {
		return nil, httperr.ErrValidation("invalid_month", "Year or month out of range.")
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	bookings, err := uc.repo.ListBookingsForPeriod(
		ctx,
		providerID,
		timezone.FormatDate(start),
		timezone.FormatDate(end),
	)
	if err != nil {
		return nil, storageError(err, "provider_not_found", "Provider not found.")
	}

	return toListDTO(bookings), nil
}
