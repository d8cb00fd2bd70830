package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/booking-engine/internal/domain/booking"
	"github.com/BruksfildServices01/booking-engine/internal/domain/interval"
	"github.com/BruksfildServices01/booking-engine/internal/dto"
	"github.com/BruksfildServices01/booking-engine/internal/httperr"
	"github.com/BruksfildServices01/booking-engine/internal/models"
	"github.com/BruksfildServices01/booking-engine/internal/timezone"
)

type ListBookingsByDate struct {
	repo domain.Repository
}

func NewListBookingsByDate(
	repo domain.Repository,
) *ListBookingsByDate {
	return &ListBookingsByDate{
		repo: repo,
	}
}

func (uc *ListBookingsByDate) Execute(
	ctx context.Context,
	providerID uint,
	date string,
) ([]dto.BookingListDTO, error) {

	if _, err := timezone.ParseDate(date, time.UTC); err != nil {
		return nil, httperr.ErrValidation("invalid_date", "Date must be YYYY-MM-DD.")
	}

	bookings, err := uc.repo.ListBookingsForPeriod(ctx, providerID, date, date)
	if err != nil {
		return nil, storageError(err, "provider_not_found", "Provider not found.")
	}

	return toListDTO(bookings), nil
}

func toListDTO(bookings []models.Booking) []dto.BookingListDTO {
	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		duration := b.DurationMinutes
		serviceName := ""
		if b.Service != nil {
			duration = b.Service.DurationMinutes
			serviceName = b.Service.Name
		}
		duration = interval.EffectiveDuration(duration)

		endTime := b.Time
		if start, err := interval.TimeToMinutes(b.Time); err == nil {
			endTime = interval.MinutesToTime(start + duration)
		}

		out = append(out, dto.BookingListDTO{
			ID:              b.ID,
			Date:            b.Date,
			Time:            b.Time,
			EndTime:         endTime,
			DurationMinutes: duration,
			Status:          b.Status,
			ClientName:      b.ClientName,
			ClientPhone:     b.ClientPhone,
			ServiceName:     serviceName,
		})
	}
	return out
}
