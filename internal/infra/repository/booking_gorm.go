package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-engine/internal/domain/availability"
	domain "github.com/BruksfildServices01/booking-engine/internal/domain/booking"
	"github.com/BruksfildServices01/booking-engine/internal/httperr"
	"github.com/BruksfildServices01/booking-engine/internal/models"
)

const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgUniqueViolation      = "23505"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Provider
// --------------------------------------------------

func (r *BookingGormRepository) GetProvider(
	ctx context.Context,
	id uint,
) (*models.Provider, error) {
	return getProvider(r.db.WithContext(ctx), id)
}

func (r *BookingGormRepository) UpdateSchedule(
	ctx context.Context,
	providerID uint,
	blob []byte,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Provider{}).
		Where("id = ?", providerID).
		Update("work_schedule", datatypes.JSON(blob))
	if res.Error != nil {
		return fmt.Errorf("update schedule: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	providerID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND provider_id = ?", serviceID, providerID).
		First(&svc).Error; err != nil {
		return nil, notFound("get service", err)
	}
	return &svc, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) ListBusyBookings(
	ctx context.Context,
	providerID uint,
	fromDate string,
	toDate string,
) ([]availability.Busy, error) {
	return listBusy(r.db.WithContext(ctx), providerID, fromDate, toDate)
}

// --------------------------------------------------
// Booking (agenda / state change)
// --------------------------------------------------

func (r *BookingGormRepository) ListBookingsForPeriod(
	ctx context.Context,
	providerID uint,
	fromDate string,
	toDate string,
) ([]models.Booking, error) {

	var bookings []models.Booking

	err := r.db.WithContext(ctx).
		Preload("Service").
		Where(
			"provider_id = ? AND date >= ? AND date <= ?",
			providerID,
			fromDate,
			toDate,
		).
		Order("date ASC, time ASC").
		Find(&bookings).Error

	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	return bookings, nil
}

func (r *BookingGormRepository) GetBookingForProvider(
	ctx context.Context,
	bookingID uint,
	providerID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ? AND provider_id = ?", bookingID, providerID).
		First(&b).Error; err != nil {
		return nil, notFound("get booking", err)
	}

	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	if err := r.db.WithContext(ctx).Save(b).Error; err != nil {
		return fmt.Errorf("update booking: %w", err)
	}
	return nil
}

// --------------------------------------------------
// Admission
// --------------------------------------------------

func (r *BookingGormRepository) WithinAdmission(
	ctx context.Context,
	fn func(tx domain.AdmissionTx) error,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&admissionTx{db: tx})
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})

	if err == nil {
		return nil
	}

	var be httperr.BusinessError
	switch {
	case errors.As(err, &be):
		return err
	case IsConflict(err):
		return httperr.BusinessError{
			Kind: httperr.KindConflict,
			Code: "slot_taken",
			Err:  err,
		}
	}
	return httperr.ErrInfrastructure("storage_unavailable", err)
}

type admissionTx struct {
	db *gorm.DB
}

func (t *admissionTx) GetProvider(
	ctx context.Context,
	id uint,
) (*models.Provider, error) {
	return getProvider(t.db.WithContext(ctx), id)
}

func (t *admissionTx) ListBusyBookings(
	ctx context.Context,
	providerID uint,
	fromDate string,
	toDate string,
) ([]availability.Busy, error) {
	return listBusy(t.db.WithContext(ctx), providerID, fromDate, toDate)
}

func (t *admissionTx) GetOrCreateClient(
	ctx context.Context,
	providerID uint,
	name string,
	phone string,
) (*models.Client, error) {

	var client models.Client
	err := t.db.WithContext(ctx).
		Where("provider_id = ? AND phone = ?", providerID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find client: %w", err)
	}

	client = models.Client{
		ProviderID: providerID,
		Name:       name,
		Phone:      phone,
	}

	if err := t.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	return &client, nil
}

func (t *admissionTx) InsertBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	if err := t.db.WithContext(ctx).Create(b).Error; err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

type busyRow struct {
	Date            string
	Time            string
	DurationMinutes int
}

// listBusy resolves each booking's current service duration in the same
// query; an orphaned booking comes back with zero and gets the fallback.
func listBusy(
	db *gorm.DB,
	providerID uint,
	fromDate string,
	toDate string,
) ([]availability.Busy, error) {

	var rows []busyRow
	if err := db.
		Table("bookings b").
		Select("b.date, b.time, COALESCE(s.duration_minutes, 0) AS duration_minutes").
		Joins("LEFT JOIN services s ON s.id = b.service_id AND s.provider_id = b.provider_id").
		Where(
			"b.provider_id = ? AND b.date >= ? AND b.date <= ? AND b.status IN ?",
			providerID,
			fromDate,
			toDate,
			domain.BusyStatusStrings(),
		).
		Order("b.date ASC, b.time ASC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("list busy bookings: %w", err)
	}

	busy := make([]availability.Busy, 0, len(rows))
	for _, row := range rows {
		busy = append(busy, availability.Busy{
			Date:            row.Date,
			Time:            row.Time,
			DurationMinutes: row.DurationMinutes,
		})
	}
	return busy, nil
}

func getProvider(db *gorm.DB, id uint) (*models.Provider, error) {
	var p models.Provider
	if err := db.First(&p, id).Error; err != nil {
		return nil, notFound("get provider", err)
	}
	return &p, nil
}

func notFound(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// IsConflict reports whether err is Postgres refusing a write because a
// concurrent transaction got there first.
func IsConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case pgSerializationFailure, pgDeadlockDetected, pgUniqueViolation:
		return true
	}
	return false
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
var _ domain.AdmissionTx = (*admissionTx)(nil)
