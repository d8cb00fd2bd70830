package db

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-engine/internal/config"
	"github.com/BruksfildServices01/booking-engine/internal/models"
)

// activeSlotIndex backs the admission check: two active bookings can never
// share a provider, date and start time even if a lock is bypassed.
const activeSlotIndex = `
	CREATE UNIQUE INDEX IF NOT EXISTS ux_bookings_active_slot
	ON bookings (provider_id, date, time)
	WHERE status IN ('pending', 'confirmed')
`

func NewDB(cfg *config.Config, log *zap.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("failed to get sql.DB", zap.Error(err))
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db, cfg.DefaultTimezone); err != nil {
		log.Fatal("failed to migrate", zap.Error(err))
	}

	return db
}

func Migrate(db *gorm.DB, defaultTimezone string) error {
	if err := db.AutoMigrate(
		&models.Provider{},
		&models.Service{},
		&models.Client{},
		&models.Booking{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	if err := db.Exec(activeSlotIndex).Error; err != nil {
		return err
	}

	return db.Exec(`
		UPDATE providers
		SET timezone = ?
		WHERE timezone IS NULL OR timezone = ''
	`, defaultTimezone).Error
}
