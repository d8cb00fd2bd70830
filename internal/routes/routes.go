package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/booking-engine/internal/config"
	domain "github.com/BruksfildServices01/booking-engine/internal/domain/booking"
	"github.com/BruksfildServices01/booking-engine/internal/handlers"
	"github.com/BruksfildServices01/booking-engine/internal/infra/lock"
	"github.com/BruksfildServices01/booking-engine/internal/middleware"
	"github.com/BruksfildServices01/booking-engine/internal/notify"
	ucBooking "github.com/BruksfildServices01/booking-engine/internal/usecase/booking"
)

// Dependencies are the process-wide singletons built in main.
type Dependencies struct {
	Repo     domain.Repository
	Locker   lock.Locker
	Cache    ucBooking.QuickSlotCache
	Audit    ucBooking.Auditor
	Notifier notify.Notifier
	Checks   map[string]handlers.Check
	Log      *zap.Logger
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, deps Dependencies) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(deps.Log))
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// USE CASES
	// ======================================================
	slotsUC := ucBooking.NewGetAvailableSlots(deps.Repo)
	quickSlotsUC := ucBooking.NewGetQuickSlots(deps.Repo, deps.Cache, cfg.QuickScanDays)

	createBookingUC := ucBooking.NewCreateBooking(
		deps.Repo,
		deps.Locker,
		deps.Cache,
		deps.Audit,
		deps.Notifier,
		deps.Log,
	)

	updateStatusUC := ucBooking.NewUpdateBookingStatus(
		deps.Repo,
		deps.Cache,
		deps.Audit,
		deps.Notifier,
	)

	listByDateUC := ucBooking.NewListBookingsByDate(deps.Repo)
	listByMonthUC := ucBooking.NewListBookingsByMonth(deps.Repo)

	getScheduleUC := ucBooking.NewGetSchedule(deps.Repo)
	updateScheduleUC := ucBooking.NewUpdateSchedule(deps.Repo, deps.Cache, deps.Audit)

	// ======================================================
	// HANDLERS
	// ======================================================
	publicHandler := handlers.NewPublicHandler(slotsUC, quickSlotsUC, createBookingUC)
	bookingHandler := handlers.NewBookingHandler(listByDateUC, listByMonthUC, updateStatusUC)
	scheduleHandler := handlers.NewScheduleHandler(getScheduleUC, updateScheduleUC)
	healthHandler := handlers.NewHealthHandler(deps.Checks, deps.Log)

	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public/providers/:id")
		publicAPI.Use(middleware.RateLimit(cfg.RateLimitPerMin, deps.Log))
		{
			publicAPI.GET("/slots", publicHandler.Slots)
			publicAPI.GET("/quick-slots", publicHandler.QuickSlots)
			publicAPI.POST("/bookings", publicHandler.CreateBooking)
		}

		// ------------------------------
		// PROVIDER (JWT)
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			secured.GET("/bookings", bookingHandler.ListByDate)
			secured.GET("/bookings/month", bookingHandler.ListByMonth)
			secured.PATCH("/bookings/:id/status", bookingHandler.UpdateStatus)

			secured.GET("/schedule", scheduleHandler.Get)
			secured.PUT("/schedule", scheduleHandler.Update)
		}
	}
}
