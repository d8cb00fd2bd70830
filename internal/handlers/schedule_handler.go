package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-engine/internal/domain/schedule"
	"github.com/BruksfildServices01/booking-engine/internal/httperr"
	"github.com/BruksfildServices01/booking-engine/internal/httpresp"
	"github.com/BruksfildServices01/booking-engine/internal/middleware"
	ucBooking "github.com/BruksfildServices01/booking-engine/internal/usecase/booking"
)

type ScheduleHandler struct {
	get    *ucBooking.GetSchedule
	update *ucBooking.UpdateSchedule
}

func NewScheduleHandler(get *ucBooking.GetSchedule, update *ucBooking.UpdateSchedule) *ScheduleHandler {
	return &ScheduleHandler{get: get, update: update}
}

// The hhmm rule is registered by validators.Register.
type ScheduleUpdateRequest struct {
	StartTime   string `json:"start_time" binding:"required,hhmm"`
	EndTime     string `json:"end_time" binding:"required,hhmm"`
	WorkingDays []int  `json:"working_days" binding:"required,min=1,dive,min=0,max=6"`
	BreakStart  string `json:"break_start" binding:"omitempty,hhmm"`
	BreakEnd    string `json:"break_end" binding:"omitempty,hhmm"`
}

func (h *ScheduleHandler) Get(c *gin.Context) {
	view, err := h.get.Execute(c.Request.Context(), middleware.ProviderID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, view)
}

func (h *ScheduleHandler) Update(c *gin.Context) {
	var req ScheduleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "invalid_schedule", "Times must be HH:MM and days 0 (Sunday) to 6.")
		return
	}

	view, err := h.update.Execute(c.Request.Context(), middleware.ProviderID(c), schedule.Config{
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		WorkingDays: req.WorkingDays,
		BreakStart:  req.BreakStart,
		BreakEnd:    req.BreakEnd,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, view)
}
