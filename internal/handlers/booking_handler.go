package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-engine/internal/httperr"
	"github.com/BruksfildServices01/booking-engine/internal/httpresp"
	"github.com/BruksfildServices01/booking-engine/internal/middleware"
	ucBooking "github.com/BruksfildServices01/booking-engine/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	listByDate  *ucBooking.ListBookingsByDate
	listByMonth *ucBooking.ListBookingsByMonth
	status      *ucBooking.UpdateBookingStatus
}

func NewBookingHandler(
	listByDate *ucBooking.ListBookingsByDate,
	listByMonth *ucBooking.ListBookingsByMonth,
	status *ucBooking.UpdateBookingStatus,
) *BookingHandler {
	return &BookingHandler{
		listByDate:  listByDate,
		listByMonth: listByMonth,
		status:      status,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) ListByDate(c *gin.Context) {
	providerID := middleware.ProviderID(c)

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_params", "A date is required.")
		return
	}

	out, err := h.listByDate.Execute(c.Request.Context(), providerID, date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *BookingHandler) ListByMonth(c *gin.Context) {
	providerID := middleware.ProviderID(c)

	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil {
		httperr.BadRequest(c, "invalid_month", "Year and month are required.")
		return
	}

	out, err := h.listByMonth.Execute(c.Request.Context(), providerID, year, month)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// STATUS
// ======================================================

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	providerID := middleware.ProviderID(c)

	bookingID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "invalid_status", "A status is required.")
		return
	}

	b, err := h.status.Execute(c.Request.Context(), providerID, bookingID, req.Status)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"id":     b.ID,
		"status": b.Status,
		"date":   b.Date,
		"time":   b.Time,
	})
}
