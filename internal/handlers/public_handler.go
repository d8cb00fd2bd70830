package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-engine/internal/dto"
	"github.com/BruksfildServices01/booking-engine/internal/httperr"
	"github.com/BruksfildServices01/booking-engine/internal/httpresp"
	ucBooking "github.com/BruksfildServices01/booking-engine/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	slots  *ucBooking.GetAvailableSlots
	quick  *ucBooking.GetQuickSlots
	create *ucBooking.CreateBooking
}

func NewPublicHandler(
	slots *ucBooking.GetAvailableSlots,
	quick *ucBooking.GetQuickSlots,
	create *ucBooking.CreateBooking,
) *PublicHandler {
	return &PublicHandler{
		slots:  slots,
		quick:  quick,
		create: create,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type SlotsQuery struct {
	Date      string `form:"date" binding:"required"`
	Duration  int    `form:"duration" binding:"omitempty,min=1"`
	ServiceID uint   `form:"service_id"`
}

type PublicCreateBookingRequest struct {
	ServiceID       uint   `json:"service_id"`
	DurationMinutes int    `json:"duration"`
	Date            string `json:"date" binding:"required"` // YYYY-MM-DD
	Time            string `json:"time" binding:"required"` // HH:mm
	ClientName      string `json:"client_name" binding:"required"`
	ClientPhone     string `json:"client_phone" binding:"required"`
}

////////////////////////////////////////////////////////
// SLOTS
////////////////////////////////////////////////////////

func (h *PublicHandler) Slots(c *gin.Context) {
	providerID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var q SlotsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.BadRequest(c, "missing_params", "A date is required.")
		return
	}

	out, err := h.slots.Execute(c.Request.Context(), ucBooking.GetAvailableSlotsInput{
		ProviderID:      providerID,
		Date:            q.Date,
		DurationMinutes: q.Duration,
		ServiceID:       q.ServiceID,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, out)
}

func (h *PublicHandler) QuickSlots(c *gin.Context) {
	providerID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	qs, err := h.quick.Execute(c.Request.Context(), providerID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, qs)
}

////////////////////////////////////////////////////////
// CREATE BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	providerID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req PublicCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "missing_fields", "Please fill in all required fields.")
		return
	}

	b, err := h.create.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		ProviderID:      providerID,
		ServiceID:       req.ServiceID,
		DurationMinutes: req.DurationMinutes,
		Date:            req.Date,
		Time:            req.Time,
		ClientName:      req.ClientName,
		ClientPhone:     req.ClientPhone,
	})
	if err != nil {
		if httperr.IsConflict(err) {
			c.Header("Retry-After", "0")
		}
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, dto.BookingCreatedDTO{
		BookingID: b.ID,
		Status:    b.Status,
		Date:      b.Date,
		Time:      b.Time,
	})
}
