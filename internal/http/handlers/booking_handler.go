// README: Booking endpoints (create, read, status transitions).
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hanco/internal/http/middleware"
	"hanco/internal/modules/booking"
	"hanco/internal/modules/vehicle"
)

type BookingHandler struct {
	bookings *booking.Service
}

func NewBookingHandler(svc *booking.Service) *BookingHandler {
	return &BookingHandler{bookings: svc}
}

type createBookingReq struct {
	VehicleID         string `json:"vehicle_id"`
	StartDate         string `json:"start_date"`
	EndDate           string `json:"end_date"`
	PickupLocation    string `json:"pickup_location"`
	DropoffLocation   string `json:"dropoff_location"`
	InsuranceSelected bool   `json:"insurance_selected"`
	PaymentMode       string `json:"payment_mode"`
}

type bookingView struct {
	ID                string `json:"id"`
	GuestID           string `json:"guest_id"`
	VehicleID         string `json:"vehicle_id"`
	StartDate         string `json:"start_date"`
	EndDate           string `json:"end_date"`
	PickupLocation    string `json:"pickup_location"`
	DropoffLocation   string `json:"dropoff_location"`
	InsuranceSelected bool   `json:"insurance_selected"`
	InsuranceAmount   int64  `json:"insurance_amount"`
	DailyPrice        int64  `json:"daily_price"`
	TotalPrice        int64  `json:"total_price"`
	Currency          string `json:"currency"`
	Status            string `json:"status"`
	PaymentStatus     string `json:"payment_status"`
	PaymentMode       string `json:"payment_mode"`
}

func toBookingView(b *booking.Booking) bookingView {
	return bookingView{
		ID:                b.ID,
		GuestID:           b.GuestID,
		VehicleID:         b.VehicleID,
		StartDate:         b.StartDate.Format("2006-01-02"),
		EndDate:           b.EndDate.Format("2006-01-02"),
		PickupLocation:    b.PickupLocation,
		DropoffLocation:   b.DropoffLocation,
		InsuranceSelected: b.InsuranceSelected,
		InsuranceAmount:   b.InsuranceAmount.Amount,
		DailyPrice:        b.DailyPrice.Amount,
		TotalPrice:        b.TotalPrice.Amount,
		Currency:          b.TotalPrice.Currency,
		Status:            string(b.Status),
		PaymentStatus:     string(b.PaymentStatus),
		PaymentMode:       b.PaymentMode,
	}
}

// Create handles POST /api/v1/bookings.
func (h *BookingHandler) Create(c *gin.Context) {
	var req createBookingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if !isValidID(req.VehicleID) {
		writeError(c, http.StatusBadRequest, "invalid vehicle id")
		return
	}
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid start_date")
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid end_date")
		return
	}

	b, err := h.bookings.Create(c.Request.Context(), booking.CreateCommand{
		GuestID:           middleware.CallerUID(c),
		VehicleID:         req.VehicleID,
		StartDate:         start,
		EndDate:           end,
		PickupLocation:    req.PickupLocation,
		DropoffLocation:   req.DropoffLocation,
		InsuranceSelected: req.InsuranceSelected,
		PaymentMode:       req.PaymentMode,
	})
	if err != nil {
		if err == vehicle.ErrNotFound {
			writeError(c, http.StatusNotFound, err.Error())
			return
		}
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, toBookingView(b))
}

// Get handles GET /api/v1/bookings/:id. Guests can only read their own bookings.
func (h *BookingHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid booking id")
		return
	}
	b, err := h.bookings.Get(c.Request.Context(), id)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	if b.GuestID != middleware.CallerUID(c) && middleware.CallerRole(c) != "staff" {
		writeError(c, http.StatusForbidden, "not your booking")
		return
	}
	writeJSON(c, http.StatusOK, toBookingView(b))
}

// ListMine handles GET /api/v1/bookings.
func (h *BookingHandler) ListMine(c *gin.Context) {
	bookings, err := h.bookings.ListByGuest(c.Request.Context(), middleware.CallerUID(c))
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	views := make([]bookingView, 0, len(bookings))
	for i := range bookings {
		views = append(views, toBookingView(&bookings[i]))
	}
	writeJSON(c, http.StatusOK, map[string]any{"bookings": views})
}

// Confirm handles POST /api/v1/bookings/:id/confirm (staff only).
func (h *BookingHandler) Confirm(c *gin.Context) {
	h.transition(c, h.bookings.Confirm, booking.StatusConfirmed, true)
}

// Activate handles POST /api/v1/bookings/:id/activate (staff only).
func (h *BookingHandler) Activate(c *gin.Context) {
	h.transition(c, h.bookings.Activate, booking.StatusActive, true)
}

// Complete handles POST /api/v1/bookings/:id/complete (staff only).
func (h *BookingHandler) Complete(c *gin.Context) {
	h.transition(c, h.bookings.Complete, booking.StatusCompleted, true)
}

// Cancel handles POST /api/v1/bookings/:id/cancel. The owning guest may cancel.
func (h *BookingHandler) Cancel(c *gin.Context) {
	h.transition(c, h.bookings.Cancel, booking.StatusCancelled, false)
}

func (h *BookingHandler) transition(c *gin.Context, op func(ctx context.Context, id string) error, to booking.Status, staffOnly bool) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid booking id")
		return
	}
	if staffOnly && middleware.CallerRole(c) != "staff" {
		writeError(c, http.StatusForbidden, "staff only")
		return
	}
	if !staffOnly {
		b, err := h.bookings.Get(c.Request.Context(), id)
		if err != nil {
			writeBookingError(c, err)
			return
		}
		if b.GuestID != middleware.CallerUID(c) && middleware.CallerRole(c) != "staff" {
			writeError(c, http.StatusForbidden, "not your booking")
			return
		}
	}
	if err := op(c.Request.Context(), id); err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"status": to})
}
