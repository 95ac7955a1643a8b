// README: Simulated payment endpoint.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hanco/internal/http/middleware"
	"hanco/internal/modules/booking"
	"hanco/internal/modules/payment"
)

type PaymentHandler struct {
	payments *payment.Service
	bookings *booking.Service
}

func NewPaymentHandler(payments *payment.Service, bookings *booking.Service) *PaymentHandler {
	return &PaymentHandler{payments: payments, bookings: bookings}
}

type simulatePaymentReq struct {
	BookingID   string `json:"booking_id"`
	CardNumber  string `json:"card_number"`
	HolderName  string `json:"holder_name"`
	ExpiryMonth int    `json:"expiry_month"`
	ExpiryYear  int    `json:"expiry_year"`
	CVV         string `json:"cvv"`
}

// Simulate handles POST /api/v1/payments/simulate. The amount is taken from
// the booking, never from the client.
func (h *PaymentHandler) Simulate(c *gin.Context) {
	var req simulatePaymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if !isValidID(req.BookingID) {
		writeError(c, http.StatusBadRequest, "invalid booking id")
		return
	}

	b, err := h.bookings.Get(c.Request.Context(), req.BookingID)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	if b.GuestID != middleware.CallerUID(c) {
		writeError(c, http.StatusForbidden, "not your booking")
		return
	}
	if b.PaymentStatus == booking.PaymentCompleted {
		writeError(c, http.StatusConflict, "booking already paid")
		return
	}

	p, err := h.payments.Process(c.Request.Context(), b.ID, b.TotalPrice.Amount, payment.CardDetails{
		Number:      req.CardNumber,
		HolderName:  req.HolderName,
		ExpiryMonth: req.ExpiryMonth,
		ExpiryYear:  req.ExpiryYear,
		CVV:         req.CVV,
	})
	if err != nil {
		switch err {
		case payment.ErrInvalidCard, payment.ErrInvalidAmount:
			writeError(c, http.StatusBadRequest, err.Error())
		default:
			writeError(c, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(c, http.StatusOK, map[string]any{
		"payment_id":     p.ID,
		"transaction_id": p.TransactionID,
		"status":         p.Status,
		"amount":         p.Amount.Amount,
		"currency":       p.Amount.Currency,
		"card_last4":     p.CardLast4,
	})
}
