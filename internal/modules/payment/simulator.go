// README: Payment simulator; validates card details and records simulated charges.
package payment

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"hanco/internal/types"
)

var (
	ErrInvalidCard   = errors.New("invalid card details")
	ErrInvalidAmount = errors.New("payment amount must be positive")
)

// BookingLedger is the booking-side effect of a successful payment.
type BookingLedger interface {
	MarkPaid(ctx context.Context, bookingID string) error
}

// Service simulates payment processing. There is no gateway behind it; after
// validation every charge succeeds, which is the intended development and
// demo behavior.
type Service struct {
	store    *Store
	bookings BookingLedger
	logger   *zap.Logger
}

func NewService(store *Store, bookings BookingLedger, logger *zap.Logger) *Service {
	return &Service{store: store, bookings: bookings, logger: logger}
}

// Process validates the card, records the simulated charge and marks the
// booking paid.
func (s *Service) Process(ctx context.Context, bookingID string, amount int64, card CardDetails) (*Payment, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if err := ValidateCard(card); err != nil {
		return nil, err
	}

	digits := cardDigits(card.Number)
	p := &Payment{
		ID:            newID(),
		BookingID:     bookingID,
		Amount:        types.SAR(amount),
		Status:        StatusCompleted,
		TransactionID: fmt.Sprintf("SIM-%s", strings.ToUpper(newID()[:12])),
		CardLast4:     digits[len(digits)-4:],
		CreatedAt:     time.Now(),
	}
	if err := s.store.Create(ctx, p); err != nil {
		return nil, err
	}
	if err := s.bookings.MarkPaid(ctx, bookingID); err != nil {
		// The charge record exists; surface the inconsistency loudly.
		s.logger.Error("payment recorded but booking not marked paid",
			zap.String("payment_id", p.ID),
			zap.String("booking_id", bookingID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("payment simulated",
		zap.String("payment_id", p.ID),
		zap.String("booking_id", bookingID),
		zap.Int64("amount", amount))
	return p, nil
}

// ValidateCard checks number format (including the Luhn checksum), expiry
// and CVV. It reports only ErrInvalidCard to avoid leaking which field failed
// to a potentially hostile client; details go to validation on the client side.
func ValidateCard(card CardDetails) error {
	digits := cardDigits(card.Number)
	if len(digits) < 13 || len(digits) > 19 {
		return ErrInvalidCard
	}
	if !luhnCheck(digits) {
		return ErrInvalidCard
	}
	if !validExpiry(card.ExpiryMonth, card.ExpiryYear, time.Now()) {
		return ErrInvalidCard
	}
	if !validCVV(card.CVV) {
		return ErrInvalidCard
	}
	return nil
}

// cardDigits strips spaces and dashes; returns "" if anything else remains.
func cardDigits(number string) string {
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(number)
	for _, c := range cleaned {
		if c < '0' || c > '9' {
			return ""
		}
	}
	return cleaned
}

func luhnCheck(digits string) bool {
	if digits == "" {
		return false
	}
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

func validExpiry(month, year int, now time.Time) bool {
	if month < 1 || month > 12 {
		return false
	}
	if year < now.Year() {
		return false
	}
	if year == now.Year() && month < int(now.Month()) {
		return false
	}
	return true
}

func validCVV(cvv string) bool {
	if len(cvv) != 3 && len(cvv) != 4 {
		return false
	}
	for _, c := range cvv {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func newID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
