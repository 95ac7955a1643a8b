// README: Booking service; server-side authoritative quote plus state transitions.
package booking

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"hanco/internal/modules/pricing"
	"hanco/internal/types"
)

var (
	ErrBadRequest   = errors.New("bad request")
	ErrNotFound     = errors.New("booking not found")
	ErrInvalidState = errors.New("invalid state transition")
	ErrConflict     = errors.New("booking state conflict")
	ErrUnavailable  = errors.New("vehicle unavailable for the requested dates")
)

// VehicleCatalog resolves the vehicle a booking is made against.
type VehicleCatalog interface {
	Get(ctx context.Context, id string) (*Vehicle, error)
}

// Vehicle is the slice of the catalog entry the booking flow needs.
type Vehicle struct {
	ID            string
	Category      string
	City          string
	BaseDailyRate float64
}

// Quoter runs the authoritative server-side price computation. Prices
// computed by clients are estimates only and are never trusted for charging.
type Quoter interface {
	Quote(ctx context.Context, req pricing.QuoteRequest) (*pricing.Result, error)
}

type Service struct {
	store    *Store
	vehicles VehicleCatalog
	pricing  Quoter
}

func NewService(store *Store, vehicles VehicleCatalog, quoter Quoter) *Service {
	return &Service{store: store, vehicles: vehicles, pricing: quoter}
}

type CreateCommand struct {
	GuestID           string
	VehicleID         string
	StartDate         time.Time
	EndDate           time.Time
	PickupLocation    string
	DropoffLocation   string
	InsuranceSelected bool
	PaymentMode       string
}

// insuranceDailyRate is the flat comprehensive-cover add-on per rental day.
const insuranceDailyRate = 25

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Booking, error) {
	if cmd.GuestID == "" || cmd.VehicleID == "" {
		return nil, ErrBadRequest
	}
	if !cmd.EndDate.After(cmd.StartDate) {
		return nil, ErrBadRequest
	}
	if cmd.PaymentMode != "cash" && cmd.PaymentMode != "card" {
		return nil, ErrBadRequest
	}

	v, err := s.vehicles.Get(ctx, cmd.VehicleID)
	if err != nil {
		return nil, err
	}

	taken, err := s.store.HasOverlap(ctx, v.ID, cmd.StartDate, cmd.EndDate)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUnavailable
	}

	quote, err := s.pricing.Quote(ctx, pricing.QuoteRequest{
		BaseDailyRate:   v.BaseDailyRate,
		Category:        v.Category,
		StartDate:       cmd.StartDate,
		EndDate:         cmd.EndDate,
		City:            v.City,
		PickupLocation:  cmd.PickupLocation,
		DropoffLocation: cmd.DropoffLocation,
	})
	if err != nil {
		return nil, err
	}

	var insurance int64
	if cmd.InsuranceSelected {
		insurance = insuranceDailyRate * int64(quote.Days)
	}

	now := time.Now()
	b := &Booking{
		ID:                newID(),
		GuestID:           cmd.GuestID,
		VehicleID:         cmd.VehicleID,
		StartDate:         cmd.StartDate,
		EndDate:           cmd.EndDate,
		PickupLocation:    cmd.PickupLocation,
		DropoffLocation:   cmd.DropoffLocation,
		InsuranceSelected: cmd.InsuranceSelected,
		InsuranceAmount:   types.SAR(insurance),
		DailyPrice:        types.SAR(quote.DailyPrice),
		TotalPrice:        types.SAR(quote.TotalPrice + insurance),
		Status:            StatusPending,
		PaymentStatus:     PaymentPending,
		PaymentMode:       cmd.PaymentMode,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.store.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Booking, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) ListByGuest(ctx context.Context, guestID string) ([]Booking, error) {
	return s.store.ListByGuest(ctx, guestID)
}

func (s *Service) Confirm(ctx context.Context, id string) error {
	return s.transition(ctx, id, StatusConfirmed)
}

func (s *Service) Activate(ctx context.Context, id string) error {
	return s.transition(ctx, id, StatusActive)
}

func (s *Service) Complete(ctx context.Context, id string) error {
	return s.transition(ctx, id, StatusCompleted)
}

func (s *Service) Cancel(ctx context.Context, id string) error {
	return s.transition(ctx, id, StatusCancelled)
}

// MarkPaid records a completed payment against the booking.
func (s *Service) MarkPaid(ctx context.Context, id string) error {
	if _, err := s.store.Get(ctx, id); err != nil {
		return err
	}
	return s.store.UpdatePaymentStatus(ctx, id, PaymentCompleted)
}

func (s *Service) transition(ctx context.Context, id string, to Status) error {
	b, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if !CanTransition(b.Status, to) {
		return ErrInvalidState
	}
	ok, err := s.store.UpdateStatus(ctx, id, b.Status, to)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConflict
	}
	return nil
}

func newID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
