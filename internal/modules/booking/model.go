// README: Booking aggregate and status definitions.
package booking

import (
	"time"

	"hanco/internal/types"
)

type Status string

const (
	StatusNone      Status = "none"
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

type Booking struct {
	ID                string
	GuestID           string
	VehicleID         string
	StartDate         time.Time
	EndDate           time.Time
	PickupLocation    string
	DropoffLocation   string
	InsuranceSelected bool
	InsuranceAmount   types.Money
	DailyPrice        types.Money
	TotalPrice        types.Money
	Status            Status
	PaymentStatus     PaymentStatus
	PaymentMode       string // cash, card
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// AllowedTransitions represents the booking state flow as code.
var AllowedTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusActive, StatusCancelled},
	StatusActive:    {StatusCompleted},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}
