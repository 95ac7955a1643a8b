// README: Payment record and card detail types.
package payment

import (
	"time"

	"hanco/internal/types"
)

type Status string

const (
	StatusCompleted Status = "completed"
	StatusDeclined  Status = "declined"
)

type Payment struct {
	ID            string
	BookingID     string
	Amount        types.Money
	Status        Status
	TransactionID string
	CardLast4     string
	CreatedAt     time.Time
}

// CardDetails is the simulated card input. The card number is validated and
// then discarded; only the last four digits are ever stored.
type CardDetails struct {
	Number      string
	HolderName  string
	ExpiryMonth int
	ExpiryYear  int
	CVV         string
}
