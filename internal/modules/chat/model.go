// README: Chat session state machine definitions.
package chat

import "time"

// State is one step of the strict booking funnel. The assistant never skips
// ahead: every booking field is collected in order before a quote is shown.
type State string

const (
	StateIdle        State = "idle"
	StateVehicleType State = "vehicle_type"
	StateSelection   State = "selection"
	StateDates       State = "dates"
	StatePickup      State = "pickup"
	StateDropoff     State = "dropoff"
	StateInsurance   State = "insurance"
	StatePayment     State = "payment"
	StateQuote       State = "quote"
	StateConfirm     State = "confirm"
	StateCompleted   State = "completed"
)

// Session is one guest conversation. Context holds the funnel's collected
// fields as strings (category, vehicle_id, start_date, end_date, ...).
type Session struct {
	ID        string            `json:"id"`
	GuestID   string            `json:"guest_id"`
	State     State             `json:"state"`
	Context   map[string]string `json:"context"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// Response is what the handler returns to the widget.
type Response struct {
	Reply   string   `json:"reply"`
	State   State    `json:"state"`
	Options []string `json:"options,omitempty"`
}
