// README: Chatbot service; strict booking funnel with the pricing engine as its quote tool.
package chat

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"hanco/internal/ai"
	"hanco/internal/modules/booking"
	"hanco/internal/modules/pricing"
	"hanco/internal/modules/vehicle"
)

const dateLayout = "2006-01-02"

var vehicleCategories = []string{"economy", "compact", "sedan", "suv", "luxury"}
var serviceCities = []string{"riyadh", "jeddah", "dammam", "mecca", "medina", "taif"}

// VehicleCatalog lists and resolves vehicles during the selection step.
type VehicleCatalog interface {
	Get(ctx context.Context, id string) (*vehicle.Vehicle, error)
	List(ctx context.Context, category, city string) ([]vehicle.Vehicle, error)
}

// Quoter is the pricing engine boundary; the assistant quotes through it and
// never invents prices.
type Quoter interface {
	Quote(ctx context.Context, req pricing.QuoteRequest) (*pricing.Result, error)
}

// BookingDesk creates the booking once the guest confirms.
type BookingDesk interface {
	Create(ctx context.Context, cmd booking.CreateCommand) (*booking.Booking, error)
}

// SessionStore persists conversations, keyed by guest and session id.
type SessionStore interface {
	Get(ctx context.Context, guestID, id string) (*Session, error)
	Save(ctx context.Context, sess *Session) error
}

// Service drives the conversation. The LLM only assists with free-text
// understanding; the funnel itself is deterministic and survives AI outages.
type Service struct {
	store    SessionStore
	vehicles VehicleCatalog
	pricing  Quoter
	bookings BookingDesk
	llm      ai.LLMProvider
	logger   *zap.Logger
}

// NewService wires the chatbot. llm may be nil; keyword parsing then carries
// the whole conversation.
func NewService(store SessionStore, vehicles VehicleCatalog, quoter Quoter, bookings BookingDesk, llm ai.LLMProvider, logger *zap.Logger) *Service {
	return &Service{store: store, vehicles: vehicles, pricing: quoter, bookings: bookings, llm: llm, logger: logger}
}

// HandleMessage advances the session state machine with one user message.
// Sessions are looked up under the verified caller's UID, so a session id can
// only ever resolve to that guest's own conversation.
func (s *Service) HandleMessage(ctx context.Context, sessionID, guestID, message string) (*Response, error) {
	sess, err := s.store.Get(ctx, guestID, sessionID)
	if err == ErrSessionNotFound {
		sess = &Session{ID: sessionID, GuestID: guestID, State: StateIdle, Context: map[string]string{}}
	} else if err != nil {
		return nil, err
	}
	if sess.Context == nil {
		sess.Context = map[string]string{}
	}

	message = strings.TrimSpace(message)
	var resp *Response
	switch sess.State {
	case StateIdle:
		resp = s.handleIdle(ctx, sess, message)
	case StateVehicleType:
		resp = s.handleVehicleType(ctx, sess, message)
	case StateSelection:
		resp = s.handleSelection(ctx, sess, message)
	case StateDates:
		resp = s.handleDates(sess, message)
	case StatePickup:
		resp = s.handlePickup(sess, message)
	case StateDropoff:
		resp = s.handleDropoff(sess, message)
	case StateInsurance:
		resp = s.handleInsurance(sess, message)
	case StatePayment:
		resp = s.handlePayment(ctx, sess, message)
	case StateQuote, StateConfirm:
		resp = s.handleConfirm(ctx, sess, message)
	default:
		// Completed or unknown state: start over.
		sess.State = StateVehicleType
		sess.Context = map[string]string{}
		resp = &Response{
			Reply:   "What type of vehicle are you looking for?",
			State:   sess.State,
			Options: vehicleCategories,
		}
	}

	if err := s.store.Save(ctx, sess); err != nil {
		s.logger.Warn("chat session save failed", zap.String("session", sessionID), zap.Error(err))
	}
	return resp, nil
}

func (s *Service) handleIdle(ctx context.Context, sess *Session, message string) *Response {
	// Let the model prefill funnel fields from a free-form opening message.
	if s.llm != nil && message != "" {
		s.prefillFromIntent(ctx, sess, message)
	}

	sess.State = StateVehicleType
	if sess.Context["category"] != "" {
		return s.handleVehicleType(ctx, sess, sess.Context["category"])
	}
	return &Response{
		Reply:   "Welcome to Hanco! What type of vehicle are you looking for?",
		State:   sess.State,
		Options: vehicleCategories,
	}
}

// prefillFromIntent asks the LLM for structured fields. Any failure is
// swallowed: the funnel asks for the fields one by one regardless.
func (s *Service) prefillFromIntent(ctx context.Context, sess *Session, message string) {
	ictx, cancel := context.WithTimeout(ctx, 8*time.Second)
	defer cancel()

	intent, err := s.llm.ParseRentalIntent(ictx, message, map[string]string{
		"current_date":       time.Now().Format(dateLayout),
		"conversation_state": string(sess.State),
		"known_fields":       strings.Join(knownFields(sess.Context), ","),
	})
	if err != nil {
		s.logger.Warn("intent parse failed, continuing with funnel", zap.Error(err))
		return
	}
	setIfPresent(sess.Context, "category", intent.Category)
	setIfPresent(sess.Context, "start_date", intent.StartDate)
	setIfPresent(sess.Context, "end_date", intent.EndDate)
	setIfPresent(sess.Context, "pickup_location", intent.PickupLocation)
	setIfPresent(sess.Context, "dropoff_location", intent.DropoffLocation)
	if intent.City != nil && sess.Context["pickup_location"] == "" {
		sess.Context["pickup_location"] = *intent.City
	}
}

func (s *Service) handleVehicleType(ctx context.Context, sess *Session, message string) *Response {
	category := matchKeyword(message, vehicleCategories)
	if category == "" {
		return &Response{
			Reply:   "Please pick one of our vehicle categories.",
			State:   sess.State,
			Options: vehicleCategories,
		}
	}
	sess.Context["category"] = category

	city := cityOf(sess.Context["pickup_location"])
	vehicles, err := s.vehicles.List(ctx, category, city)
	if err != nil || len(vehicles) == 0 {
		return &Response{
			Reply:   fmt.Sprintf("Sorry, no %s vehicles are available right now. Another category?", category),
			State:   sess.State,
			Options: vehicleCategories,
		}
	}

	options := make([]string, 0, len(vehicles))
	for i, v := range vehicles {
		sess.Context[fmt.Sprintf("option_%d", i+1)] = v.ID
		options = append(options, fmt.Sprintf("%d. %s (%.0f SAR/day)", i+1, v.Name, v.BaseDailyRate))
		if i == 4 {
			break
		}
	}
	sess.State = StateSelection
	return &Response{
		Reply:   "Here is what we have. Which one would you like? Reply with the number.",
		State:   sess.State,
		Options: options,
	}
}

func (s *Service) handleSelection(ctx context.Context, sess *Session, message string) *Response {
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(message), "."))
	vehicleID := ""
	if err == nil {
		vehicleID = sess.Context[fmt.Sprintf("option_%d", n)]
	}
	if vehicleID == "" {
		return &Response{Reply: "Please reply with the number of the vehicle you want.", State: sess.State}
	}
	if _, err := s.vehicles.Get(ctx, vehicleID); err != nil {
		return &Response{Reply: "That vehicle is no longer available. Please pick another number.", State: sess.State}
	}
	sess.Context["vehicle_id"] = vehicleID
	sess.State = StateDates
	if sess.Context["start_date"] != "" && sess.Context["end_date"] != "" {
		return s.handleDates(sess, sess.Context["start_date"]+" to "+sess.Context["end_date"])
	}
	return &Response{
		Reply: "When do you need it? Send the dates as YYYY-MM-DD to YYYY-MM-DD.",
		State: sess.State,
	}
}

func (s *Service) handleDates(sess *Session, message string) *Response {
	start, end, ok := parseDateRange(message)
	if !ok {
		return &Response{
			Reply: "I could not read those dates. Please use YYYY-MM-DD to YYYY-MM-DD, for example 2026-09-10 to 2026-09-13.",
			State: sess.State,
		}
	}
	if !end.After(start) {
		return &Response{Reply: "The return date must be after the pickup date. Please send both again.", State: sess.State}
	}
	sess.Context["start_date"] = start.Format(dateLayout)
	sess.Context["end_date"] = end.Format(dateLayout)
	sess.State = StatePickup
	if sess.Context["pickup_location"] != "" {
		return s.handlePickup(sess, sess.Context["pickup_location"])
	}
	return &Response{Reply: "Which city do you want to pick the car up in?", State: sess.State, Options: serviceCities}
}

func (s *Service) handlePickup(sess *Session, message string) *Response {
	city := matchKeyword(message, serviceCities)
	if city == "" {
		return &Response{Reply: "We operate in these cities. Which one for pickup?", State: sess.State, Options: serviceCities}
	}
	sess.Context["pickup_location"] = titleCase(city)
	sess.State = StateDropoff
	if sess.Context["dropoff_location"] != "" {
		return s.handleDropoff(sess, sess.Context["dropoff_location"])
	}
	return &Response{Reply: "And where will you drop it off? Same city is fine.", State: sess.State, Options: serviceCities}
}

func (s *Service) handleDropoff(sess *Session, message string) *Response {
	city := matchKeyword(message, serviceCities)
	if city == "" {
		return &Response{Reply: "Please pick a dropoff city from the list.", State: sess.State, Options: serviceCities}
	}
	sess.Context["dropoff_location"] = titleCase(city)
	sess.State = StateInsurance
	return &Response{
		Reply:   "Would you like comprehensive insurance at 25 SAR per day?",
		State:   sess.State,
		Options: []string{"yes", "no"},
	}
}

func (s *Service) handleInsurance(sess *Session, message string) *Response {
	answer := matchKeyword(message, []string{"yes", "no"})
	if answer == "" {
		return &Response{Reply: "Just a yes or no: add insurance?", State: sess.State, Options: []string{"yes", "no"}}
	}
	sess.Context["insurance"] = answer
	sess.State = StatePayment
	return &Response{
		Reply:   "How would you like to pay?",
		State:   sess.State,
		Options: []string{"cash", "card"},
	}
}

func (s *Service) handlePayment(ctx context.Context, sess *Session, message string) *Response {
	mode := matchKeyword(message, []string{"cash", "card"})
	if mode == "" {
		return &Response{Reply: "Cash or card?", State: sess.State, Options: []string{"cash", "card"}}
	}
	sess.Context["payment_mode"] = mode
	return s.quoteAndAskConfirm(ctx, sess)
}

// quoteAndAskConfirm runs the authoritative server-side quote and presents it.
func (s *Service) quoteAndAskConfirm(ctx context.Context, sess *Session) *Response {
	v, err := s.vehicles.Get(ctx, sess.Context["vehicle_id"])
	if err != nil {
		sess.State = StateVehicleType
		return &Response{Reply: "That vehicle is gone, sorry. Let's pick another one.", State: sess.State, Options: vehicleCategories}
	}
	start, _ := time.Parse(dateLayout, sess.Context["start_date"])
	end, _ := time.Parse(dateLayout, sess.Context["end_date"])

	quote, err := s.pricing.Quote(ctx, pricing.QuoteRequest{
		BaseDailyRate:   v.BaseDailyRate,
		Category:        v.Category,
		StartDate:       start,
		EndDate:         end,
		City:            cityOf(sess.Context["pickup_location"]),
		PickupLocation:  sess.Context["pickup_location"],
		DropoffLocation: sess.Context["dropoff_location"],
	})
	if err != nil {
		sess.State = StateDates
		return &Response{Reply: "Those dates do not work for a quote. Could you send them again?", State: sess.State}
	}

	total := quote.TotalPrice
	if sess.Context["insurance"] == "yes" {
		total += 25 * int64(quote.Days)
	}
	sess.State = StateConfirm
	reply := fmt.Sprintf(
		"Here is your quote for the %s: %d SAR/day, %d SAR total for %d days",
		v.Name, quote.DailyPrice, total, quote.Days,
	)
	if quote.Savings > 0 {
		reply += fmt.Sprintf(" (you save %d SAR)", quote.Savings)
	}
	reply += ". Shall I book it?"
	return &Response{Reply: reply, State: sess.State, Options: []string{"yes", "no"}}
}

func (s *Service) handleConfirm(ctx context.Context, sess *Session, message string) *Response {
	answer := matchKeyword(message, []string{"yes", "no"})
	if answer == "no" {
		sess.State = StateIdle
		sess.Context = map[string]string{}
		return &Response{Reply: "No problem, the quote is discarded. Anything else?", State: sess.State}
	}
	if answer == "" {
		return &Response{Reply: "Shall I book it? Yes or no.", State: sess.State, Options: []string{"yes", "no"}}
	}

	start, _ := time.Parse(dateLayout, sess.Context["start_date"])
	end, _ := time.Parse(dateLayout, sess.Context["end_date"])
	b, err := s.bookings.Create(ctx, booking.CreateCommand{
		GuestID:           sess.GuestID,
		VehicleID:         sess.Context["vehicle_id"],
		StartDate:         start,
		EndDate:           end,
		PickupLocation:    sess.Context["pickup_location"],
		DropoffLocation:   sess.Context["dropoff_location"],
		InsuranceSelected: sess.Context["insurance"] == "yes",
		PaymentMode:       sess.Context["payment_mode"],
	})
	if err != nil {
		s.logger.Warn("chat booking create failed", zap.String("session", sess.ID), zap.Error(err))
		sess.State = StateIdle
		return &Response{Reply: "I could not complete the booking, sorry. Please try again in a moment.", State: sess.State}
	}

	sess.State = StateCompleted
	return &Response{
		Reply: fmt.Sprintf("Booked! Your reference is %s. Total %d SAR, payable by %s. See you at pickup!",
			b.ID[:8], b.TotalPrice.Amount, b.PaymentMode),
		State: sess.State,
	}
}

// matchKeyword finds the first candidate contained in the message, ignoring case.
func matchKeyword(message string, candidates []string) string {
	lower := strings.ToLower(message)
	for _, c := range candidates {
		if strings.Contains(lower, c) {
			return c
		}
	}
	return ""
}

// parseDateRange accepts "YYYY-MM-DD to YYYY-MM-DD" with some separator slack.
func parseDateRange(message string) (time.Time, time.Time, bool) {
	fields := strings.FieldsFunc(message, func(r rune) bool {
		return r == ' ' || r == ',' || r == ';'
	})
	var dates []time.Time
	for _, f := range fields {
		if d, err := time.Parse(dateLayout, f); err == nil {
			dates = append(dates, d)
		}
	}
	if len(dates) < 2 {
		return time.Time{}, time.Time{}, false
	}
	return dates[0], dates[1], true
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func cityOf(location string) string {
	fields := strings.Fields(location)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func setIfPresent(ctxMap map[string]string, key string, value *string) {
	if value != nil && *value != "" {
		ctxMap[key] = *value
	}
}

func knownFields(ctxMap map[string]string) []string {
	var keys []string
	for k, v := range ctxMap {
		if v != "" && !strings.HasPrefix(k, "option_") {
			keys = append(keys, k)
		}
	}
	return keys
}
