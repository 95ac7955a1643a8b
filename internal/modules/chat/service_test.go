// README: Chat funnel tests over in-memory doubles.
package chat

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"hanco/internal/modules/booking"
	"hanco/internal/modules/pricing"
	"hanco/internal/modules/vehicle"
	"hanco/internal/types"
)

// memoryStore keys sessions by guest and id like the Redis store does.
type memoryStore struct {
	sessions map[string]*Session
}

func newMemoryStore() *memoryStore {
	return &memoryStore{sessions: map[string]*Session{}}
}

func (m *memoryStore) Get(_ context.Context, guestID, id string) (*Session, error) {
	if s, ok := m.sessions[guestID+":"+id]; ok {
		return s, nil
	}
	return nil, ErrSessionNotFound
}

func (m *memoryStore) Save(_ context.Context, sess *Session) error {
	m.sessions[sess.GuestID+":"+sess.ID] = sess
	return nil
}

type fakeCatalog struct{}

var testVehicle = vehicle.Vehicle{
	ID:            "aaaabbbbccccddddeeeeffff00001111",
	Name:          "Toyota Camry",
	Category:      "Sedan",
	City:          "Riyadh",
	BaseDailyRate: 150,
	Available:     true,
}

func (fakeCatalog) Get(_ context.Context, id string) (*vehicle.Vehicle, error) {
	if id != testVehicle.ID {
		return nil, vehicle.ErrNotFound
	}
	v := testVehicle
	return &v, nil
}

func (fakeCatalog) List(_ context.Context, _, _ string) ([]vehicle.Vehicle, error) {
	return []vehicle.Vehicle{testVehicle}, nil
}

type fakeQuoter struct{}

func (fakeQuoter) Quote(_ context.Context, req pricing.QuoteRequest) (*pricing.Result, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, pricing.ErrInvalidDateRange
	}
	return &pricing.Result{DailyPrice: 164, TotalPrice: 492, Days: 3}, nil
}

// fakeDesk records booking creations.
type fakeDesk struct {
	created []booking.CreateCommand
}

func (d *fakeDesk) Create(_ context.Context, cmd booking.CreateCommand) (*booking.Booking, error) {
	d.created = append(d.created, cmd)
	return &booking.Booking{
		ID:          "0123456789abcdef0123456789abcdef",
		GuestID:     cmd.GuestID,
		TotalPrice:  types.SAR(492),
		PaymentMode: cmd.PaymentMode,
	}, nil
}

func newFunnelService(store SessionStore, desk *fakeDesk) *Service {
	return NewService(store, fakeCatalog{}, fakeQuoter{}, desk, nil, zap.NewNop())
}

func send(t *testing.T, svc *Service, sessionID, guestID, message string) *Response {
	t.Helper()
	resp, err := svc.HandleMessage(context.Background(), sessionID, guestID, message)
	if err != nil {
		t.Fatalf("HandleMessage(%q): %v", message, err)
	}
	return resp
}

func TestHandleMessage_FullFunnel(t *testing.T) {
	desk := &fakeDesk{}
	svc := newFunnelService(newMemoryStore(), desk)

	steps := []struct {
		message   string
		wantState State
	}{
		{"hi", StateVehicleType},
		{"a sedan please", StateSelection},
		{"1", StateDates},
		{"2026-09-10 to 2026-09-13", StatePickup},
		{"riyadh", StateDropoff},
		{"riyadh", StateInsurance},
		{"no", StatePayment},
		{"card", StateConfirm},
	}
	for _, step := range steps {
		resp := send(t, svc, "sess1", "guesta", step.message)
		if resp.State != step.wantState {
			t.Fatalf("after %q: state = %s, want %s (reply: %s)", step.message, resp.State, step.wantState, resp.Reply)
		}
	}

	resp := send(t, svc, "sess1", "guesta", "yes")
	if resp.State != StateCompleted {
		t.Fatalf("after confirm: state = %s, want %s", resp.State, StateCompleted)
	}
	if len(desk.created) != 1 {
		t.Fatalf("bookings created = %d, want 1", len(desk.created))
	}
	cmd := desk.created[0]
	if cmd.GuestID != "guesta" {
		t.Errorf("booking guest = %q, want guesta", cmd.GuestID)
	}
	if cmd.VehicleID != testVehicle.ID {
		t.Errorf("booking vehicle = %q, want %q", cmd.VehicleID, testVehicle.ID)
	}
	if cmd.PaymentMode != "card" {
		t.Errorf("payment mode = %q, want card", cmd.PaymentMode)
	}
}

func TestHandleMessage_SessionsAreIsolatedPerGuest(t *testing.T) {
	desk := &fakeDesk{}
	store := newMemoryStore()
	svc := newFunnelService(store, desk)

	// Guest A advances to the confirmation step under session id "1".
	for _, msg := range []string{"hi", "sedan", "1", "2026-09-10 to 2026-09-13", "riyadh", "riyadh", "no", "cash"} {
		send(t, svc, "1", "guesta", msg)
	}

	// Guest B reuses the same session id. A confirmation must not touch
	// guest A's funnel: B starts a fresh conversation instead.
	resp := send(t, svc, "1", "guestb", "yes")
	if resp.State != StateVehicleType {
		t.Errorf("guest B state = %s, want a fresh %s", resp.State, StateVehicleType)
	}
	if len(desk.created) != 0 {
		t.Fatalf("guest B confirmed a booking on a foreign session: %+v", desk.created)
	}

	// Guest A's session is intact and still confirms A's own booking.
	resp = send(t, svc, "1", "guesta", "yes")
	if resp.State != StateCompleted {
		t.Fatalf("guest A state = %s, want %s", resp.State, StateCompleted)
	}
	if len(desk.created) != 1 || desk.created[0].GuestID != "guesta" {
		t.Fatalf("expected one booking for guesta, got %+v", desk.created)
	}
}

func TestMatchKeyword(t *testing.T) {
	tests := []struct {
		message    string
		candidates []string
		want       string
	}{
		{"I want a SUV please", vehicleCategories, "suv"},
		{"something economy-ish", vehicleCategories, "economy"},
		{"a truck", vehicleCategories, ""},
		{"Pickup in Jeddah tomorrow", serviceCities, "jeddah"},
		{"YES!", []string{"yes", "no"}, "yes"},
		{"", []string{"yes", "no"}, ""},
	}
	for _, tt := range tests {
		if got := matchKeyword(tt.message, tt.candidates); got != tt.want {
			t.Errorf("matchKeyword(%q) = %q, want %q", tt.message, got, tt.want)
		}
	}
}

func TestParseDateRange(t *testing.T) {
	start, end, ok := parseDateRange("2026-09-10 to 2026-09-13")
	if !ok {
		t.Fatal("expected dates to parse")
	}
	if start != time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC) {
		t.Errorf("start = %v", start)
	}
	if end != time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC) {
		t.Errorf("end = %v", end)
	}

	if _, _, ok := parseDateRange("2026-09-10"); ok {
		t.Error("single date should not parse as a range")
	}
	if _, _, ok := parseDateRange("next friday to sunday"); ok {
		t.Error("free-form dates should not parse")
	}
	// Comma separator also works.
	if _, _, ok := parseDateRange("2026-09-10, 2026-09-13"); !ok {
		t.Error("comma-separated dates should parse")
	}
}

func TestCityOf(t *testing.T) {
	tests := []struct {
		location string
		want     string
	}{
		{"Riyadh Airport Terminal 1", "Riyadh"},
		{"Jeddah", "Jeddah"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := cityOf(tt.location); got != tt.want {
			t.Errorf("cityOf(%q) = %q, want %q", tt.location, got, tt.want)
		}
	}
}
