// README: Booking store backed by PostgreSQL.
package booking

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, b *Booking) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO bookings (
            id, guest_id, vehicle_id, start_date, end_date,
            pickup_location, dropoff_location,
            insurance_selected, insurance_amount,
            daily_price, total_price,
            status, payment_status, payment_mode,
            created_at, updated_at
        ) VALUES (
            $1, $2, $3, $4, $5,
            $6, $7,
            $8, $9,
            $10, $11,
            $12, $13, $14,
            $15, $16
        )`,
		b.ID, b.GuestID, b.VehicleID, b.StartDate, b.EndDate,
		b.PickupLocation, b.DropoffLocation,
		b.InsuranceSelected, b.InsuranceAmount.Amount,
		b.DailyPrice.Amount, b.TotalPrice.Amount,
		string(b.Status), string(b.PaymentStatus), b.PaymentMode,
		b.CreatedAt, b.UpdatedAt,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id string) (*Booking, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, guest_id, vehicle_id, start_date, end_date,
               pickup_location, dropoff_location,
               insurance_selected, insurance_amount,
               daily_price, total_price,
               status, payment_status, payment_mode,
               created_at, updated_at
        FROM bookings
        WHERE id = $1`, id,
	)

	var b Booking
	err := row.Scan(
		&b.ID, &b.GuestID, &b.VehicleID, &b.StartDate, &b.EndDate,
		&b.PickupLocation, &b.DropoffLocation,
		&b.InsuranceSelected, &b.InsuranceAmount.Amount,
		&b.DailyPrice.Amount, &b.TotalPrice.Amount,
		&b.Status, &b.PaymentStatus, &b.PaymentMode,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	b.InsuranceAmount.Currency = "SAR"
	b.DailyPrice.Currency = "SAR"
	b.TotalPrice.Currency = "SAR"
	return &b, nil
}

// ListByGuest returns a guest's bookings, newest first.
func (s *Store) ListByGuest(ctx context.Context, guestID string) ([]Booking, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, guest_id, vehicle_id, start_date, end_date,
               pickup_location, dropoff_location,
               insurance_selected, insurance_amount,
               daily_price, total_price,
               status, payment_status, payment_mode,
               created_at, updated_at
        FROM bookings
        WHERE guest_id = $1
        ORDER BY created_at DESC`, guestID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.GuestID, &b.VehicleID, &b.StartDate, &b.EndDate,
			&b.PickupLocation, &b.DropoffLocation,
			&b.InsuranceSelected, &b.InsuranceAmount.Amount,
			&b.DailyPrice.Amount, &b.TotalPrice.Amount,
			&b.Status, &b.PaymentStatus, &b.PaymentMode,
			&b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		b.InsuranceAmount.Currency = "SAR"
		b.DailyPrice.Currency = "SAR"
		b.TotalPrice.Currency = "SAR"
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// UpdateStatus transitions a booking from one status to another.
// Returns false when the row was not in the expected from status.
func (s *Store) UpdateStatus(ctx context.Context, id string, from, to Status) (bool, error) {
	tag, err := s.db.Exec(ctx, `
        UPDATE bookings
        SET status = $1, updated_at = NOW()
        WHERE id = $2 AND status = $3`,
		string(to), id, string(from),
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) UpdatePaymentStatus(ctx context.Context, id string, status PaymentStatus) error {
	_, err := s.db.Exec(ctx, `
        UPDATE bookings
        SET payment_status = $1, updated_at = NOW()
        WHERE id = $2`,
		string(status), id,
	)
	return err
}

// HasOverlap reports whether the vehicle already has a live booking
// overlapping the requested window.
func (s *Store) HasOverlap(ctx context.Context, vehicleID string, start, end time.Time) (bool, error) {
	row := s.db.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM bookings
            WHERE vehicle_id = $1
              AND status IN ('pending','confirmed','active')
              AND start_date <= $3
              AND end_date >= $2
        )`, vehicleID, start, end,
	)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
