// README: Payment store backed by PostgreSQL.
package payment

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("payment not found")

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, p *Payment) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO payments (
            id, booking_id, amount, status, transaction_id, card_last4, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.BookingID, p.Amount.Amount, string(p.Status),
		p.TransactionID, p.CardLast4, p.CreatedAt,
	)
	return err
}

func (s *Store) GetByBooking(ctx context.Context, bookingID string) (*Payment, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, booking_id, amount, status, transaction_id, card_last4, created_at
        FROM payments
        WHERE booking_id = $1
        ORDER BY created_at DESC
        LIMIT 1`, bookingID,
	)

	var p Payment
	err := row.Scan(&p.ID, &p.BookingID, &p.Amount.Amount, &p.Status,
		&p.TransactionID, &p.CardLast4, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.Amount.Currency = "SAR"
	return &p, nil
}
