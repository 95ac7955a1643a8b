// README: Vehicle store backed by PostgreSQL.
package vehicle

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("vehicle not found")

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Get(ctx context.Context, id string) (*Vehicle, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, name, category, city, base_daily_rate,
               seats, transmission, image_url, available, created_at
        FROM vehicles
        WHERE id = $1`, id,
	)

	var v Vehicle
	err := row.Scan(
		&v.ID, &v.Name, &v.Category, &v.City, &v.BaseDailyRate,
		&v.Seats, &v.Transmission, &v.ImageURL, &v.Available, &v.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// List returns available vehicles, optionally filtered by category and city.
// Empty filter values match everything.
func (s *Store) List(ctx context.Context, category, city string) ([]Vehicle, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, name, category, city, base_daily_rate,
               seats, transmission, image_url, available, created_at
        FROM vehicles
        WHERE available
          AND ($1 = '' OR lower(category) = lower($1))
          AND ($2 = '' OR lower(city) = lower($2))
        ORDER BY base_daily_rate`,
		category, city,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []Vehicle
	for rows.Next() {
		var v Vehicle
		if err := rows.Scan(
			&v.ID, &v.Name, &v.Category, &v.City, &v.BaseDailyRate,
			&v.Seats, &v.Transmission, &v.ImageURL, &v.Available, &v.CreatedAt,
		); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}
