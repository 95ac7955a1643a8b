// README: Branch store backed by PostgreSQL.
package branch

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("branch not found")

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, b *Branch) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO branches (
            id, name, city, address, phone, latitude, longitude, is_active
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		b.ID, b.Name, b.City, b.Address, b.Phone, b.Latitude, b.Longitude, b.IsActive,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id string) (*Branch, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, name, city, address, phone, latitude, longitude, is_active
        FROM branches
        WHERE id = $1`, id,
	)
	var b Branch
	err := row.Scan(&b.ID, &b.Name, &b.City, &b.Address, &b.Phone,
		&b.Latitude, &b.Longitude, &b.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListActive returns active branches, optionally filtered by city.
func (s *Store) ListActive(ctx context.Context, city string) ([]Branch, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, name, city, address, phone, latitude, longitude, is_active
        FROM branches
        WHERE is_active
          AND ($1 = '' OR lower(city) = lower($1))
        ORDER BY city, name`, city,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var branches []Branch
	for rows.Next() {
		var b Branch
		if err := rows.Scan(&b.ID, &b.Name, &b.City, &b.Address, &b.Phone,
			&b.Latitude, &b.Longitude, &b.IsActive); err != nil {
			return nil, err
		}
		branches = append(branches, b)
	}
	return branches, rows.Err()
}
