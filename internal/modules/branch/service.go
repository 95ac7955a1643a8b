// README: Branch service; creation geocodes the address when coordinates are missing.
package branch

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"

	"go.uber.org/zap"
)

var ErrBadRequest = errors.New("bad request")

type Service struct {
	store    *Store
	geocoder Geocoder
	logger   *zap.Logger
}

// NewService wires the branch service. geocoder may be nil; branches are then
// created with whatever coordinates the caller supplied.
func NewService(store *Store, geocoder Geocoder, logger *zap.Logger) *Service {
	return &Service{store: store, geocoder: geocoder, logger: logger}
}

type CreateCommand struct {
	Name      string
	City      string
	Address   string
	Phone     string
	Latitude  float64
	Longitude float64
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Branch, error) {
	if cmd.Name == "" || cmd.City == "" || cmd.Address == "" {
		return nil, ErrBadRequest
	}

	lat, lng := cmd.Latitude, cmd.Longitude
	if lat == 0 && lng == 0 && s.geocoder != nil {
		var err error
		lat, lng, err = s.geocoder.Geocode(ctx, cmd.Address, cmd.City)
		if err != nil {
			// A branch without coordinates is still bookable; log and continue.
			s.logger.Warn("branch geocoding failed",
				zap.String("address", cmd.Address),
				zap.String("city", cmd.City),
				zap.Error(err))
			lat, lng = 0, 0
		}
	}

	b := &Branch{
		ID:        newID(),
		Name:      cmd.Name,
		City:      cmd.City,
		Address:   cmd.Address,
		Phone:     cmd.Phone,
		Latitude:  lat,
		Longitude: lng,
		IsActive:  true,
	}
	if err := s.store.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Branch, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, city string) ([]Branch, error) {
	return s.store.ListActive(ctx, city)
}

func newID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
