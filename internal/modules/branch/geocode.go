// README: Branch address geocoding via the Google Maps Geocoding API.
package branch

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

// Geocoder resolves an address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address, city string) (lat, lng float64, err error)
}

// MapsGeocoder is the production Geocoder backed by Google Maps.
type MapsGeocoder struct {
	client *maps.Client
}

func NewMapsGeocoder(apiKey string) (*MapsGeocoder, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &MapsGeocoder{client: client}, nil
}

func (g *MapsGeocoder) Geocode(ctx context.Context, address, city string) (float64, float64, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		Address: fmt.Sprintf("%s, %s, Saudi Arabia", address, city),
		Region:  "SA",
	})
	if err != nil {
		return 0, 0, fmt.Errorf("geocoding api error: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("no geocoding results for %q in %s", address, city)
	}
	loc := results[0].Geometry.Location
	return loc.Lat, loc.Lng, nil
}
