// README: Pickup/dropoff branch locations.
package branch

type Branch struct {
	ID        string
	Name      string
	City      string
	Address   string
	Phone     string
	Latitude  float64
	Longitude float64
	IsActive  bool
}
