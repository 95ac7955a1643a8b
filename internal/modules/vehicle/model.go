// README: Vehicle catalog entry.
package vehicle

import "time"

type Vehicle struct {
	ID            string
	Name          string
	Category      string // Economy, Compact, Sedan, SUV, Luxury
	City          string
	BaseDailyRate float64
	Seats         int
	Transmission  string
	ImageURL      string
	Available     bool
	CreatedAt     time.Time
}
