// README: Pricing calculation endpoint.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hanco/internal/modules/pricing"
	"hanco/internal/modules/vehicle"
)

// VehicleSource resolves a catalog entry when the caller quotes by vehicle id.
type VehicleSource interface {
	Get(ctx context.Context, id string) (*vehicle.Vehicle, error)
}

type PricingHandler struct {
	pricing  *pricing.Service
	vehicles VehicleSource
}

func NewPricingHandler(svc *pricing.Service, vehicles VehicleSource) *PricingHandler {
	return &PricingHandler{pricing: svc, vehicles: vehicles}
}

type calculateReq struct {
	VehicleID       string  `json:"vehicle_id"`
	BaseDailyRate   float64 `json:"base_daily_rate"`
	Category        string  `json:"category"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	City            string  `json:"city"`
	PickupLocation  string  `json:"pickup_location"`
	DropoffLocation string  `json:"dropoff_location"`
}

// Calculate handles POST /api/v1/pricing/calculate. The caller either sends
// explicit rate and category fields or a vehicle_id; with a vehicle_id the
// rate, category and default city come from the catalog entry.
func (h *PricingHandler) Calculate(c *gin.Context) {
	var req calculateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid start_date")
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid end_date")
		return
	}

	if req.VehicleID != "" {
		if !isValidID(req.VehicleID) {
			writeError(c, http.StatusBadRequest, "invalid vehicle id")
			return
		}
		v, err := h.vehicles.Get(c.Request.Context(), req.VehicleID)
		if err != nil {
			if err == vehicle.ErrNotFound {
				writeError(c, http.StatusNotFound, err.Error())
				return
			}
			writeError(c, http.StatusInternalServerError, "internal error")
			return
		}
		req.BaseDailyRate = v.BaseDailyRate
		req.Category = v.Category
		if req.City == "" {
			req.City = v.City
		}
	}

	result, err := h.pricing.Quote(c.Request.Context(), pricing.QuoteRequest{
		BaseDailyRate:   req.BaseDailyRate,
		Category:        req.Category,
		StartDate:       start,
		EndDate:         end,
		City:            req.City,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
	})
	if err != nil {
		switch err {
		case pricing.ErrInvalidDateRange, pricing.ErrInvalidBaseRate:
			writeError(c, http.StatusBadRequest, err.Error())
		default:
			writeError(c, http.StatusInternalServerError, "internal error")
		}
		return
	}
	writeJSON(c, http.StatusOK, result)
}
