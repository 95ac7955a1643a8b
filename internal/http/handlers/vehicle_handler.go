// README: Vehicle catalog endpoints.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hanco/internal/modules/vehicle"
)

type VehicleHandler struct {
	vehicles *vehicle.Service
}

func NewVehicleHandler(svc *vehicle.Service) *VehicleHandler {
	return &VehicleHandler{vehicles: svc}
}

type vehicleView struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	City          string  `json:"city"`
	BaseDailyRate float64 `json:"base_daily_rate"`
	Seats         int     `json:"seats"`
	Transmission  string  `json:"transmission"`
	ImageURL      string  `json:"image_url,omitempty"`
	Available     bool    `json:"available"`
}

func toVehicleView(v vehicle.Vehicle) vehicleView {
	return vehicleView{
		ID:            v.ID,
		Name:          v.Name,
		Category:      v.Category,
		City:          v.City,
		BaseDailyRate: v.BaseDailyRate,
		Seats:         v.Seats,
		Transmission:  v.Transmission,
		ImageURL:      v.ImageURL,
		Available:     v.Available,
	}
}

// List handles GET /api/v1/vehicles?category=&city=.
func (h *VehicleHandler) List(c *gin.Context) {
	vehicles, err := h.vehicles.List(c.Request.Context(), c.Query("category"), c.Query("city"))
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	views := make([]vehicleView, 0, len(vehicles))
	for _, v := range vehicles {
		views = append(views, toVehicleView(v))
	}
	writeJSON(c, http.StatusOK, map[string]any{"vehicles": views})
}

// Get handles GET /api/v1/vehicles/:id.
func (h *VehicleHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid vehicle id")
		return
	}
	v, err := h.vehicles.Get(c.Request.Context(), id)
	if err != nil {
		if err == vehicle.ErrNotFound {
			writeError(c, http.StatusNotFound, err.Error())
			return
		}
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, toVehicleView(*v))
}
