// README: Branch location endpoints.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hanco/internal/http/middleware"
	"hanco/internal/modules/branch"
)

type BranchHandler struct {
	branches *branch.Service
}

func NewBranchHandler(svc *branch.Service) *BranchHandler {
	return &BranchHandler{branches: svc}
}

type createBranchReq struct {
	Name      string  `json:"name"`
	City      string  `json:"city"`
	Address   string  `json:"address"`
	Phone     string  `json:"phone"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type branchView struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	City      string  `json:"city"`
	Address   string  `json:"address"`
	Phone     string  `json:"phone,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func toBranchView(b branch.Branch) branchView {
	return branchView{
		ID:        b.ID,
		Name:      b.Name,
		City:      b.City,
		Address:   b.Address,
		Phone:     b.Phone,
		Latitude:  b.Latitude,
		Longitude: b.Longitude,
	}
}

// List handles GET /api/v1/branches?city=.
func (h *BranchHandler) List(c *gin.Context) {
	branches, err := h.branches.List(c.Request.Context(), c.Query("city"))
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	views := make([]branchView, 0, len(branches))
	for _, b := range branches {
		views = append(views, toBranchView(b))
	}
	writeJSON(c, http.StatusOK, map[string]any{"branches": views})
}

// Create handles POST /api/v1/branches (staff only).
func (h *BranchHandler) Create(c *gin.Context) {
	if middleware.CallerRole(c) != "staff" {
		writeError(c, http.StatusForbidden, "staff only")
		return
	}
	var req createBranchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	b, err := h.branches.Create(c.Request.Context(), branch.CreateCommand{
		Name:      req.Name,
		City:      req.City,
		Address:   req.Address,
		Phone:     req.Phone,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		if err == branch.ErrBadRequest {
			writeError(c, http.StatusBadRequest, err.Error())
			return
		}
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusCreated, toBranchView(*b))
}
