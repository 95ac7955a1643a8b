// README: API gateway; registers HTTP routes and delegates to module services.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hanco/internal/http/handlers"
	"hanco/internal/http/middleware"
	"hanco/internal/infra"
	"hanco/internal/modules/booking"
	"hanco/internal/modules/branch"
	"hanco/internal/modules/chat"
	"hanco/internal/modules/payment"
	"hanco/internal/modules/pricing"
	"hanco/internal/modules/vehicle"
)

type ServerDeps struct {
	Pricing  *pricing.Service
	Vehicles *vehicle.Service
	Bookings *booking.Service
	Payments *payment.Service
	Branches *branch.Service
	Chat     *chat.Service
	Verifier infra.TokenVerifier
	Logger   *zap.Logger
}

type Server struct {
	deps ServerDeps
}

func NewServer(deps ServerDeps) *Server {
	return &Server{deps: deps}
}

// Routes builds the gin engine. Pricing, vehicle listings and branches are
// public; booking, payment and chat require a verified Firebase token.
func (s *Server) Routes() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Recovery(s.deps.Logger))
	r.Use(middleware.Logging(s.deps.Logger))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api/v1")

	pricingHandler := handlers.NewPricingHandler(s.deps.Pricing, s.deps.Vehicles)
	api.POST("/pricing/calculate", pricingHandler.Calculate)

	vehicleHandler := handlers.NewVehicleHandler(s.deps.Vehicles)
	api.GET("/vehicles", vehicleHandler.List)
	api.GET("/vehicles/:id", vehicleHandler.Get)

	branchHandler := handlers.NewBranchHandler(s.deps.Branches)
	api.GET("/branches", branchHandler.List)

	authed := api.Group("")
	authed.Use(middleware.Auth(s.deps.Verifier))

	bookingHandler := handlers.NewBookingHandler(s.deps.Bookings)
	authed.POST("/bookings", bookingHandler.Create)
	authed.GET("/bookings", bookingHandler.ListMine)
	authed.GET("/bookings/:id", bookingHandler.Get)
	authed.POST("/bookings/:id/confirm", bookingHandler.Confirm)
	authed.POST("/bookings/:id/activate", bookingHandler.Activate)
	authed.POST("/bookings/:id/complete", bookingHandler.Complete)
	authed.POST("/bookings/:id/cancel", bookingHandler.Cancel)

	paymentHandler := handlers.NewPaymentHandler(s.deps.Payments, s.deps.Bookings)
	authed.POST("/payments/simulate", paymentHandler.Simulate)

	authed.POST("/branches", branchHandler.Create)

	chatHandler := handlers.NewChatHandler(s.deps.Chat)
	authed.POST("/chat/message", chatHandler.Message)

	return r
}
