package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"clinicbook/handlers"
	"clinicbook/middleware"
	"clinicbook/services/availability"
)

// RegisterHealthRoutes registers liveness and metrics endpoints.
func RegisterHealthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/", hb.Health.RootHandler)
	r.GET("/health", hb.Health.HealthHandler)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterAvailabilityRoutes registers the catalog and availability reads.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/appointmentOptions", hb.Availability.AppointmentOptionsHandler(availability.StrategyNaive))
	r.GET("/v2/appointmentOptions", hb.Availability.AppointmentOptionsHandler(availability.StrategyAggregate))
	r.GET("/appointmentSpecialty", hb.Availability.AppointmentSpecialtyHandler)
}

// RegisterBookingRoutes registers booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/bookings", hb.Booking.CreateBookingHandler)
	r.GET("/bookings", middleware.JWTAuthMiddleware(hb.Guard), hb.Booking.ListClientBookingsHandler)
	r.GET("/booking/:id", hb.Booking.GetBookingHandler)
}

// RegisterUserRoutes registers account and token endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/jwt", hb.Auth.IssueTokenHandler)

	users := r.Group("/users")
	{
		users.POST("", hb.User.CreateUserHandler)
		users.GET("", hb.User.GetAllUsersHandler)
		users.GET("/admin/:email", hb.User.IsAdminHandler)
		users.PUT("/admin/:id",
			middleware.JWTAuthMiddleware(hb.Guard),
			middleware.AdminMiddleware(hb.Guard),
			hb.User.PromoteAdminHandler)
	}
}

// RegisterPaymentRoutes registers gateway and ledger endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/create-payment-intent", hb.Payment.CreatePaymentIntentHandler)
	r.POST("/payments", hb.Payment.RecordPaymentHandler)
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	doctors := r.Group("/doctors")
	{
		doctors.Use(middleware.JWTAuthMiddleware(hb.Guard), middleware.AdminMiddleware(hb.Guard))
		doctors.GET("", hb.Provider.GetAllProvidersHandler)
		doctors.POST("", hb.Provider.CreateProviderHandler)
		doctors.DELETE("/:id", hb.Provider.DeleteProviderHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoutes(r, hb)
	RegisterAvailabilityRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
