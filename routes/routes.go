package routes

import (
	"time"

	"nekokin/handlers"
	"nekokin/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers account and session endpoints.
func RegisterAuthRoutes(r *gin.Engine) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", handlers.Register)
		api.POST("/login", handlers.Login)

		api.Use(middleware.JWTAuthMiddleware())
		api.POST("/logout", handlers.Logout)
		api.GET("/me", handlers.GetProfile)
		api.PUT("/password", handlers.ChangePassword)
	}
}

// RegisterCustomerRoutes registers customer and pet endpoints.
func RegisterCustomerRoutes(r *gin.Engine) {
	api := r.Group("/api/customers")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.GET("", handlers.ListCustomers)
		api.GET("/:id", handlers.GetCustomer)
		api.PUT("/:id", handlers.UpdateCustomer)
	}

	pets := r.Group("/api/pets")
	pets.Use(middleware.JWTAuthMiddleware())
	{
		pets.POST("", handlers.AddPet)
		pets.GET("", handlers.ListPets)
		pets.GET("/:id", handlers.GetPet)
		pets.PUT("/:id", handlers.UpdatePet)
		pets.DELETE("/:id", handlers.DeletePet)
	}
}

// RegisterCatalogRoutes registers the public catalog endpoints. Reads are
// open; writes require an admin session.
func RegisterCatalogRoutes(r *gin.Engine) {
	services := r.Group("/api/services")
	{
		services.GET("", handlers.ListServices)
		services.GET("/:id", handlers.GetService)

		admin := services.Group("")
		admin.Use(middleware.JWTAuthMiddleware(), middleware.AdminOnlyMiddleware())
		admin.POST("", handlers.CreateService)
		admin.PUT("/:id", handlers.UpdateService)
		admin.DELETE("/:id", handlers.DeleteService)
	}

	doctors := r.Group("/api/doctors")
	{
		doctors.GET("", handlers.ListDoctors)
		doctors.GET("/:id", handlers.GetDoctor)

		reviews := doctors.Group("")
		reviews.Use(middleware.JWTAuthMiddleware())
		reviews.POST("/:id/reviews", handlers.ReviewDoctor)

		admin := doctors.Group("")
		admin.Use(middleware.JWTAuthMiddleware(), middleware.AdminOnlyMiddleware())
		admin.POST("", handlers.CreateDoctor)
		admin.PUT("/:id", handlers.UpdateDoctor)
		admin.DELETE("/:id", handlers.DeleteDoctor)
	}

	news := r.Group("/api/news")
	{
		news.GET("", handlers.ListNews)
		news.GET("/:id", handlers.GetNews)

		admin := news.Group("")
		admin.Use(middleware.JWTAuthMiddleware(), middleware.AdminOnlyMiddleware())
		admin.POST("", handlers.CreateNews)
		admin.PUT("/:id", handlers.UpdateNews)
		admin.DELETE("/:id", handlers.DeleteNews)
	}
}

// RegisterBookingRoutes registers booking lifecycle and availability
// endpoints.
func RegisterBookingRoutes(r *gin.Engine) {
	api := r.Group("/api/bookings")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.POST("", handlers.CreateBooking)
		api.GET("", handlers.ListBookings)
		api.GET("/:id", handlers.GetBooking)
		api.PUT("/:id", handlers.UpdateBooking)
		api.POST("/:id/cancel", handlers.CancelBooking)
		api.DELETE("/:id", handlers.DeleteBooking)

		api.POST("/check-availability/:serviceId", handlers.CheckHotelAvailability)
		api.GET("/available-times/:serviceId", handlers.AvailableTimes)
	}
}

// RegisterPaymentRoutes registers gateway callbacks and the PayPal order
// flow. Return and IPN endpoints are unauthenticated; the gateways sign
// their payloads instead.
func RegisterPaymentRoutes(r *gin.Engine) {
	api := r.Group("/api/payments")
	{
		api.GET("/vnpay/return", handlers.VNPayReturn)
		api.GET("/vnpay/ipn", handlers.VNPayIPN)

		api.GET("/momo/return", handlers.MoMoReturn)
		api.POST("/momo/notify", handlers.MoMoNotify)

		paypal := api.Group("/paypal")
		paypal.Use(middleware.JWTAuthMiddleware())
		paypal.POST("/create-order", handlers.PayPalCreateOrder)
		paypal.POST("/capture-order", handlers.PayPalCaptureOrder)
	}
}

// RegisterShippingRoutes registers the shipment quoting endpoint.
func RegisterShippingRoutes(r *gin.Engine) {
	api := r.Group("/api/shipping")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.POST("/quote", handlers.QuoteShipment)
	}
}

// RegisterAdminRoutes registers the dashboard endpoint.
func RegisterAdminRoutes(r *gin.Engine) {
	api := r.Group("/api/admin")
	api.Use(middleware.JWTAuthMiddleware(), middleware.AdminOnlyMiddleware())
	{
		api.GET("/dashboard", handlers.DashboardStats)
	}
}

// RegisterHealthRoute registers the liveness endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, clientURL string) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{clientURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r)
	RegisterCustomerRoutes(r)
	RegisterCatalogRoutes(r)
	RegisterBookingRoutes(r)
	RegisterPaymentRoutes(r)
	RegisterShippingRoutes(r)
	RegisterAdminRoutes(r)
	RegisterHealthRoute(r)
}
