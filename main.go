package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nekokin/config"
	"nekokin/cron"
	"nekokin/database"
	bookingRepoPkg "nekokin/database/repository/booking"
	customerRepoPkg "nekokin/database/repository/customer"
	doctorRepoPkg "nekokin/database/repository/doctor"
	newsRepoPkg "nekokin/database/repository/news"
	petRepoPkg "nekokin/database/repository/pet"
	serviceRepoPkg "nekokin/database/repository/service"
	"nekokin/handlers"
	"nekokin/middleware"
	"nekokin/routes"
	"nekokin/services/booking"
	"nekokin/services/catalog"
	"nekokin/services/customer"
	"nekokin/services/dashboard"
	"nekokin/services/payment"
	"nekokin/services/shipping"
	"nekokin/services/tasks"
	"nekokin/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// Repositories.
	bookings := bookingRepoPkg.NewMongoBookingRepo()
	services := serviceRepoPkg.NewMongoServiceRepo()
	customers := customerRepoPkg.NewMongoCustomerRepo()
	pets := petRepoPkg.NewMongoPetRepo()
	doctors := doctorRepoPkg.NewMongoDoctorRepo()
	news := newsRepoPkg.NewMongoNewsRepo()

	// Payment gateways behind the shared resolver.
	cfg := config.AppConfig
	paypal := payment.NewPayPalGateway(cfg.PayPalClientID, cfg.PayPalSecret, cfg.PayPalAPIBase(), cfg.PayPalExchangeRate)
	paymentService := payment.NewService(bookings, logger,
		payment.NewVNPayGateway(cfg.VNPTmnCode, cfg.VNPHashSecret, cfg.VNPURL, cfg.VNPReturnURL),
		payment.NewMoMoGateway(cfg.MoMoPartnerCode, cfg.MoMoAccessKey, cfg.MoMoSecretKey, cfg.MoMoReturnURL, cfg.MoMoIPNURL, cfg.MoMoEndpoint),
		paypal,
	)

	// Appointment reminders run through asynq.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	})
	defer asynqClient.Close()
	reminders := tasks.NewReminderScheduler(asynqClient, logger)
	cron.InitReminderWorker(bookings)

	bookingService := &booking.DefaultBookingService{
		Bookings:  bookings,
		Services:  services,
		Pets:      pets,
		Doctors:   doctors,
		Gateways:  paymentService,
		Reminders: reminders,
	}

	shippingService := shipping.NewService(services, utils.GetCacheClient(), logger,
		shipping.NewGoongProvider(cfg.GoongAPIKey),
		shipping.NewGoogleProvider(cfg.GoogleAPIKey),
	)

	handlers.BookingSvc = bookingService
	handlers.PaymentSvc = paymentService
	handlers.PayPal = paypal
	handlers.ShippingSvc = shippingService
	handlers.CustomerSvc = customer.NewService(customers, pets, utils.GetAuthCacheClient(), logger)
	handlers.CatalogSvc = catalog.NewService(services, doctors, news, logger)
	handlers.DashboardSvc = dashboard.NewService(bookings, customers, services, news)

	routes.RegisterRoutes(router, cfg.ClientURL)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
