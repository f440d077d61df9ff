package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hotelandino/booking-bff/internal/availability"
	"github.com/hotelandino/booking-bff/internal/clock"
	"github.com/hotelandino/booking-bff/internal/config"
	"github.com/hotelandino/booking-bff/internal/gateway"
	"github.com/hotelandino/booking-bff/internal/handlers"
	"github.com/hotelandino/booking-bff/internal/ledger"
	"github.com/hotelandino/booking-bff/internal/middleware"
	"github.com/hotelandino/booking-bff/internal/orchestrator"
	"github.com/hotelandino/booking-bff/pkg/jwt"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting Hotel Andino Booking BFF")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	logger.Info("Opening hold ledger...")
	store, err := ledger.NewBoltStore(cfg.Ledger.Path)
	if err != nil {
		logger.Fatalf("Failed to open hold ledger: %v", err)
	}
	defer store.Close()

	clk := clock.NewSystem()
	holdLedger := ledger.New(store, clk, logger)

	jwtService := jwt.NewService(cfg.JWT.Secret, cfg.JWT.TokenExpiry)

	timeout := cfg.Gateways.Timeout
	catalogClient := gateway.NewCatalogClient(cfg.Gateways.CatalogURL, timeout, logger)
	roomsClient := gateway.NewRoomsClient(cfg.Gateways.RoomsGraphQLURL, timeout, logger)
	reservationsClient := gateway.NewReservationsClient(cfg.Gateways.APIGatewayURL, timeout, logger)
	usersClient := gateway.NewUsersPaymentsClient(cfg.Gateways.UsersPaymentsURL, cfg.Gateways.APIGatewayURL, timeout, logger)
	bankClient := gateway.NewBankClient(cfg.Gateways.BankURL, cfg.Bank.CustomerAccount, cfg.Bank.HotelAccount, timeout, logger)

	resolver := availability.NewResolver(reservationsClient, logger)
	orch := orchestrator.New(
		usersClient,
		bankClient,
		reservationsClient,
		roomsClient,
		holdLedger,
		clk,
		logger,
		orchestrator.Config{
			RequestedHoldSeconds: cfg.Hold.RequestedSeconds,
			DefaultHoldSeconds:   cfg.Hold.DefaultSeconds,
			CustomerAccount:      cfg.Bank.CustomerAccount,
			HotelAccount:         cfg.Bank.HotelAccount,
		},
	)

	authHandler := handlers.NewAuthHandler(usersClient, jwtService, logger)
	roomsHandler := handlers.NewRoomsHandler(roomsClient, catalogClient, resolver, logger)
	bookingHandler := handlers.NewBookingHandler(orch, logger)
	paymentsHandler := handlers.NewPaymentsHandler(orch, logger)
	adminHandler := handlers.NewAdminHandler(roomsClient, logger)
	reportHandler := handlers.NewReportHandler(orch, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": version,
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/register", authHandler.Register)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", roomsHandler.List)
			rooms.GET("/availability", roomsHandler.Availability)
			rooms.GET("/:id", roomsHandler.Detail)
			rooms.GET("/:id/occupied-dates", roomsHandler.OccupiedDates)
		}

		authed := api.Group("")
		authed.Use(middleware.Auth(jwtService, logger))
		{
			authed.GET("/auth/me", authHandler.Profile)
			authed.PUT("/auth/me", authHandler.UpdateProfile)

			bookings := authed.Group("/bookings")
			{
				bookings.POST("/holds", bookingHandler.CreateHold)
				bookings.GET("/holds/:holdId", bookingHandler.HoldStatus)
				bookings.POST("/holds/:holdId/confirm", bookingHandler.Confirm)
				bookings.DELETE("/holds/:holdId", bookingHandler.Cancel)
				bookings.GET("/reservations", bookingHandler.MyReservations)
			}

			payments := authed.Group("/payments")
			{
				payments.GET("", paymentsHandler.MyPayments)
				payments.POST("/invoices", paymentsHandler.EmitInvoice)
			}

			authed.GET("/reports/bookings.xlsx", reportHandler.Export)

			admin := authed.Group("/admin")
			admin.Use(middleware.AdminOnly())
			{
				admin.POST("/rooms", adminHandler.CreateRoom)
				admin.PUT("/rooms/:id", adminHandler.UpdateRoom)
				admin.DELETE("/rooms/:id", adminHandler.DeactivateRoom)
			}
		}
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infof("Server listening on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}
