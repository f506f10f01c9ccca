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

	"github.com/maarriet/costa-rica-tourism-system/internal/clock"
	"github.com/maarriet/costa-rica-tourism-system/internal/config"
	"github.com/maarriet/costa-rica-tourism-system/internal/database"
	"github.com/maarriet/costa-rica-tourism-system/internal/handlers"
	"github.com/maarriet/costa-rica-tourism-system/internal/middleware"
	"github.com/maarriet/costa-rica-tourism-system/internal/models"
	"github.com/maarriet/costa-rica-tourism-system/internal/services"
	"github.com/maarriet/costa-rica-tourism-system/migrations"
	"github.com/maarriet/costa-rica-tourism-system/pkg/jwt"
	"github.com/maarriet/costa-rica-tourism-system/pkg/mailer"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	logger.Info("Starting Costa Rica Tourism Reservation Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	logrus.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Run schema migrations
	pgDB, ok := db.(*database.PostgresDB)
	if !ok {
		logger.Fatal("Failed to cast database connection to PostgresDB")
	}
	if err := migrations.Apply(pgDB.DB); err != nil {
		logger.Fatalf("Failed to apply migrations: %v", err)
	}
	logger.Info("Schema migrations applied")

	// Initialize repositories
	categoryRepo := database.NewCategoryRepository(db)
	placeRepo := database.NewPlaceRepository(db)
	reservationRepo := database.NewReservationRepository(db)
	alertRepo := database.NewAlertRepository(db)
	userRepo := database.NewUserRepository(db)
	dashboardRepo := database.NewDashboardRepository(db)

	// Initialize services
	logger.Info("Initializing services...")
	systemClock := clock.NewSystem()

	jwtService := jwt.NewService(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	var mail mailer.Mailer
	if cfg.Email.Mode == "production" {
		mail = mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:        cfg.Email.Host,
			Port:        cfg.Email.Port,
			Username:    cfg.Email.Username,
			Password:    cfg.Email.Password,
			From:        cfg.Email.From,
			DisplayName: cfg.Email.DisplayName,
		})
	} else {
		mail = mailer.NewDevMailer(logger)
	}
	logger.Infof("Email gateway: %s", mail.GetName())

	codeGen := services.NewCodeGeneratorService(systemClock)
	capacitySvc := services.NewCapacityService(placeRepo, reservationRepo)
	categorySvc := services.NewCategoryService(categoryRepo)
	placeSvc := services.NewPlaceService(placeRepo, categoryRepo, codeGen)
	reservationSvc := services.NewReservationService(reservationRepo, placeRepo, alertRepo, capacitySvc, codeGen, systemClock)
	alertSvc := services.NewAlertService(alertRepo, reservationRepo, placeRepo, mail, systemClock)
	authSvc := services.NewAuthService(userRepo, jwtService, cfg.Security.BcryptCost)
	reportSvc := services.NewReportService(reservationRepo, placeRepo, systemClock)

	cronService := services.NewCronService(alertSvc, reservationSvc)
	if err := cronService.Start(); err != nil {
		logger.Fatalf("Failed to start cron service: %v", err)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authSvc, userRepo)
	categoryHandler := handlers.NewCategoryHandler(categorySvc)
	placeHandler := handlers.NewPlaceHandler(placeSvc, capacitySvc, systemClock)
	reservationHandler := handlers.NewReservationHandler(reservationSvc)
	alertHandler := handlers.NewAlertHandler(alertSvc, cronService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardRepo, systemClock)
	reportHandler := handlers.NewReportHandler(reportSvc, systemClock)
	healthHandler := handlers.NewHealthHandler(db)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Security.EnableRequestLog {
		router.Use(requestLogger(logger))
	}

	// CORS configuration
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", healthHandler.Health)

	authRequired := middleware.AuthMiddleware(jwtService)
	adminOnly := middleware.RequireRole(string(models.RoleAdministrator))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.GET("/me", authRequired, authHandler.Me)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", categoryHandler.List)
			categories.GET("/:id", categoryHandler.Get)

			categories.POST("", authRequired, adminOnly, categoryHandler.Create)
			categories.PUT("/:id", authRequired, adminOnly, categoryHandler.Update)
			categories.DELETE("/:id", authRequired, adminOnly, categoryHandler.Delete)
		}

		places := v1.Group("/places")
		{
			places.GET("", placeHandler.List)
			places.GET("/:id", placeHandler.Get)
			places.GET("/code/:code", placeHandler.GetByCode)
			places.GET("/:id/availability", placeHandler.Availability)

			places.POST("", authRequired, adminOnly, placeHandler.Create)
			places.PUT("/:id", authRequired, adminOnly, placeHandler.Update)
			places.DELETE("/:id", authRequired, adminOnly, placeHandler.Delete)
		}

		reservations := v1.Group("/reservations")
		reservations.Use(authRequired)
		{
			reservations.POST("", reservationHandler.Create)
			reservations.GET("", reservationHandler.List)
			reservations.GET("/:id", reservationHandler.Get)
			reservations.GET("/code/:code", reservationHandler.GetByCode)
			reservations.GET("/:id/alerts", adminOnly, alertHandler.ListByReservation)
			reservations.POST("/:id/cancel", reservationHandler.Cancel)

			reservations.POST("/:id/confirm", adminOnly, reservationHandler.Confirm)
			reservations.POST("/:id/check-in", adminOnly, reservationHandler.CheckIn)
			reservations.POST("/:id/check-out", adminOnly, reservationHandler.CheckOut)
			reservations.POST("/:id/complete", adminOnly, reservationHandler.Complete)
		}

		alerts := v1.Group("/alerts")
		alerts.Use(authRequired, adminOnly)
		{
			alerts.POST("", alertHandler.Create)
			alerts.GET("/active", alertHandler.ListActive)
			alerts.GET("/:id", alertHandler.Get)
			alerts.POST("/:id/mark-sent", alertHandler.MarkSent)
			alerts.POST("/:id/mark-unsent", alertHandler.MarkUnsent)
			alerts.POST("/run-reminders", alertHandler.RunReminders)
		}

		dashboard := v1.Group("/dashboard")
		dashboard.Use(authRequired, adminOnly)
		{
			dashboard.GET("/stats", dashboardHandler.Stats)
			dashboard.GET("/high-occupancy", dashboardHandler.HighOccupancy)
		}

		reports := v1.Group("/reports")
		reports.Use(authRequired, adminOnly)
		{
			reports.GET("/reservations.csv", reportHandler.ReservationsCSV)
			reports.GET("/reservations.pdf", reportHandler.ReservationsPDF)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	cronService.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"latency_ms": latency.Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}

		if userCtx, exists := middleware.GetUserContext(c); exists {
			fields["user_id"] = userCtx.UserID.String()
		}

		entry := logger.WithFields(fields)
		switch {
		case c.Writer.Status() >= 500:
			entry.Error("Request failed")
		case c.Writer.Status() >= 400:
			entry.Warn("Request rejected")
		default:
			entry.Info("Request completed")
		}
	}
}
