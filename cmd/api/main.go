package main

import (
	"fmt"
	"net/http"
	"os"

	"tramex/internal/config"
	"tramex/internal/database"
	"tramex/internal/handlers"
	"tramex/internal/logger"
	"tramex/internal/middleware"
	"tramex/internal/roles"
	"tramex/internal/services"
	"tramex/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "tramex/internal/docs" // Import swagger docs
)

// @title           Tramex API
// @version         1.0
// @description     Tramex is the back office for a Kinshasa-Dubai money transfer and parcel logistics company: transfers with commission tracking, receipts, reports, parcels, and staff administration.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	networkService := services.NewNetworkService(db)
	transactionService := services.NewTransactionService(db, networkService)
	reportService := services.NewReportService(transactionService)
	clientService := services.NewClientService(db)
	merchandiseService := services.NewMerchandiseService(db)
	parcelService := services.NewParcelService(db)
	backupService := services.NewBackupService(db, transactionService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	reportHandler := handlers.NewReportHandler(reportService, auditService)
	networkHandler := handlers.NewNetworkHandler(networkService, auditService)
	clientHandler := handlers.NewClientHandler(clientService, auditService)
	merchandiseHandler := handlers.NewMerchandiseHandler(merchandiseService, auditService)
	parcelHandler := handlers.NewParcelHandler(parcelService, auditService)
	userHandler := handlers.NewUserHandler(userService, auditService)
	backupHandler := handlers.NewBackupHandler(backupService, auditService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Public parcel tracking
	v1.GET("/track/:tracking_number", parcelHandler.TrackParcel)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Dashboard
	protected.GET("/dashboard",
		middleware.RequirePermission(func(p roles.Permissions) bool { return p.CanViewAllTransactions }),
		transactionHandler.GetDashboard)

	// Transaction routes
	transactions := protected.Group("/transactions")
	transactions.POST("",
		middleware.RequirePermission(func(p roles.Permissions) bool { return p.CanCreateTransactions }),
		transactionHandler.CreateTransaction)
	transactions.GET("",
		middleware.RequirePermission(func(p roles.Permissions) bool { return p.CanViewAllTransactions }),
		transactionHandler.GetTransactions)
	transactions.GET("/:id",
		middleware.RequirePermission(func(p roles.Permissions) bool { return p.CanViewAllTransactions }),
		transactionHandler.GetTransaction)
	transactions.GET("/code/:code",
		middleware.RequirePermission(func(p roles.Permissions) bool { return p.CanViewAllTransactions }),
		transactionHandler.GetTransactionByCode)
	transactions.PUT("/:id",
		middleware.RequirePermission(func(p roles.Permissions) bool { return p.CanEditTransactions }),
		transactionHandler.UpdateTransaction)
	transactions.POST("/:id/validate",
		middleware.RequirePermission(func(p roles.Permissions) bool { return p.CanValidateTransactions }),
		transactionHandler.ValidateTransaction)
	transactions.POST("/:id/complete",
		middleware.RequirePermission(func(p roles.Permissions) bool { return p.CanCompleteTransactions }),
		transactionHandler.CompleteTransaction)
	transactions.POST("/:id/cancel",
		middleware.RequirePermission(func(p roles.Permissions) bool { return p.CanCancelTransactions }),
		transactionHandler.CancelTransaction)
	transactions.DELETE("/:id",
		middleware.RequirePermission(func(p roles.Permissions) bool { return p.CanDeleteTransactions }),
		transactionHandler.DeleteTransaction)
	transactions.GET("/:id/receipt",
		middleware.RequirePermission(func(p roles.Permissions) bool { return p.CanViewAllTransactions }),
		transactionHandler.GetReceipt)
	transactions.GET("/:id/receipt.pdf",
		middleware.RequirePermission(func(p roles.Permissions) bool { return p.CanViewAllTransactions }),
		transactionHandler.GetReceiptPDF)

	// Report routes
	reports := protected.Group("/reports")
	reports.Use(middleware.RequirePermission(func(p roles.Permissions) bool { return p.CanViewReports }))
	reports.GET("", reportHandler.GetReport)
	reports.GET("/export.csv", reportHandler.ExportReportCSV)
	reports.GET("/export.pdf", reportHandler.ExportReportPDF)

	// Mobile-money network routes
	networks := protected.Group("/networks")
	networks.GET("", networkHandler.GetNetworks)
	networks.POST("",
		middleware.RequirePermission(func(p roles.Permissions) bool { return p.CanManageUsers }),
		networkHandler.CreateNetwork)
	networks.PUT("/:id/active",
		middleware.RequirePermission(func(p roles.Permissions) bool { return p.CanManageUsers }),
		networkHandler.SetNetworkActive)

	// Client routes
	clients := protected.Group("/clients")
	clients.Use(middleware.RequirePermission(func(p roles.Permissions) bool { return p.CanManageClients }))
	clients.POST("", clientHandler.CreateClient)
	clients.GET("", clientHandler.GetClients)
	clients.GET("/:id", clientHandler.GetClient)
	clients.PUT("/:id", clientHandler.UpdateClient)
	clients.DELETE("/:id", clientHandler.DeleteClient)

	// Merchandise routes
	merchandise := protected.Group("/merchandise")
	merchandise.Use(middleware.RequirePermission(func(p roles.Permissions) bool { return p.CanManageMerchandise }))
	merchandise.POST("", merchandiseHandler.CreateMerchandise)
	merchandise.GET("", merchandiseHandler.GetMerchandise)
	merchandise.GET("/:id", merchandiseHandler.GetMerchandiseItem)
	merchandise.PUT("/:id", merchandiseHandler.UpdateMerchandise)
	merchandise.DELETE("/:id", merchandiseHandler.DeleteMerchandise)

	// Parcel routes
	parcels := protected.Group("/parcels")
	parcels.Use(middleware.RequirePermission(func(p roles.Permissions) bool { return p.CanManageParcels }))
	parcels.POST("", parcelHandler.CreateParcel)
	parcels.GET("", parcelHandler.GetParcels)
	parcels.GET("/:id", parcelHandler.GetParcel)
	parcels.PUT("/:id", parcelHandler.UpdateParcel)
	parcels.PUT("/:id/status", parcelHandler.UpdateParcelStatus)
	parcels.DELETE("/:id", parcelHandler.DeleteParcel)

	// User administration routes
	users := protected.Group("/users")
	users.Use(middleware.RequirePermission(func(p roles.Permissions) bool { return p.CanManageUsers }))
	users.POST("", userHandler.CreateUser)
	users.GET("", userHandler.GetUsers)
	users.PUT("/:id/active", userHandler.SetUserActive)
	users.PUT("/:id/password", userHandler.ResetUserPassword)

	// Audit log
	protected.GET("/audit-logs",
		middleware.RequirePermission(func(p roles.Permissions) bool { return p.CanViewAuditLog }),
		userHandler.GetAuditLogs)

	// Backup routes
	backups := protected.Group("/backups")
	backups.Use(middleware.RequirePermission(func(p roles.Permissions) bool { return p.CanManageBackups }))
	backups.GET("/export", backupHandler.ExportBackup)
	backups.POST("/restore", backupHandler.RestoreBackup)

	log.Infof("Starting Tramex backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
