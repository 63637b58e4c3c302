package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tramex/internal/handlers"
	"tramex/internal/logger"
	"tramex/internal/middleware"
	"tramex/internal/models"
	"tramex/internal/roles"
	"tramex/internal/services"
	"tramex/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Sender{},
		&models.Recipient{},
		&models.Transaction{},
		&models.MobileMoneyNetwork{},
		&models.Client{},
		&models.Merchandise{},
		&models.Parcel{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	networkService := services.NewNetworkService(db)
	transactionService := services.NewTransactionService(db, networkService)
	reportService := services.NewReportService(transactionService)
	clientService := services.NewClientService(db)
	parcelService := services.NewParcelService(db)
	backupService := services.NewBackupService(db, transactionService)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	reportHandler := handlers.NewReportHandler(reportService, auditService)
	networkHandler := handlers.NewNetworkHandler(networkService, auditService)
	clientHandler := handlers.NewClientHandler(clientService, auditService)
	parcelHandler := handlers.NewParcelHandler(parcelService, auditService)
	userHandler := handlers.NewUserHandler(userService, auditService)
	backupHandler := handlers.NewBackupHandler(backupService, auditService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	v1.GET("/track/:tracking_number", parcelHandler.TrackParcel)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)
	protected.GET("/dashboard",
		middleware.RequirePermission(func(p roles.Permissions) bool { return p.CanViewAllTransactions }),
		transactionHandler.GetDashboard)

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
	transactions.GET("/:id/receipt",
		middleware.RequirePermission(func(p roles.Permissions) bool { return p.CanViewAllTransactions }),
		transactionHandler.GetReceipt)
	transactions.GET("/:id/receipt.pdf",
		middleware.RequirePermission(func(p roles.Permissions) bool { return p.CanViewAllTransactions }),
		transactionHandler.GetReceiptPDF)

	reports := protected.Group("/reports")
	reports.Use(middleware.RequirePermission(func(p roles.Permissions) bool { return p.CanViewReports }))
	reports.GET("", reportHandler.GetReport)
	reports.GET("/export.csv", reportHandler.ExportReportCSV)

	networks := protected.Group("/networks")
	networks.GET("", networkHandler.GetNetworks)
	networks.POST("",
		middleware.RequirePermission(func(p roles.Permissions) bool { return p.CanManageUsers }),
		networkHandler.CreateNetwork)

	clients := protected.Group("/clients")
	clients.Use(middleware.RequirePermission(func(p roles.Permissions) bool { return p.CanManageClients }))
	clients.POST("", clientHandler.CreateClient)
	clients.GET("", clientHandler.GetClients)

	parcels := protected.Group("/parcels")
	parcels.Use(middleware.RequirePermission(func(p roles.Permissions) bool { return p.CanManageParcels }))
	parcels.POST("", parcelHandler.CreateParcel)
	parcels.GET("", parcelHandler.GetParcels)
	parcels.PUT("/:id/status", parcelHandler.UpdateParcelStatus)

	users := protected.Group("/users")
	users.Use(middleware.RequirePermission(func(p roles.Permissions) bool { return p.CanManageUsers }))
	users.POST("", userHandler.CreateUser)
	users.GET("", userHandler.GetUsers)

	protected.GET("/audit-logs",
		middleware.RequirePermission(func(p roles.Permissions) bool { return p.CanViewAuditLog }),
		userHandler.GetAuditLogs)

	backups := protected.Group("/backups")
	backups.Use(middleware.RequirePermission(func(p roles.Permissions) bool { return p.CanManageBackups }))
	backups.GET("/export", backupHandler.ExportBackup)
	backups.POST("/restore", backupHandler.RestoreBackup)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// seedStaff creates a staff account directly in the database.
func (app *testApp) seedStaff(t *testing.T, email string, role models.Role) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		Email:     email,
		Password:  string(hash),
		FirstName: "Test",
		LastName:  "Staff",
		Role:      role,
		IsActive:  true,
	}
	if err := app.DB.Create(user).Error; err != nil {
		t.Fatalf("failed to seed staff account: %v", err)
	}
	return user
}

// seedNetwork creates a mobile-money network directly in the database.
func (app *testApp) seedNetwork(t *testing.T, name, code, country string) {
	t.Helper()
	network := &models.MobileMoneyNetwork{Name: name, Code: code, Country: country, IsActive: true}
	if err := app.DB.Create(network).Error; err != nil {
		t.Fatalf("failed to seed network: %v", err)
	}
}

// loginStaff seeds a staff account with the given role and logs it in.
func (app *testApp) loginStaff(t *testing.T, email string, role models.Role) string {
	t.Helper()
	app.seedStaff(t, email, role)
	return app.loginUser(t, email, "password123")
}

// loginUser logs in and returns the access token.
func (app *testApp) loginUser(t *testing.T, email, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["access_token"].(string)
}
