package handlers

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "tramex/internal/errors"
	"tramex/internal/models"
	"tramex/internal/notify"
	"tramex/internal/pagination"
	"tramex/internal/services"
)

// --- mock transaction service ---

type mockTransactionService struct {
	createFn           func(input services.CreateTransactionInput) (*models.Transaction, error)
	updateFn           func(id uint, input services.UpdateTransactionInput) (*models.Transaction, error)
	listFn             func(page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	fetchAllFn         func() ([]models.Transaction, bool)
	getByIDFn          func(id uint) (*models.Transaction, error)
	getByCodeFn        func(code string) (*models.Transaction, error)
	transitionStatusFn func(id uint, newStatus models.TransferStatus, actingUser uint) (*models.Transaction, error)
	deleteFn           func(id uint) error
	getDashboardFn     func() services.Dashboard
}

func (m *mockTransactionService) Create(input services.CreateTransactionInput) (*models.Transaction, error) {
	if m.createFn != nil {
		return m.createFn(input)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) Update(id uint, input services.UpdateTransactionInput) (*models.Transaction, error) {
	if m.updateFn != nil {
		return m.updateFn(id, input)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) List(page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	if m.listFn != nil {
		return m.listFn(page, filter)
	}
	resp := pagination.NewPageResponse([]models.Transaction{}, 1, 25, 0)
	return &resp, nil
}

func (m *mockTransactionService) FetchAll() ([]models.Transaction, bool) {
	if m.fetchAllFn != nil {
		return m.fetchAllFn()
	}
	return []models.Transaction{}, true
}

func (m *mockTransactionService) GetByID(id uint) (*models.Transaction, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(id)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) GetByCode(code string) (*models.Transaction, error) {
	if m.getByCodeFn != nil {
		return m.getByCodeFn(code)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) TransitionStatus(id uint, newStatus models.TransferStatus, actingUser uint) (*models.Transaction, error) {
	if m.transitionStatusFn != nil {
		return m.transitionStatusFn(id, newStatus, actingUser)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) Delete(id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(id)
	}
	return nil
}

func (m *mockTransactionService) GetDashboard() services.Dashboard {
	if m.getDashboardFn != nil {
		return m.getDashboardFn()
	}
	return services.Dashboard{Recent: []models.Transaction{}}
}

func (m *mockTransactionService) Subscribe(_ notify.Callback) int { return 0 }

func (m *mockTransactionService) Unsubscribe(_ int) {}

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	r := gin.New()
	auth := injectAuth(1, models.RoleOperator)
	r.POST("/transactions", auth, handler.CreateTransaction)
	r.GET("/transactions", auth, handler.GetTransactions)
	r.GET("/transactions/:id", auth, handler.GetTransaction)
	r.GET("/transactions/code/:code", auth, handler.GetTransactionByCode)
	r.PUT("/transactions/:id", auth, handler.UpdateTransaction)
	r.POST("/transactions/:id/validate", auth, handler.ValidateTransaction)
	r.POST("/transactions/:id/complete", auth, handler.CompleteTransaction)
	r.POST("/transactions/:id/cancel", auth, handler.CancelTransaction)
	r.GET("/transactions/:id/receipt", auth, handler.GetReceipt)
	r.GET("/transactions/:id/receipt.pdf", auth, handler.GetReceiptPDF)
	r.GET("/dashboard", auth, handler.GetDashboard)
	return r
}

func sampleTransaction() *models.Transaction {
	return &models.Transaction{
		Base:                 models.Base{ID: 1, CreatedAt: time.Now()},
		TxnID:                "TXN-20250103-0001",
		Direction:            models.DirectionKinshasaToDubai,
		Amount:               decimal.NewFromInt(1000),
		Currency:             "USD",
		CommissionPercentage: decimal.NewFromFloat(3.5),
		CommissionAmount:     decimal.NewFromInt(35),
		ReceivingAmount:      decimal.NewFromInt(965),
		PaymentMethod:        models.PaymentAgency,
		Status:               models.StatusPending,
		Sender:               models.Sender{Name: "Jean Mukendi"},
		Recipient:            models.Recipient{Name: "Ali Hassan"},
		CreatedBy:            1,
	}
}

// --- tests ---

func TestTransactionHandler_Create(t *testing.T) {
	validBody := `{
		"direction": "kinshasa_to_dubai",
		"amount": "1000",
		"currency": "USD",
		"payment_method": "agency",
		"sender": {"name": "Jean Mukendi", "phone": "+243811111111"},
		"recipient": {"name": "Ali Hassan", "phone": "+971501111111"}
	}`

	t.Run("creates a transfer", func(t *testing.T) {
		var captured services.CreateTransactionInput
		txSvc := &mockTransactionService{
			createFn: func(input services.CreateTransactionInput) (*models.Transaction, error) {
				captured = input
				return sampleTransaction(), nil
			},
		}
		audit := &mockAuditService{}
		handler := NewTransactionHandler(txSvc, audit)
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/transactions", validBody)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if captured.CreatedBy != 1 {
			t.Errorf("expected CreatedBy from auth context, got %d", captured.CreatedBy)
		}
		if captured.Sender.Name != "Jean Mukendi" {
			t.Errorf("expected sender name to pass through, got %q", captured.Sender.Name)
		}
		if len(audit.logged) != 1 || audit.logged[0] != "CREATE_TRANSACTION" {
			t.Errorf("expected CREATE_TRANSACTION audit entry, got %v", audit.logged)
		}
	})

	t.Run("defaults commission percentage by direction", func(t *testing.T) {
		var captured services.CreateTransactionInput
		txSvc := &mockTransactionService{
			createFn: func(input services.CreateTransactionInput) (*models.Transaction, error) {
				captured = input
				return sampleTransaction(), nil
			},
		}
		handler := NewTransactionHandler(txSvc, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/transactions", validBody)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
		if !captured.CommissionPercentage.Equal(decimal.NewFromFloat(3.5)) {
			t.Errorf("expected default commission 3.5, got %s", captured.CommissionPercentage)
		}
	})

	t.Run("rejects unknown direction", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{}, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/transactions", `{
			"direction": "paris_to_dubai",
			"amount": "1000",
			"currency": "USD",
			"payment_method": "agency",
			"sender": {"name": "Jean"},
			"recipient": {"name": "Ali"}
		}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("surfaces service validation errors", func(t *testing.T) {
		txSvc := &mockTransactionService{
			createFn: func(_ services.CreateTransactionInput) (*models.Transaction, error) {
				return nil, apperrors.ErrUnsupportedCurrency
			},
		}
		handler := NewTransactionHandler(txSvc, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/transactions", validBody)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "UNSUPPORTED_CURRENCY")
	})
}

func TestTransactionHandler_List(t *testing.T) {
	t.Run("passes status filter through", func(t *testing.T) {
		var captured services.TransactionFilter
		txSvc := &mockTransactionService{
			listFn: func(_ pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
				captured = filter
				resp := pagination.NewPageResponse([]models.Transaction{*sampleTransaction()}, 1, 25, 1)
				return &resp, nil
			},
		}
		handler := NewTransactionHandler(txSvc, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "GET", "/transactions?status=pending", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if captured.Status == nil || *captured.Status != models.StatusPending {
			t.Errorf("expected status filter pending, got %v", captured.Status)
		}
	})

	t.Run("rejects invalid status filter", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{}, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "GET", "/transactions?status=shipped", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_Transitions(t *testing.T) {
	t.Run("validate passes acting user and target status", func(t *testing.T) {
		var gotStatus models.TransferStatus
		var gotActor uint
		txSvc := &mockTransactionService{
			transitionStatusFn: func(_ uint, newStatus models.TransferStatus, actingUser uint) (*models.Transaction, error) {
				gotStatus = newStatus
				gotActor = actingUser
				tx := sampleTransaction()
				tx.Status = newStatus
				return tx, nil
			},
		}
		audit := &mockAuditService{}
		handler := NewTransactionHandler(txSvc, audit)
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/transactions/1/validate", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotStatus != models.StatusValidated {
			t.Errorf("expected transition to validated, got %s", gotStatus)
		}
		if gotActor != 1 {
			t.Errorf("expected acting user 1, got %d", gotActor)
		}
		if len(audit.logged) != 1 || audit.logged[0] != "VALIDATE_TRANSACTION" {
			t.Errorf("expected VALIDATE_TRANSACTION audit entry, got %v", audit.logged)
		}
	})

	t.Run("invalid transition maps to 409", func(t *testing.T) {
		txSvc := &mockTransactionService{
			transitionStatusFn: func(_ uint, _ models.TransferStatus, _ uint) (*models.Transaction, error) {
				return nil, apperrors.ErrInvalidTransition
			},
		}
		handler := NewTransactionHandler(txSvc, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/transactions/1/cancel", "")
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_TRANSITION")
	})

	t.Run("complete on missing transaction maps to 404", func(t *testing.T) {
		txSvc := &mockTransactionService{
			transitionStatusFn: func(_ uint, _ models.TransferStatus, _ uint) (*models.Transaction, error) {
				return nil, apperrors.ErrTransactionNotFound
			},
		}
		handler := NewTransactionHandler(txSvc, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/transactions/99/complete", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_GetByCode(t *testing.T) {
	txSvc := &mockTransactionService{
		getByCodeFn: func(code string) (*models.Transaction, error) {
			if code != "TXN-20250103-0001" {
				return nil, apperrors.ErrTransactionNotFound
			}
			return sampleTransaction(), nil
		},
	}
	handler := NewTransactionHandler(txSvc, &mockAuditService{})
	r := setupTransactionRouter(handler)

	rec := doRequest(r, "GET", "/transactions/code/TXN-20250103-0001", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = doRequest(r, "GET", "/transactions/code/TXN-XXXX", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown code, got %d", rec.Code)
	}
}

func TestTransactionHandler_Receipt(t *testing.T) {
	t.Run("text receipt carries transaction code", func(t *testing.T) {
		txSvc := &mockTransactionService{
			getByIDFn: func(_ uint) (*models.Transaction, error) {
				return sampleTransaction(), nil
			},
		}
		handler := NewTransactionHandler(txSvc, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "GET", "/transactions/1/receipt", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		body := rec.Body.String()
		if !strings.Contains(body, "TXN-20250103-0001") {
			t.Errorf("expected receipt to contain transaction code, got:\n%s", body)
		}
	})

	t.Run("pdf receipt sets download headers", func(t *testing.T) {
		txSvc := &mockTransactionService{
			getByIDFn: func(_ uint) (*models.Transaction, error) {
				return sampleTransaction(), nil
			},
		}
		handler := NewTransactionHandler(txSvc, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "GET", "/transactions/1/receipt.pdf", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
			t.Errorf("expected application/pdf, got %q", ct)
		}
		if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "TXN-20250103-0001") {
			t.Errorf("expected filename with transaction code, got %q", cd)
		}
		if !strings.HasPrefix(rec.Body.String(), "%PDF") {
			t.Error("expected PDF magic bytes in body")
		}
	})
}

func TestTransactionHandler_Dashboard(t *testing.T) {
	txSvc := &mockTransactionService{
		getDashboardFn: func() services.Dashboard {
			return services.Dashboard{
				Recent:   []models.Transaction{*sampleTransaction()},
				Degraded: true,
			}
		},
	}
	handler := NewTransactionHandler(txSvc, &mockAuditService{})
	r := setupTransactionRouter(handler)

	rec := doRequest(r, "GET", "/dashboard", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	if result["degraded"] != true {
		t.Errorf("expected degraded flag surfaced, got %v", result["degraded"])
	}
}
