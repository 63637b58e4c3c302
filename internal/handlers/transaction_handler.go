package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"tramex/internal/config"
	apperrors "tramex/internal/errors"
	"tramex/internal/models"
	"tramex/internal/money"
	"tramex/internal/pagination"
	"tramex/internal/receipt"
	"tramex/internal/services"
)

// TransactionHandler handles money-transfer requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, auditService: auditService}
}

// PartyRequest carries sender or recipient details.
type PartyRequest struct {
	Name     string `json:"name" binding:"required,max=200"`
	Phone    string `json:"phone" binding:"max=30"`
	IDNumber string `json:"id_number" binding:"max=100"`
	IDType   string `json:"id_type" binding:"max=50"`
}

// CreateTransactionRequest represents the request payload for creating a transfer
type CreateTransactionRequest struct {
	Direction            models.Direction     `json:"direction" binding:"required,direction"`
	Amount               decimal.Decimal      `json:"amount" binding:"required"`
	Currency             string               `json:"currency" binding:"required,transfer_currency"`
	CommissionPercentage *decimal.Decimal     `json:"commission_percentage"`
	ReceivingAmount      decimal.Decimal      `json:"receiving_amount"`
	PaymentMethod        models.PaymentMethod `json:"payment_method" binding:"required,payment_method"`
	MobileMoneyNetwork   string               `json:"mobile_money_network" binding:"max=50"`
	Notes                string               `json:"notes" binding:"max=1000"`
	Sender               PartyRequest         `json:"sender" binding:"required"`
	Recipient            PartyRequest         `json:"recipient" binding:"required"`
}

// UpdateTransactionRequest represents the request payload for editing a transfer.
// Omitted fields are left unchanged; direction is immutable.
type UpdateTransactionRequest struct {
	Amount               *decimal.Decimal      `json:"amount"`
	CommissionPercentage *decimal.Decimal      `json:"commission_percentage"`
	ReceivingAmount      *decimal.Decimal      `json:"receiving_amount"`
	PaymentMethod        *models.PaymentMethod `json:"payment_method" binding:"omitempty,payment_method"`
	MobileMoneyNetwork   *string               `json:"mobile_money_network"`
	Notes                *string               `json:"notes" binding:"omitempty,max=1000"`
}

// CreateTransaction handles the creation of a new transfer
// @Summary     Create a transfer
// @Description Record a new money transfer with commission applied on creation
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transfer details"
// @Success     201 {object} models.Transaction "Transfer created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.CreateTransactionInput{
		Direction:          req.Direction,
		Amount:             req.Amount,
		Currency:           req.Currency,
		ReceivingAmount:    req.ReceivingAmount,
		PaymentMethod:      req.PaymentMethod,
		MobileMoneyNetwork: req.MobileMoneyNetwork,
		Notes:              req.Notes,
		Sender:             services.PartyInput(req.Sender),
		Recipient:          services.PartyInput(req.Recipient),
		CreatedBy:          userID,
	}
	if req.CommissionPercentage != nil {
		input.CommissionPercentage = *req.CommissionPercentage
	} else {
		input.CommissionPercentage = money.DefaultCommissionPercentage(req.Direction)
	}

	transaction, err := h.transactionService.Create(input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_TRANSACTION", "transaction", transaction.ID, c.ClientIP(),
		map[string]interface{}{"txn_id": transaction.TxnID, "amount": req.Amount.String(), "direction": req.Direction})

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// GetTransactions handles the paginated listing of transfers
// @Summary     List transfers
// @Description Get a paginated list of transfers with optional filters, newest first
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 25, max 200)"
// @Param       status    query string false "Filter by status (pending, validated, completed, cancelled)"
// @Param       direction query string false "Filter by direction (kinshasa_to_dubai, dubai_to_kinshasa)"
// @Param       currency  query string false "Filter by currency code"
// @Param       from_date query string false "Filter by start date (RFC3339 or YYYY-MM-DD)"
// @Param       to_date   query string false "Filter by end date (RFC3339 or YYYY-MM-DD)"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transfers"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.List(page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseTransactionFilter(c *gin.Context) (services.TransactionFilter, error) {
	var filter services.TransactionFilter

	if v := c.Query("status"); v != "" {
		status := models.TransferStatus(v)
		switch status {
		case models.StatusPending, models.StatusValidated,
			models.StatusCompleted, models.StatusCancelled:
			filter.Status = &status
		default:
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid status, must be pending, validated, completed, or cancelled")
		}
	}

	if v := c.Query("direction"); v != "" {
		direction := models.Direction(v)
		switch direction {
		case models.DirectionKinshasaToDubai, models.DirectionDubaiToKinshasa:
			filter.Direction = &direction
		default:
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid direction, must be kinshasa_to_dubai or dubai_to_kinshasa")
		}
	}

	if v := c.Query("currency"); v != "" {
		filter.Currency = &v
	}

	if v := c.Query("from_date"); v != "" {
		t, err := parseFlexibleTime(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid from_date format, use RFC3339 or YYYY-MM-DD")
		}
		filter.FromDate = &t
	}

	if v := c.Query("to_date"); v != "" {
		t, err := parseFlexibleTime(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid to_date format, use RFC3339 or YYYY-MM-DD")
		}
		filter.ToDate = &t
	}

	return filter, nil
}

// GetTransaction handles the retrieval of a single transfer by ID
// @Summary     Get transfer
// @Description Get a transfer with sender and recipient details
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     200 {object} models.Transaction "Transfer"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	txID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetByID(txID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// GetTransactionByCode handles the retrieval of a transfer by its reference code
// @Summary     Get transfer by code
// @Description Look up a transfer by its TXN reference code
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       code path string true "Transaction reference code"
// @Success     200 {object} models.Transaction "Transfer"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/code/{code} [get]
func (h *TransactionHandler) GetTransactionByCode(c *gin.Context) {
	code := c.Param("code")

	transaction, err := h.transactionService.GetByCode(code)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// UpdateTransaction handles editing of a non-terminal transfer
// @Summary     Update transfer
// @Description Edit a pending or validated transfer; commission is recomputed when amount or percentage change
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                      true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Fields to update"
// @Success     200 {object} models.Transaction "Updated transfer"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     409 {object} ErrorResponse "Transfer in a terminal status"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	txID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.Update(txID, services.UpdateTransactionInput{
		Amount:               req.Amount,
		CommissionPercentage: req.CommissionPercentage,
		ReceivingAmount:      req.ReceivingAmount,
		PaymentMethod:        req.PaymentMethod,
		MobileMoneyNetwork:   req.MobileMoneyNetwork,
		Notes:                req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_TRANSACTION", "transaction", txID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

func (h *TransactionHandler) transition(c *gin.Context, action string, newStatus models.TransferStatus) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	txID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.TransitionStatus(txID, newStatus, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, action, "transaction", txID, c.ClientIP(),
		map[string]interface{}{"status": newStatus})

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// ValidateTransaction moves a pending transfer to validated
// @Summary     Validate transfer
// @Description Move a pending transfer to validated, stamping the validating user and time
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     200 {object} models.Transaction "Validated transfer"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     409 {object} ErrorResponse "Transition not allowed from current status"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id}/validate [post]
func (h *TransactionHandler) ValidateTransaction(c *gin.Context) {
	h.transition(c, "VALIDATE_TRANSACTION", models.StatusValidated)
}

// CompleteTransaction moves a validated transfer to completed
// @Summary     Complete transfer
// @Description Move a validated transfer to completed
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     200 {object} models.Transaction "Completed transfer"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     409 {object} ErrorResponse "Transition not allowed from current status"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id}/complete [post]
func (h *TransactionHandler) CompleteTransaction(c *gin.Context) {
	h.transition(c, "COMPLETE_TRANSACTION", models.StatusCompleted)
}

// CancelTransaction moves a pending transfer to cancelled
// @Summary     Cancel transfer
// @Description Cancel a pending transfer; validated and terminal transfers cannot be cancelled
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     200 {object} models.Transaction "Cancelled transfer"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     409 {object} ErrorResponse "Transition not allowed from current status"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id}/cancel [post]
func (h *TransactionHandler) CancelTransaction(c *gin.Context) {
	h.transition(c, "CANCEL_TRANSACTION", models.StatusCancelled)
}

// DeleteTransaction handles the deletion of a transfer
// @Summary     Delete transfer
// @Description Soft-delete a transfer by ID
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     200 {object} MessageResponse "Transfer deleted"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	txID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.Delete(txID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_TRANSACTION", "transaction", txID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}

// GetDashboard returns aggregate stats and recent transfers
// @Summary     Get dashboard
// @Description Get transfer volume stats and the most recent transfers; degraded is true when data could not be fetched
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.Dashboard "Dashboard data"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /dashboard [get]
func (h *TransactionHandler) GetDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.transactionService.GetDashboard())
}

// GetReceipt returns the printable text receipt for a transfer
// @Summary     Get receipt text
// @Description Get the fixed-width printable receipt for a transfer
// @Tags        transactions
// @Accept      json
// @Produce     plain
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     200 {string} string "Receipt text"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id}/receipt [get]
func (h *TransactionHandler) GetReceipt(c *gin.Context) {
	txID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetByID(txID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.String(http.StatusOK, receipt.Text(transaction, config.Get().VerificationBaseURL))
}

// GetReceiptPDF returns the PDF receipt for a transfer
// @Summary     Get receipt PDF
// @Description Get the receipt as a PDF document with an embedded verification QR code
// @Tags        transactions
// @Accept      json
// @Produce     application/pdf
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     200 {file} binary "Receipt PDF"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id}/receipt.pdf [get]
func (h *TransactionHandler) GetReceiptPDF(c *gin.Context) {
	txID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetByID(txID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := receipt.WritePDF(&buf, transaction, config.Get().VerificationBaseURL); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="receipt-`+transaction.TxnID+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
