package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "tramex/internal/errors"
	"tramex/internal/logger"
	"tramex/internal/models"
	"tramex/internal/money"
	"tramex/internal/notify"
	"tramex/internal/pagination"
	"tramex/internal/refgen"
	"tramex/internal/transfer"
)

// recentCount is the number of transactions shown on the dashboard.
const recentCount = 3

// transactionService handles transfer business logic.
type transactionService struct {
	db             *gorm.DB
	networkService NetworkServicer
	registry       notify.Registry
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, networkService NetworkServicer) TransactionServicer {
	return &transactionService{
		db:             db,
		networkService: networkService,
	}
}

// Create validates the input, recomputes the commission from the amount and
// percentage, and persists the transfer with its sender and recipient in one
// database transaction. The new record starts pending.
func (s *transactionService) Create(input CreateTransactionInput) (*models.Transaction, error) {
	if !input.Amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if input.CommissionPercentage.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "commission percentage cannot be negative")
	}
	if input.ReceivingAmount.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "receiving amount cannot be negative")
	}
	if !money.Supported(input.Currency) {
		return nil, apperrors.ErrUnsupportedCurrency
	}
	if input.Sender.Name == "" || input.Recipient.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "sender and recipient names are required")
	}

	if input.PaymentMethod == models.PaymentMobileMoney {
		if input.MobileMoneyNetwork == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "mobile money network is required for mobile money payments")
		}
		if err := s.networkService.ValidateForDirection(input.MobileMoneyNetwork, input.Direction); err != nil {
			return nil, err
		}
	} else {
		// Not meaningful outside mobile money.
		input.MobileMoneyNetwork = ""
	}

	tx := &models.Transaction{
		TxnID:                refgen.TransactionCode(time.Now()),
		Direction:            input.Direction,
		Amount:               input.Amount,
		Currency:             input.Currency,
		CommissionPercentage: input.CommissionPercentage,
		CommissionAmount:     money.Commission(input.Amount, input.CommissionPercentage, input.Currency),
		ReceivingAmount:      input.ReceivingAmount,
		PaymentMethod:        input.PaymentMethod,
		MobileMoneyNetwork:   input.MobileMoneyNetwork,
		Status:               models.StatusPending,
		Notes:                input.Notes,
		CreatedBy:            input.CreatedBy,
	}

	err := s.db.Transaction(func(dtx *gorm.DB) error {
		sender := &models.Sender{
			Name:     input.Sender.Name,
			Phone:    input.Sender.Phone,
			IDNumber: input.Sender.IDNumber,
			IDType:   input.Sender.IDType,
		}
		if err := dtx.Create(sender).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		recipient := &models.Recipient{
			Name:  input.Recipient.Name,
			Phone: input.Recipient.Phone,
		}
		if err := dtx.Create(recipient).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		tx.SenderID = sender.ID
		tx.RecipientID = recipient.ID
		if err := dtx.Omit(clause.Associations).Create(tx).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		tx.Sender = *sender
		tx.Recipient = *recipient
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.registry.Notify(notify.Event{Kind: "insert", TransactionID: tx.ID})
	return tx, nil
}

// Update edits a non-terminal transfer. Changing the amount or percentage
// recomputes the commission so the stored value never diverges from the
// formula. Direction cannot change.
func (s *transactionService) Update(id uint, input UpdateTransactionInput) (*models.Transaction, error) {
	tx, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tx.Terminal() {
		return nil, apperrors.ErrTransactionLocked
	}

	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
		}
		tx.Amount = *input.Amount
	}
	if input.CommissionPercentage != nil {
		if input.CommissionPercentage.IsNegative() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "commission percentage cannot be negative")
		}
		tx.CommissionPercentage = *input.CommissionPercentage
	}
	if input.Amount != nil || input.CommissionPercentage != nil {
		tx.CommissionAmount = money.Commission(tx.Amount, tx.CommissionPercentage, tx.Currency)
	}
	if input.ReceivingAmount != nil {
		if input.ReceivingAmount.IsNegative() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "receiving amount cannot be negative")
		}
		tx.ReceivingAmount = *input.ReceivingAmount
	}
	if input.PaymentMethod != nil {
		tx.PaymentMethod = *input.PaymentMethod
	}
	if input.MobileMoneyNetwork != nil {
		tx.MobileMoneyNetwork = *input.MobileMoneyNetwork
	}
	if tx.PaymentMethod == models.PaymentMobileMoney {
		if tx.MobileMoneyNetwork == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "mobile money network is required for mobile money payments")
		}
		if err := s.networkService.ValidateForDirection(tx.MobileMoneyNetwork, tx.Direction); err != nil {
			return nil, err
		}
	} else {
		tx.MobileMoneyNetwork = ""
	}
	if input.Notes != nil {
		tx.Notes = *input.Notes
	}

	if err := s.db.Save(tx).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.registry.Notify(notify.Event{Kind: "update", TransactionID: tx.ID})
	return tx, nil
}

// List returns a paginated, filtered transaction page, newest first.
func (s *transactionService) List(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{})
	base = applyTransactionFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var txs []models.Transaction
	if err := base.Preload("Sender").Preload("Recipient").
		Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&txs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(txs, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.Direction != nil {
		q = q.Where("direction = ?", *f.Direction)
	}
	if f.Currency != nil {
		q = q.Where("currency = ?", *f.Currency)
	}
	if f.FromDate != nil {
		q = q.Where("created_at >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("created_at <= ?", *f.ToDate)
	}
	return q
}

// FetchAll returns every transaction newest first. On a read failure it
// logs a warning and returns an empty slice with ok=false so callers can
// degrade instead of erroring out.
func (s *transactionService) FetchAll() ([]models.Transaction, bool) {
	var txs []models.Transaction
	if err := s.db.Preload("Sender").Preload("Recipient").
		Order("created_at DESC").
		Find(&txs).Error; err != nil {
		logger.Get().Warnw("transaction fetch failed, substituting empty collection", "error", err.Error())
		return []models.Transaction{}, false
	}
	return txs, true
}

// GetByID retrieves a transaction with its parties.
func (s *transactionService) GetByID(id uint) (*models.Transaction, error) {
	var tx models.Transaction
	if err := s.db.Preload("Sender").Preload("Recipient").First(&tx, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &tx, nil
}

// GetByCode retrieves a transaction by its human-facing code.
func (s *transactionService) GetByCode(code string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := s.db.Preload("Sender").Preload("Recipient").
		Where("txn_id = ?", code).First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &tx, nil
}

// TransitionStatus moves a transfer through its lifecycle. Invalid moves
// fail with ErrInvalidTransition and leave the record untouched. Moving to
// validated stamps the acting user and time.
func (s *transactionService) TransitionStatus(id uint, newStatus models.TransferStatus, actingUser uint) (*models.Transaction, error) {
	tx, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := transfer.CheckTransition(tx.Status, newStatus); err != nil {
		return nil, err
	}

	tx.Status = newStatus
	if newStatus == models.StatusValidated {
		now := time.Now()
		tx.ValidatedBy = &actingUser
		tx.ValidatedAt = &now
	}

	if err := s.db.Save(tx).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.registry.Notify(notify.Event{Kind: "update", TransactionID: tx.ID})
	return tx, nil
}

// Delete soft-deletes a transaction. Administrative only; the handler logs
// it to the audit trail.
func (s *transactionService) Delete(id uint) error {
	tx, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(tx).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.registry.Notify(notify.Event{Kind: "delete", TransactionID: id})
	return nil
}

// GetDashboard computes the landing-page aggregates. A failed fetch yields
// zeroed stats and Degraded=true rather than an error.
func (s *transactionService) GetDashboard() Dashboard {
	txs, ok := s.FetchAll()
	return Dashboard{
		Stats:    transfer.ComputeStats(txs),
		Recent:   transfer.Recent(txs, recentCount),
		Degraded: !ok,
	}
}

// Subscribe registers a change callback; delivery is at-least-once with no
// ordering guarantee, subscribers should re-fetch.
func (s *transactionService) Subscribe(cb notify.Callback) int {
	return s.registry.Subscribe(cb)
}

// Unsubscribe removes a previously registered callback.
func (s *transactionService) Unsubscribe(token int) {
	s.registry.Unsubscribe(token)
}
