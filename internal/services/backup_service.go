package services

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "tramex/internal/errors"
	"tramex/internal/mapper"
	"tramex/internal/models"
	"tramex/internal/notify"
	"tramex/internal/refgen"
)

// backupService exports transactions as raw rows and restores them through
// the lenient mapper, so old exports with legacy columns load cleanly.
type backupService struct {
	db                 *gorm.DB
	transactionService TransactionServicer
}

// NewBackupService creates a new BackupServicer.
func NewBackupService(db *gorm.DB, transactionService TransactionServicer) BackupServicer {
	return &backupService{db: db, transactionService: transactionService}
}

// Export returns every transaction as a raw row in the backup format.
func (s *backupService) Export() ([]mapper.RawTransaction, error) {
	var txs []models.Transaction
	if err := s.db.Preload("Sender").Preload("Recipient").
		Order("created_at").
		Find(&txs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	rows := make([]mapper.RawTransaction, 0, len(txs))
	for i := range txs {
		rows = append(rows, rawFromTransaction(&txs[i]))
	}
	return rows, nil
}

// Restore decodes each row leniently and inserts it with its parties. Rows
// never fail to decode; the result reports how many needed defaulting.
func (s *backupService) Restore(rows []mapper.RawTransaction) (*RestoreResult, error) {
	result := &RestoreResult{}

	err := s.db.Transaction(func(dtx *gorm.DB) error {
		for _, row := range rows {
			decoded := mapper.Decode(row)
			if !decoded.FullyPopulated() {
				result.DefaultedRows++
			}

			tx := decoded.Transaction
			if tx.TxnID == "" {
				tx.TxnID = refgen.TransactionCode(time.Now())
			}
			sender := tx.Sender
			recipient := tx.Recipient

			if err := dtx.Create(&sender).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			if err := dtx.Create(&recipient).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}

			tx.SenderID = sender.ID
			tx.RecipientID = recipient.ID
			tx.Sender = models.Sender{}
			tx.Recipient = models.Recipient{}
			if err := dtx.Omit(clause.Associations).Create(&tx).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			result.Imported++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// One advisory event for the whole batch; subscribers re-fetch anyway.
	if svc, ok := s.transactionService.(*transactionService); ok {
		svc.registry.Notify(notify.Event{Kind: "insert"})
	}
	return result, nil
}

func rawFromTransaction(tx *models.Transaction) mapper.RawTransaction {
	strp := func(s string) *string { return &s }
	createdAt := tx.CreatedAt
	createdBy := tx.CreatedBy

	raw := mapper.RawTransaction{
		TxnID:                strp(tx.TxnID),
		Direction:            strp(string(tx.Direction)),
		Amount:               strp(tx.Amount.String()),
		Currency:             strp(tx.Currency),
		CommissionPercentage: strp(tx.CommissionPercentage.String()),
		CommissionAmount:     strp(tx.CommissionAmount.String()),
		ReceivingAmount:      strp(tx.ReceivingAmount.String()),
		PaymentMethod:        strp(string(tx.PaymentMethod)),
		Status:               strp(string(tx.Status)),
		CreatedBy:            &createdBy,
		CreatedAt:            &createdAt,
		Sender: &mapper.RawParty{
			Name:     strp(tx.Sender.Name),
			Phone:    strp(tx.Sender.Phone),
			IDNumber: strp(tx.Sender.IDNumber),
			IDType:   strp(tx.Sender.IDType),
		},
		Recipient: &mapper.RawParty{
			Name:  strp(tx.Recipient.Name),
			Phone: strp(tx.Recipient.Phone),
		},
	}
	if tx.MobileMoneyNetwork != "" {
		raw.MobileMoneyNetwork = strp(tx.MobileMoneyNetwork)
	}
	if tx.Notes != "" {
		raw.Notes = strp(tx.Notes)
	}
	return raw
}
