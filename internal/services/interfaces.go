package services

import (
	"time"

	"github.com/shopspring/decimal"

	"tramex/internal/mapper"
	"tramex/internal/models"
	"tramex/internal/notify"
	"tramex/internal/pagination"
	"tramex/internal/transfer"
)

// PartyInput carries sender or recipient details on transaction creation.
type PartyInput struct {
	Name     string
	Phone    string
	IDNumber string
	IDType   string
}

// CreateTransactionInput is the full set of fields for a new transfer.
type CreateTransactionInput struct {
	Direction            models.Direction
	Amount               decimal.Decimal
	Currency             string
	CommissionPercentage decimal.Decimal
	ReceivingAmount      decimal.Decimal
	PaymentMethod        models.PaymentMethod
	MobileMoneyNetwork   string
	Notes                string
	Sender               PartyInput
	Recipient            PartyInput
	CreatedBy            uint
}

// UpdateTransactionInput holds the editable fields of a pending or validated
// transfer. Nil means leave unchanged. Direction is immutable and therefore
// absent.
type UpdateTransactionInput struct {
	Amount               *decimal.Decimal
	CommissionPercentage *decimal.Decimal
	ReceivingAmount      *decimal.Decimal
	PaymentMethod        *models.PaymentMethod
	MobileMoneyNetwork   *string
	Notes                *string
}

// TransactionFilter holds optional filters for listing transactions.
type TransactionFilter struct {
	Status    *models.TransferStatus
	Direction *models.Direction
	Currency  *string
	FromDate  *time.Time
	ToDate    *time.Time
}

// Dashboard is the aggregate view backing the landing page. Degraded is set
// when the underlying fetch failed and empty data was substituted; the
// handler surfaces it as a transient warning.
type Dashboard struct {
	Stats    transfer.Stats       `json:"stats"`
	Recent   []models.Transaction `json:"recent"`
	Degraded bool                 `json:"degraded"`
}

// TransactionServicer is the contract for transfer business logic.
type TransactionServicer interface {
	Create(input CreateTransactionInput) (*models.Transaction, error)
	Update(id uint, input UpdateTransactionInput) (*models.Transaction, error)
	List(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	FetchAll() ([]models.Transaction, bool)
	GetByID(id uint) (*models.Transaction, error)
	GetByCode(code string) (*models.Transaction, error)
	TransitionStatus(id uint, newStatus models.TransferStatus, actingUser uint) (*models.Transaction, error)
	Delete(id uint) error
	GetDashboard() Dashboard
	Subscribe(cb notify.Callback) int
	Unsubscribe(token int)
}

// Report is a filtered transaction list with its summary.
type Report struct {
	Period       transfer.Period      `json:"period"`
	Reference    *time.Time           `json:"reference,omitempty"`
	Transactions []models.Transaction `json:"transactions"`
	Summary      transfer.Summary     `json:"summary"`
	Degraded     bool                 `json:"degraded"`
}

// ReportServicer is the contract for report generation.
type ReportServicer interface {
	Generate(period transfer.Period, ref *time.Time) Report
}

// NetworkServicer is the contract for mobile-money network management.
type NetworkServicer interface {
	List(country *string, activeOnly bool) ([]models.MobileMoneyNetwork, error)
	Create(name, code, country string) (*models.MobileMoneyNetwork, error)
	SetActive(id uint, active bool) (*models.MobileMoneyNetwork, error)
	ValidateForDirection(code string, direction models.Direction) error
}

// ClientServicer is the contract for client record management.
type ClientServicer interface {
	Create(client *models.Client) (*models.Client, error)
	List(page pagination.PageRequest, search string) (*pagination.PageResponse[models.Client], error)
	GetByID(id uint) (*models.Client, error)
	Update(id uint, client *models.Client) (*models.Client, error)
	Delete(id uint) error
}

// MerchandiseServicer is the contract for catalog management.
type MerchandiseServicer interface {
	Create(item *models.Merchandise) (*models.Merchandise, error)
	List(page pagination.PageRequest, activeOnly bool) (*pagination.PageResponse[models.Merchandise], error)
	GetByID(id uint) (*models.Merchandise, error)
	Update(id uint, item *models.Merchandise) (*models.Merchandise, error)
	Delete(id uint) error
}

// ParcelFilter holds optional filters for listing parcels.
type ParcelFilter struct {
	Status   *models.ParcelStatus
	Priority *models.ParcelPriority
}

// ParcelServicer is the contract for parcel management and public tracking.
type ParcelServicer interface {
	Create(parcel *models.Parcel) (*models.Parcel, error)
	List(page pagination.PageRequest, filter ParcelFilter) (*pagination.PageResponse[models.Parcel], error)
	GetByID(id uint) (*models.Parcel, error)
	Track(trackingNumber string) (*models.Parcel, error)
	Update(id uint, parcel *models.Parcel) (*models.Parcel, error)
	UpdateStatus(id uint, status models.ParcelStatus) (*models.Parcel, error)
	Delete(id uint) error
}

// UserServicer is the contract for staff account management.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string, role models.Role) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
	List(page pagination.PageRequest) (*pagination.PageResponse[models.User], error)
	SetActive(id uint, active bool) (*models.User, error)
	ResetPassword(id uint, newPassword string) error
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
}

// AuditServicer is the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
	List(page pagination.PageRequest) (*pagination.PageResponse[models.AuditLog], error)
}

// RestoreResult summarizes a backup restore run.
type RestoreResult struct {
	Imported      int `json:"imported"`
	DefaultedRows int `json:"defaulted_rows"`
}

// BackupServicer is the contract for transaction export and restore.
type BackupServicer interface {
	Export() ([]mapper.RawTransaction, error)
	Restore(rows []mapper.RawTransaction) (*RestoreResult, error)
}
