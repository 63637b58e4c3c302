package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "tramex/internal/errors"
	"tramex/internal/models"
	"tramex/internal/money"
	"tramex/internal/pagination"
)

// merchandiseService handles catalog management.
type merchandiseService struct {
	db *gorm.DB
}

// NewMerchandiseService creates a new MerchandiseServicer.
func NewMerchandiseService(db *gorm.DB) MerchandiseServicer {
	return &merchandiseService{db: db}
}

// Create persists a new catalog entry.
func (s *merchandiseService) Create(item *models.Merchandise) (*models.Merchandise, error) {
	if item.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "merchandise name is required")
	}
	if item.UnitPrice.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unit price cannot be negative")
	}
	if !money.Supported(item.Currency) {
		return nil, apperrors.ErrUnsupportedCurrency
	}
	item.IsActive = true

	if err := s.db.Create(item).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return item, nil
}

// List returns a paginated catalog page.
func (s *merchandiseService) List(page pagination.PageRequest, activeOnly bool) (*pagination.PageResponse[models.Merchandise], error) {
	page.Defaults()

	base := s.db.Model(&models.Merchandise{})
	if activeOnly {
		base = base.Where("is_active = ?", true)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var items []models.Merchandise
	if err := base.Scopes(pagination.Paginate(page)).
		Order("name").
		Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(items, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetByID retrieves a catalog entry.
func (s *merchandiseService) GetByID(id uint) (*models.Merchandise, error) {
	var item models.Merchandise
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMerchandiseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &item, nil
}

// Update replaces a catalog entry's editable fields.
func (s *merchandiseService) Update(id uint, update *models.Merchandise) (*models.Merchandise, error) {
	item, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if update.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "merchandise name is required")
	}
	if update.UnitPrice.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unit price cannot be negative")
	}
	if !money.Supported(update.Currency) {
		return nil, apperrors.ErrUnsupportedCurrency
	}

	item.Name = update.Name
	item.Category = update.Category
	item.Description = update.Description
	item.UnitPrice = update.UnitPrice
	item.Currency = update.Currency
	item.StockQuantity = update.StockQuantity
	item.IsActive = update.IsActive

	if err := s.db.Save(item).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return item, nil
}

// Delete soft-deletes a catalog entry.
func (s *merchandiseService) Delete(id uint) error {
	item, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(item).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
