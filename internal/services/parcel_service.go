package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "tramex/internal/errors"
	"tramex/internal/models"
	"tramex/internal/pagination"
	"tramex/internal/refgen"
)

// parcelService handles parcel management and public tracking lookups.
type parcelService struct {
	db *gorm.DB
}

// NewParcelService creates a new ParcelServicer.
func NewParcelService(db *gorm.DB) ParcelServicer {
	return &parcelService{db: db}
}

// Create persists a new parcel with a generated tracking number. New parcels
// start received with standard priority unless stated otherwise.
func (s *parcelService) Create(parcel *models.Parcel) (*models.Parcel, error) {
	if parcel.SenderName == "" || parcel.RecipientName == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "sender and recipient names are required")
	}
	if parcel.WeightKg.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "weight cannot be negative")
	}

	parcel.TrackingNumber = refgen.TrackingNumber(time.Now())
	if parcel.Status == "" {
		parcel.Status = models.ParcelReceived
	}
	if parcel.Priority == "" {
		parcel.Priority = models.PriorityStandard
	}
	if parcel.Currency == "" {
		parcel.Currency = "USD"
	}

	if err := s.db.Create(parcel).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return parcel, nil
}

// List returns a paginated parcel page, newest first.
func (s *parcelService) List(page pagination.PageRequest, filter ParcelFilter) (*pagination.PageResponse[models.Parcel], error) {
	page.Defaults()

	base := s.db.Model(&models.Parcel{})
	if filter.Status != nil {
		base = base.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		base = base.Where("priority = ?", *filter.Priority)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var parcels []models.Parcel
	if err := base.Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&parcels).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(parcels, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetByID retrieves a parcel.
func (s *parcelService) GetByID(id uint) (*models.Parcel, error) {
	var parcel models.Parcel
	if err := s.db.First(&parcel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrParcelNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &parcel, nil
}

// Track retrieves a parcel by its public tracking number.
func (s *parcelService) Track(trackingNumber string) (*models.Parcel, error) {
	var parcel models.Parcel
	if err := s.db.Where("tracking_number = ?", trackingNumber).First(&parcel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrParcelNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &parcel, nil
}

// Update replaces a parcel's editable fields. The tracking number never
// changes.
func (s *parcelService) Update(id uint, update *models.Parcel) (*models.Parcel, error) {
	parcel, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if update.SenderName == "" || update.RecipientName == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "sender and recipient names are required")
	}

	parcel.SenderName = update.SenderName
	parcel.SenderPhone = update.SenderPhone
	parcel.SenderAddress = update.SenderAddress
	parcel.RecipientName = update.RecipientName
	parcel.RecipientPhone = update.RecipientPhone
	parcel.RecipientAddress = update.RecipientAddress
	parcel.WeightKg = update.WeightKg
	parcel.Dimensions = update.Dimensions
	parcel.Contents = update.Contents
	parcel.Priority = update.Priority
	parcel.ShippingCost = update.ShippingCost
	parcel.Currency = update.Currency

	if err := s.db.Save(parcel).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return parcel, nil
}

// UpdateStatus moves a parcel to any of its states. Parcels have no
// one-directional lifecycle; a delayed parcel can return to transit.
func (s *parcelService) UpdateStatus(id uint, status models.ParcelStatus) (*models.Parcel, error) {
	parcel, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	parcel.Status = status
	if err := s.db.Save(parcel).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return parcel, nil
}

// Delete soft-deletes a parcel.
func (s *parcelService) Delete(id uint) error {
	parcel, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(parcel).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
