package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "tramex/internal/errors"
	"tramex/internal/models"
	"tramex/internal/pagination"
)

// clientService handles client record management.
type clientService struct {
	db *gorm.DB
}

// NewClientService creates a new ClientServicer.
func NewClientService(db *gorm.DB) ClientServicer {
	return &clientService{db: db}
}

// Create persists a new client record.
func (s *clientService) Create(client *models.Client) (*models.Client, error) {
	if client.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "client name is required")
	}
	if err := s.db.Create(client).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return client, nil
}

// List returns a paginated client page, optionally matching name or phone.
func (s *clientService) List(page pagination.PageRequest, search string) (*pagination.PageResponse[models.Client], error) {
	page.Defaults()

	base := s.db.Model(&models.Client{})
	if search != "" {
		like := "%" + search + "%"
		base = base.Where("name LIKE ? OR phone LIKE ?", like, like)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var clients []models.Client
	if err := base.Scopes(pagination.Paginate(page)).
		Order("name").
		Find(&clients).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(clients, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetByID retrieves a client.
func (s *clientService) GetByID(id uint) (*models.Client, error) {
	var client models.Client
	if err := s.db.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrClientNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &client, nil
}

// Update replaces a client's editable fields.
func (s *clientService) Update(id uint, update *models.Client) (*models.Client, error) {
	client, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if update.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "client name is required")
	}

	client.Name = update.Name
	client.Phone = update.Phone
	client.Email = update.Email
	client.Address = update.Address
	client.City = update.City
	client.Country = update.Country
	client.Notes = update.Notes

	if err := s.db.Save(client).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return client, nil
}

// Delete soft-deletes a client record.
func (s *clientService) Delete(id uint) error {
	client, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(client).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
