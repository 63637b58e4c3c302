package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "tramex/internal/errors"
	"tramex/internal/models"
)

// networkService handles mobile-money network management.
type networkService struct {
	db *gorm.DB
}

// NewNetworkService creates a new NetworkServicer.
func NewNetworkService(db *gorm.DB) NetworkServicer {
	return &networkService{db: db}
}

// List returns networks, optionally restricted to a country and to active
// ones.
func (s *networkService) List(country *string, activeOnly bool) ([]models.MobileMoneyNetwork, error) {
	q := s.db.Model(&models.MobileMoneyNetwork{})
	if country != nil {
		q = q.Where("country = ?", strings.ToUpper(*country))
	}
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var networks []models.MobileMoneyNetwork
	if err := q.Order("country, name").Find(&networks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return networks, nil
}

// Create registers a new network for a corridor country.
func (s *networkService) Create(name, code, country string) (*models.MobileMoneyNetwork, error) {
	country = strings.ToUpper(country)
	if country != "CD" && country != "AE" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "country must be CD or AE")
	}
	if name == "" || code == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name and code are required")
	}

	network := &models.MobileMoneyNetwork{
		Name:     name,
		Code:     strings.ToUpper(code),
		Country:  country,
		IsActive: true,
	}
	if err := s.db.Create(network).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return network, nil
}

// SetActive toggles a network's availability.
func (s *networkService) SetActive(id uint, active bool) (*models.MobileMoneyNetwork, error) {
	var network models.MobileMoneyNetwork
	if err := s.db.First(&network, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNetworkNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	network.IsActive = active
	if err := s.db.Save(&network).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &network, nil
}

// ValidateForDirection checks that the network exists, is active, and serves
// the country implied by the transfer direction.
func (s *networkService) ValidateForDirection(code string, direction models.Direction) error {
	var network models.MobileMoneyNetwork
	if err := s.db.Where("code = ?", strings.ToUpper(code)).First(&network).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNetworkNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !network.IsActive {
		return apperrors.ErrNetworkInactive
	}
	if network.Country != direction.CorridorCountry() {
		return apperrors.ErrNetworkCountry
	}
	return nil
}
