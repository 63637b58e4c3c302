package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "tramex/internal/errors"
	"tramex/internal/services"
)

// NetworkHandler handles mobile-money network management requests.
type NetworkHandler struct {
	networkService services.NetworkServicer
	auditService   services.AuditServicer
}

// NewNetworkHandler creates a new NetworkHandler.
func NewNetworkHandler(networkService services.NetworkServicer, auditService services.AuditServicer) *NetworkHandler {
	return &NetworkHandler{networkService: networkService, auditService: auditService}
}

// CreateNetworkRequest represents the request payload for adding a network
type CreateNetworkRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Code    string `json:"code" binding:"required,max=20"`
	Country string `json:"country" binding:"required,len=2"`
}

// SetNetworkActiveRequest toggles a network's availability
type SetNetworkActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// GetNetworks lists mobile-money networks
// @Summary     List networks
// @Description List mobile-money networks, optionally filtered by country or activity
// @Tags        networks
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       country query string false "Filter by ISO country code (CD, AE)"
// @Param       active  query bool   false "Only active networks"
// @Success     200 {array} models.MobileMoneyNetwork "Networks"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /networks [get]
func (h *NetworkHandler) GetNetworks(c *gin.Context) {
	var country *string
	if v := c.Query("country"); v != "" {
		country = &v
	}
	activeOnly := c.Query("active") == "true"

	networks, err := h.networkService.List(country, activeOnly)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"networks": networks})
}

// CreateNetwork adds a mobile-money network
// @Summary     Create network
// @Description Add a mobile-money network for one of the corridor countries
// @Tags        networks
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateNetworkRequest true "Network details"
// @Success     201 {object} models.MobileMoneyNetwork "Network created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /networks [post]
func (h *NetworkHandler) CreateNetwork(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateNetworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	network, err := h.networkService.Create(req.Name, req.Code, req.Country)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_NETWORK", "network", network.ID, c.ClientIP(),
		map[string]interface{}{"code": network.Code, "country": network.Country})

	c.JSON(http.StatusCreated, gin.H{"network": network})
}

// SetNetworkActive toggles a network's availability
// @Summary     Toggle network
// @Description Activate or deactivate a mobile-money network
// @Tags        networks
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                     true "Network ID"
// @Param       request body SetNetworkActiveRequest true "Desired state"
// @Success     200 {object} models.MobileMoneyNetwork "Updated network"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Network not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /networks/{id}/active [put]
func (h *NetworkHandler) SetNetworkActive(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	networkID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetNetworkActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	network, err := h.networkService.SetActive(networkID, *req.IsActive)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "TOGGLE_NETWORK", "network", networkID, c.ClientIP(),
		map[string]interface{}{"is_active": *req.IsActive})

	c.JSON(http.StatusOK, gin.H{"network": network})
}
