package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "tramex/internal/errors"
	"tramex/internal/models"
	"tramex/internal/pagination"
	"tramex/internal/services"
)

// ParcelHandler handles parcel shipment requests, including the public
// tracking endpoint.
type ParcelHandler struct {
	parcelService services.ParcelServicer
	auditService  services.AuditServicer
}

// NewParcelHandler creates a new ParcelHandler.
func NewParcelHandler(parcelService services.ParcelServicer, auditService services.AuditServicer) *ParcelHandler {
	return &ParcelHandler{parcelService: parcelService, auditService: auditService}
}

// ParcelRequest represents the request payload for creating or updating a parcel
type ParcelRequest struct {
	Direction        models.Direction      `json:"direction" binding:"required,direction"`
	SenderName       string                `json:"sender_name" binding:"required,max=200"`
	SenderPhone      string                `json:"sender_phone" binding:"max=30"`
	SenderAddress    string                `json:"sender_address" binding:"max=500"`
	RecipientName    string                `json:"recipient_name" binding:"required,max=200"`
	RecipientPhone   string                `json:"recipient_phone" binding:"max=30"`
	RecipientAddress string                `json:"recipient_address" binding:"max=500"`
	WeightKg         decimal.Decimal       `json:"weight_kg"`
	Dimensions       string                `json:"dimensions" binding:"max=100"`
	Contents         string                `json:"contents" binding:"max=1000"`
	Priority         models.ParcelPriority `json:"priority" binding:"omitempty,parcel_priority"`
	ShippingCost     decimal.Decimal       `json:"shipping_cost"`
	Currency         string                `json:"currency" binding:"omitempty,transfer_currency"`
}

// UpdateParcelStatusRequest moves a parcel to a new shipment state
type UpdateParcelStatusRequest struct {
	Status models.ParcelStatus `json:"status" binding:"required,parcel_status"`
}

func (r ParcelRequest) toModel() *models.Parcel {
	return &models.Parcel{
		Direction:        r.Direction,
		SenderName:       r.SenderName,
		SenderPhone:      r.SenderPhone,
		SenderAddress:    r.SenderAddress,
		RecipientName:    r.RecipientName,
		RecipientPhone:   r.RecipientPhone,
		RecipientAddress: r.RecipientAddress,
		WeightKg:         r.WeightKg,
		Dimensions:       r.Dimensions,
		Contents:         r.Contents,
		Priority:         r.Priority,
		ShippingCost:     r.ShippingCost,
		Currency:         r.Currency,
	}
}

// CreateParcel registers a parcel shipment
// @Summary     Create parcel
// @Description Register a parcel shipment and generate its tracking number
// @Tags        parcels
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ParcelRequest true "Parcel details"
// @Success     201 {object} models.Parcel "Parcel created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /parcels [post]
func (h *ParcelHandler) CreateParcel(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ParcelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	parcel := req.toModel()
	parcel.CreatedBy = userID

	created, err := h.parcelService.Create(parcel)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_PARCEL", "parcel", created.ID, c.ClientIP(),
		map[string]interface{}{"tracking_number": created.TrackingNumber})

	c.JSON(http.StatusCreated, gin.H{"parcel": created})
}

// GetParcels lists parcel shipments
// @Summary     List parcels
// @Description Get a paginated list of parcels with optional status and priority filters
// @Tags        parcels
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 25, max 200)"
// @Param       status    query string false "Filter by status (received, processing, in_transit, delivered, delayed)"
// @Param       priority  query string false "Filter by priority (standard, express, urgent)"
// @Success     200 {object} pagination.PageResponse[models.Parcel] "Paginated parcels"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /parcels [get]
func (h *ParcelHandler) GetParcels(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var filter services.ParcelFilter

	if v := c.Query("status"); v != "" {
		status := models.ParcelStatus(v)
		switch status {
		case models.ParcelReceived, models.ParcelProcessing, models.ParcelInTransit,
			models.ParcelDelivered, models.ParcelDelayed:
			filter.Status = &status
		default:
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid status"))
			return
		}
	}

	if v := c.Query("priority"); v != "" {
		priority := models.ParcelPriority(v)
		switch priority {
		case models.PriorityStandard, models.PriorityExpress, models.PriorityUrgent:
			filter.Priority = &priority
		default:
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid priority"))
			return
		}
	}

	result, err := h.parcelService.List(page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetParcel retrieves a parcel shipment
// @Summary     Get parcel
// @Description Get a parcel by ID
// @Tags        parcels
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Parcel ID"
// @Success     200 {object} models.Parcel "Parcel"
// @Failure     400 {object} ErrorResponse "Invalid parcel ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Parcel not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /parcels/{id} [get]
func (h *ParcelHandler) GetParcel(c *gin.Context) {
	parcelID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	parcel, err := h.parcelService.GetByID(parcelID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"parcel": parcel})
}

// TrackParcel looks up a parcel by tracking number. Public, no authentication.
// @Summary     Track parcel
// @Description Look up a parcel's shipment status by its public tracking number
// @Tags        parcels
// @Accept      json
// @Produce     json
// @Param       tracking_number path string true "Tracking number"
// @Success     200 {object} models.Parcel "Parcel status"
// @Failure     404 {object} ErrorResponse "Parcel not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /track/{tracking_number} [get]
func (h *ParcelHandler) TrackParcel(c *gin.Context) {
	parcel, err := h.parcelService.Track(c.Param("tracking_number"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	// Public endpoint: expose shipment progress, not personal details.
	c.JSON(http.StatusOK, gin.H{
		"parcel": gin.H{
			"tracking_number": parcel.TrackingNumber,
			"direction":       parcel.Direction,
			"status":          parcel.Status,
			"priority":        parcel.Priority,
			"created_at":      parcel.CreatedAt,
			"updated_at":      parcel.UpdatedAt,
		},
	})
}

// UpdateParcel updates a parcel's details
// @Summary     Update parcel
// @Description Update a parcel's shipment details
// @Tags        parcels
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int           true "Parcel ID"
// @Param       request body ParcelRequest true "Parcel details"
// @Success     200 {object} models.Parcel "Updated parcel"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Parcel not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /parcels/{id} [put]
func (h *ParcelHandler) UpdateParcel(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	parcelID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ParcelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	parcel, err := h.parcelService.Update(parcelID, req.toModel())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_PARCEL", "parcel", parcelID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"parcel": parcel})
}

// UpdateParcelStatus moves a parcel to a new shipment state
// @Summary     Update parcel status
// @Description Move a parcel to a new shipment state; parcels can move between states freely
// @Tags        parcels
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                       true "Parcel ID"
// @Param       request body UpdateParcelStatusRequest true "New status"
// @Success     200 {object} models.Parcel "Updated parcel"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Parcel not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /parcels/{id}/status [put]
func (h *ParcelHandler) UpdateParcelStatus(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	parcelID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateParcelStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	parcel, err := h.parcelService.UpdateStatus(parcelID, req.Status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_PARCEL_STATUS", "parcel", parcelID, c.ClientIP(),
		map[string]interface{}{"status": req.Status})

	c.JSON(http.StatusOK, gin.H{"parcel": parcel})
}

// DeleteParcel deletes a parcel record
// @Summary     Delete parcel
// @Description Soft-delete a parcel by ID
// @Tags        parcels
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Parcel ID"
// @Success     200 {object} MessageResponse "Parcel deleted"
// @Failure     400 {object} ErrorResponse "Invalid parcel ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Parcel not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /parcels/{id} [delete]
func (h *ParcelHandler) DeleteParcel(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	parcelID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.parcelService.Delete(parcelID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_PARCEL", "parcel", parcelID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Parcel deleted successfully"})
}
