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

// MerchandiseHandler handles catalog requests.
type MerchandiseHandler struct {
	merchandiseService services.MerchandiseServicer
	auditService       services.AuditServicer
}

// NewMerchandiseHandler creates a new MerchandiseHandler.
func NewMerchandiseHandler(merchandiseService services.MerchandiseServicer, auditService services.AuditServicer) *MerchandiseHandler {
	return &MerchandiseHandler{merchandiseService: merchandiseService, auditService: auditService}
}

// MerchandiseRequest represents the request payload for creating or updating a catalog item
type MerchandiseRequest struct {
	Name          string          `json:"name" binding:"required,max=200"`
	Category      string          `json:"category" binding:"max=100"`
	Description   string          `json:"description" binding:"max=1000"`
	UnitPrice     decimal.Decimal `json:"unit_price" binding:"required"`
	Currency      string          `json:"currency" binding:"required,transfer_currency"`
	StockQuantity int             `json:"stock_quantity" binding:"gte=0"`
	IsActive      *bool           `json:"is_active"`
}

func (r MerchandiseRequest) toModel() *models.Merchandise {
	item := &models.Merchandise{
		Name:          r.Name,
		Category:      r.Category,
		Description:   r.Description,
		UnitPrice:     r.UnitPrice,
		Currency:      r.Currency,
		StockQuantity: r.StockQuantity,
		IsActive:      true,
	}
	if r.IsActive != nil {
		item.IsActive = *r.IsActive
	}
	return item
}

// CreateMerchandise creates a catalog item
// @Summary     Create merchandise
// @Description Add an item to the merchandise catalog
// @Tags        merchandise
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body MerchandiseRequest true "Item details"
// @Success     201 {object} models.Merchandise "Item created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /merchandise [post]
func (h *MerchandiseHandler) CreateMerchandise(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req MerchandiseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	item, err := h.merchandiseService.Create(req.toModel())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_MERCHANDISE", "merchandise", item.ID, c.ClientIP(), nil)

	c.JSON(http.StatusCreated, gin.H{"merchandise": item})
}

// GetMerchandise lists catalog items
// @Summary     List merchandise
// @Description Get a paginated list of catalog items
// @Tags        merchandise
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int  false "Page number (default 1)"
// @Param       page_size query int  false "Items per page (default 25, max 200)"
// @Param       active    query bool false "Only active items"
// @Success     200 {object} pagination.PageResponse[models.Merchandise] "Paginated items"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /merchandise [get]
func (h *MerchandiseHandler) GetMerchandise(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.merchandiseService.List(page, c.Query("active") == "true")
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMerchandiseItem retrieves a catalog item
// @Summary     Get merchandise item
// @Description Get a catalog item by ID
// @Tags        merchandise
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Item ID"
// @Success     200 {object} models.Merchandise "Item"
// @Failure     400 {object} ErrorResponse "Invalid item ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Item not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /merchandise/{id} [get]
func (h *MerchandiseHandler) GetMerchandiseItem(c *gin.Context) {
	itemID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	item, err := h.merchandiseService.GetByID(itemID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"merchandise": item})
}

// UpdateMerchandise updates a catalog item
// @Summary     Update merchandise
// @Description Update a catalog item's details, price, or stock
// @Tags        merchandise
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                true "Item ID"
// @Param       request body MerchandiseRequest true "Item details"
// @Success     200 {object} models.Merchandise "Updated item"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Item not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /merchandise/{id} [put]
func (h *MerchandiseHandler) UpdateMerchandise(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	itemID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req MerchandiseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	item, err := h.merchandiseService.Update(itemID, req.toModel())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_MERCHANDISE", "merchandise", itemID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"merchandise": item})
}

// DeleteMerchandise deletes a catalog item
// @Summary     Delete merchandise
// @Description Soft-delete a catalog item by ID
// @Tags        merchandise
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Item ID"
// @Success     200 {object} MessageResponse "Item deleted"
// @Failure     400 {object} ErrorResponse "Invalid item ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Item not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /merchandise/{id} [delete]
func (h *MerchandiseHandler) DeleteMerchandise(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	itemID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.merchandiseService.Delete(itemID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_MERCHANDISE", "merchandise", itemID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Merchandise deleted successfully"})
}
