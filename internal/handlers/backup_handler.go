package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "tramex/internal/errors"
	"tramex/internal/mapper"
	"tramex/internal/services"
)

// BackupHandler handles transaction export and restore requests.
type BackupHandler struct {
	backupService services.BackupServicer
	auditService  services.AuditServicer
}

// NewBackupHandler creates a new BackupHandler.
func NewBackupHandler(backupService services.BackupServicer, auditService services.AuditServicer) *BackupHandler {
	return &BackupHandler{backupService: backupService, auditService: auditService}
}

// RestoreRequest represents the request payload for restoring a backup.
// Rows are accepted leniently: missing or malformed fields are defaulted
// rather than rejected.
type RestoreRequest struct {
	Transactions []mapper.RawTransaction `json:"transactions" binding:"required"`
}

// ExportBackup exports all transactions as a portable backup
// @Summary     Export backup
// @Description Export every transaction as a portable JSON backup document
// @Tags        backups
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Backup document"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /backups/export [get]
func (h *BackupHandler) ExportBackup(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rows, err := h.backupService.Export()
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "EXPORT_BACKUP", "backup", 0, c.ClientIP(),
		map[string]interface{}{"count": len(rows)})

	c.Header("Content-Disposition", `attachment; filename="tramex-backup.json"`)
	c.JSON(http.StatusOK, gin.H{"transactions": rows})
}

// RestoreBackup imports transactions from a backup document
// @Summary     Restore backup
// @Description Import transactions from a backup document; rows with missing or malformed fields are imported with safe defaults and counted
// @Tags        backups
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body RestoreRequest true "Backup document"
// @Success     200 {object} services.RestoreResult "Restore summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /backups/restore [post]
func (h *BackupHandler) RestoreBackup(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RestoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.backupService.Restore(req.Transactions)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "RESTORE_BACKUP", "backup", 0, c.ClientIP(),
		map[string]interface{}{"imported": result.Imported, "defaulted_rows": result.DefaultedRows})

	c.JSON(http.StatusOK, result)
}
