package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mauzoapp/mauzo_backend/internal/apperrors"
	"github.com/mauzoapp/mauzo_backend/internal/core/domain"
	portssvc "github.com/mauzoapp/mauzo_backend/internal/core/ports/services"
	"github.com/mauzoapp/mauzo_backend/internal/dto"
	"github.com/mauzoapp/mauzo_backend/internal/middleware"
)

// syncHandler exposes the pending-sync drain surface to the upload worker.
type syncHandler struct {
	syncService portssvc.SyncSvcFacade
}

// newSyncHandler creates a new syncHandler.
func newSyncHandler(syncService portssvc.SyncSvcFacade) *syncHandler {
	return &syncHandler{syncService: syncService}
}

func (h *syncHandler) listPending(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityType := domain.EntityType(c.Param("entityType"))

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	records, err := h.syncService.ListPending(c.Request.Context(), entityType, limit)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list pending sync records", slog.String("error", err.Error()), slog.String("entity_type", string(entityType)))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve pending records"})
		return
	}

	c.JSON(http.StatusOK, dto.PendingSyncResponse{
		EntityType: string(entityType),
		Records:    dto.ToSyncRecordResponses(records),
	})
}

func (h *syncHandler) acknowledge(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityType := domain.EntityType(c.Param("entityType"))
	recordID := c.Param("recordID")

	// The acknowledgement body is optional; an absent timestamp defaults
	// to the server clock.
	req := dto.MarkSyncedRequest{}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
	}

	syncedAt := time.Time{}
	if req.SyncedAt != nil {
		syncedAt = *req.SyncedAt
	}

	if err := h.syncService.MarkSynced(c.Request.Context(), entityType, recordID, syncedAt); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		default:
			logger.Error("Failed to acknowledge sync", slog.String("error", err.Error()),
				slog.String("entity_type", string(entityType)), slog.String("record_id", recordID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to acknowledge sync"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// registerSyncRoutes wires the sync drain endpoints.
func registerSyncRoutes(group *gin.RouterGroup, syncService portssvc.SyncSvcFacade) {
	h := newSyncHandler(syncService)

	sync := group.Group("/sync")
	sync.GET("/:entityType/pending", h.listPending)
	sync.POST("/:entityType/records/:recordID/ack", h.acknowledge)
}
