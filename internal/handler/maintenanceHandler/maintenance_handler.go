// Package maintenanceHandler exposes the maintenance-report workflow:
// reports are raised against one equipment or vehicle and move through
// REPORTED -> IN_PROGRESS -> COMPLETED.
package maintenanceHandler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Desco-devs/desco-asset-management-sub005/internal/model/asset"
	"github.com/Desco-devs/desco-asset-management-sub005/internal/repository/maintenanceRepo"
	"github.com/Desco-devs/desco-asset-management-sub005/pkg/logger"
)

type Notifier interface {
	Publish(ctx context.Context, resource, action, id string) error
}

type MaintenanceHandler struct {
	repo     *maintenanceRepo.MaintenanceRepository
	notifier Notifier
}

func New(repo *maintenanceRepo.MaintenanceRepository, notifier Notifier) *MaintenanceHandler {
	return &MaintenanceHandler{repo: repo, notifier: notifier}
}

func (h *MaintenanceHandler) Register(api *gin.RouterGroup) {
	api.GET("/maintenance-reports", h.list)
	api.POST("/maintenance-reports", h.create)
	api.GET("/maintenance-reports/:id", h.get)
	api.PATCH("/maintenance-reports/:id", h.update)
	api.DELETE("/maintenance-reports/:id", h.delete)
}

func (h *MaintenanceHandler) notify(c *gin.Context, action string, id uuid.UUID) {
	if h.notifier == nil {
		return
	}
	ctx := c.Request.Context()
	if err := h.notifier.Publish(ctx, "maintenance-report", action, id.String()); err != nil {
		logger.GetLogger(ctx).Warn("failed to publish realtime event", zap.Error(err))
	}
}

type createRequest struct {
	EquipmentID    *uuid.UUID           `json:"equipmentId"`
	VehicleID      *uuid.UUID           `json:"vehicleId"`
	Issue          string               `json:"issue" binding:"required"`
	Remarks        *string              `json:"remarks"`
	Priority       asset.ReportPriority `json:"priority"`
	AttachmentURLs []string             `json:"attachmentUrls"`
}

func (h *MaintenanceHandler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if (req.EquipmentID == nil) == (req.VehicleID == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "exactly one of equipmentId or vehicleId is required"})
		return
	}
	priority := req.Priority
	if priority == "" {
		priority = asset.PriorityMedium
	}
	attachments := req.AttachmentURLs
	if attachments == nil {
		attachments = []string{}
	}

	report := &asset.MaintenanceReport{
		ID:             uuid.New(),
		EquipmentID:    req.EquipmentID,
		VehicleID:      req.VehicleID,
		Issue:          req.Issue,
		Remarks:        req.Remarks,
		Priority:       priority,
		Status:         asset.ReportReported,
		AttachmentURLs: attachments,
		ReportedAt:     time.Now().UTC(),
	}
	if err := h.repo.Create(c.Request.Context(), report); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.notify(c, "created", report.ID)
	c.JSON(http.StatusCreated, report)
}

func (h *MaintenanceHandler) list(c *gin.Context) {
	status := asset.ReportStatus(c.Query("status"))
	reports, err := h.repo.List(c.Request.Context(), status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reports)
}

func (h *MaintenanceHandler) get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	report, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	c.JSON(http.StatusOK, report)
}

type updateRequest struct {
	Issue          *string               `json:"issue"`
	Remarks        *string               `json:"remarks"`
	Priority       *asset.ReportPriority `json:"priority"`
	Status         *asset.ReportStatus   `json:"status"`
	AttachmentURLs []string              `json:"attachmentUrls"`
}

func (h *MaintenanceHandler) update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}

	if req.Issue != nil {
		report.Issue = *req.Issue
	}
	if req.Remarks != nil {
		report.Remarks = req.Remarks
	}
	if req.Priority != nil {
		report.Priority = *req.Priority
	}
	if req.AttachmentURLs != nil {
		report.AttachmentURLs = req.AttachmentURLs
	}
	if req.Status != nil {
		if err := asset.ValidateTransition(report.Status, *req.Status); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		report.Status = *req.Status
		if *req.Status == asset.ReportCompleted && report.RepairedAt == nil {
			now := time.Now().UTC()
			report.RepairedAt = &now
		}
	}

	if err := h.repo.Update(c.Request.Context(), report); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.notify(c, "updated", report.ID)
	c.JSON(http.StatusOK, report)
}

func (h *MaintenanceHandler) delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.notify(c, "deleted", id)
	c.Status(http.StatusNoContent)
}
