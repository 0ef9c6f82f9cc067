package assetHandler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Desco-devs/desco-asset-management-sub005/internal/model/asset"
	"github.com/Desco-devs/desco-asset-management-sub005/internal/service/assetService"
)

type AssetHandler struct {
	svc *assetService.Service
}

func New(svc *assetService.Service) *AssetHandler {
	return &AssetHandler{svc: svc}
}

func (h *AssetHandler) Register(api *gin.RouterGroup) {
	api.GET("/equipments", h.listEquipment)
	api.POST("/equipments", h.createEquipment)
	api.GET("/equipments/:id", h.getEquipment)
	api.PATCH("/equipments/:id", h.updateEquipment)
	api.DELETE("/equipments/:id", h.deleteEquipment)
	api.PUT("/equipments/:id/parts", h.reconcileEquipmentParts)
	api.GET("/equipments/:id/parts/file", h.downloadEquipmentPartFile)

	api.GET("/vehicles", h.listVehicles)
	api.POST("/vehicles", h.createVehicle)
	api.GET("/vehicles/:id", h.getVehicle)
	api.PATCH("/vehicles/:id", h.updateVehicle)
	api.DELETE("/vehicles/:id", h.deleteVehicle)
	api.PUT("/vehicles/:id/parts", h.reconcileVehicleParts)
	api.GET("/vehicles/:id/parts/file", h.downloadVehiclePartFile)
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, asset.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, asset.ErrBadPayload):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

type equipmentRequest struct {
	Brand          string     `json:"brand" binding:"required"`
	Model          string     `json:"model" binding:"required"`
	Type           string     `json:"type" binding:"required"`
	Owner          string     `json:"owner" binding:"required"`
	Status         string     `json:"status"`
	Remarks        *string    `json:"remarks"`
	ProjectID      uuid.UUID  `json:"projectId" binding:"required"`
	InspectionDate *time.Time `json:"inspectionDate"`
}

func (r equipmentRequest) toModel() *asset.Equipment {
	status := asset.Status(r.Status)
	if status == "" {
		status = asset.StatusOperational
	}
	return &asset.Equipment{
		Brand:          r.Brand,
		Model:          r.Model,
		Type:           r.Type,
		Owner:          r.Owner,
		Status:         status,
		Remarks:        r.Remarks,
		ProjectID:      r.ProjectID,
		InspectionDate: r.InspectionDate,
	}
}

func (h *AssetHandler) listEquipment(c *gin.Context) {
	list, err := h.svc.ListEquipment(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *AssetHandler) createEquipment(c *gin.Context) {
	var req equipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	e := req.toModel()
	if err := h.svc.CreateEquipment(c.Request.Context(), e); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h *AssetHandler) getEquipment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	e, err := h.svc.GetEquipment(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *AssetHandler) updateEquipment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req equipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	e := req.toModel()
	e.ID = id
	updated, err := h.svc.UpdateEquipment(c.Request.Context(), e)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *AssetHandler) deleteEquipment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteEquipment(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// reconcileEquipmentParts is the parts endpoint: the multipart body carries
// the baseline tree, deletion requests, and new files per the field
// contract in parsePartsForm. The response is the updated record with the
// normalized {rootFiles, folders} shape.
func (h *AssetHandler) reconcileEquipmentParts(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expected multipart form: " + err.Error()})
		return
	}
	edit, closeUploads, err := parsePartsForm(form)
	if err != nil {
		respondError(c, err)
		return
	}
	defer closeUploads()

	updated, err := h.svc.ReconcileEquipmentParts(c.Request.Context(), id, *edit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// downloadEquipmentPartFile proxies one part blob through the API, keyed by
// the part's public URL in the url query parameter.
func (h *AssetHandler) downloadEquipmentPartFile(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	rawURL := c.Query("url")
	if rawURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing url query parameter"})
		return
	}
	rc, size, contentType, err := h.svc.OpenEquipmentPartFile(c.Request.Context(), id, rawURL)
	if err != nil {
		respondError(c, err)
		return
	}
	defer rc.Close()
	c.DataFromReader(http.StatusOK, size, contentType, rc, nil)
}

type vehicleRequest struct {
	Brand       string    `json:"brand" binding:"required"`
	Model       string    `json:"model" binding:"required"`
	Type        string    `json:"type" binding:"required"`
	PlateNumber string    `json:"plateNumber" binding:"required"`
	Owner       string    `json:"owner" binding:"required"`
	Status      string    `json:"status"`
	ProjectID   uuid.UUID `json:"projectId" binding:"required"`
}

func (r vehicleRequest) toModel() *asset.Vehicle {
	status := asset.Status(r.Status)
	if status == "" {
		status = asset.StatusOperational
	}
	return &asset.Vehicle{
		Brand:       r.Brand,
		Model:       r.Model,
		Type:        r.Type,
		PlateNumber: r.PlateNumber,
		Owner:       r.Owner,
		Status:      status,
		ProjectID:   r.ProjectID,
	}
}

func (h *AssetHandler) listVehicles(c *gin.Context) {
	list, err := h.svc.ListVehicles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *AssetHandler) createVehicle(c *gin.Context) {
	var req vehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	v := req.toModel()
	if err := h.svc.CreateVehicle(c.Request.Context(), v); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (h *AssetHandler) getVehicle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	v, err := h.svc.GetVehicle(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *AssetHandler) updateVehicle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req vehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	v := req.toModel()
	v.ID = id
	updated, err := h.svc.UpdateVehicle(c.Request.Context(), v)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *AssetHandler) deleteVehicle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteVehicle(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AssetHandler) downloadVehiclePartFile(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	rawURL := c.Query("url")
	if rawURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing url query parameter"})
		return
	}
	rc, size, contentType, err := h.svc.OpenVehiclePartFile(c.Request.Context(), id, rawURL)
	if err != nil {
		respondError(c, err)
		return
	}
	defer rc.Close()
	c.DataFromReader(http.StatusOK, size, contentType, rc, nil)
}

func (h *AssetHandler) reconcileVehicleParts(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expected multipart form: " + err.Error()})
		return
	}
	edit, closeUploads, err := parsePartsForm(form)
	if err != nil {
		respondError(c, err)
		return
	}
	defer closeUploads()

	updated, err := h.svc.ReconcileVehicleParts(c.Request.Context(), id, *edit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
