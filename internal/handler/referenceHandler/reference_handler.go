// Package referenceHandler exposes CRUD for the location/client/project
// chain the dashboard's admin screens edit.
package referenceHandler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Desco-devs/desco-asset-management-sub005/internal/model/asset"
	"github.com/Desco-devs/desco-asset-management-sub005/internal/repository/referenceRepo"
	"github.com/Desco-devs/desco-asset-management-sub005/pkg/logger"
)

type Notifier interface {
	Publish(ctx context.Context, resource, action, id string) error
}

type ReferenceHandler struct {
	repo     *referenceRepo.ReferenceRepository
	notifier Notifier
}

func New(repo *referenceRepo.ReferenceRepository, notifier Notifier) *ReferenceHandler {
	return &ReferenceHandler{repo: repo, notifier: notifier}
}

func (h *ReferenceHandler) Register(api *gin.RouterGroup) {
	api.GET("/locations", h.listLocations)
	api.POST("/locations", h.createLocation)
	api.DELETE("/locations/:id", h.deleteLocation)

	api.GET("/clients", h.listClients)
	api.POST("/clients", h.createClient)
	api.DELETE("/clients/:id", h.deleteClient)

	api.GET("/projects", h.listProjects)
	api.POST("/projects", h.createProject)
	api.DELETE("/projects/:id", h.deleteProject)
}

func (h *ReferenceHandler) notify(c *gin.Context, resource, action string, id uuid.UUID) {
	if h.notifier == nil {
		return
	}
	ctx := c.Request.Context()
	if err := h.notifier.Publish(ctx, resource, action, id.String()); err != nil {
		logger.GetLogger(ctx).Warn("failed to publish realtime event",
			zap.String("resource", resource), zap.Error(err))
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

func (h *ReferenceHandler) listLocations(c *gin.Context) {
	list, err := h.repo.ListLocations(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ReferenceHandler) createLocation(c *gin.Context) {
	var req struct {
		Address string `json:"address" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	l := &asset.Location{ID: uuid.New(), Address: req.Address, CreatedAt: time.Now().UTC()}
	if err := h.repo.CreateLocation(c.Request.Context(), l); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.notify(c, "location", "created", l.ID)
	c.JSON(http.StatusCreated, l)
}

func (h *ReferenceHandler) deleteLocation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.repo.DeleteLocation(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.notify(c, "location", "deleted", id)
	c.Status(http.StatusNoContent)
}

func (h *ReferenceHandler) listClients(c *gin.Context) {
	list, err := h.repo.ListClients(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ReferenceHandler) createClient(c *gin.Context) {
	var req struct {
		Name       string    `json:"name" binding:"required"`
		LocationID uuid.UUID `json:"locationId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	loc, err := h.repo.GetLocationByID(c.Request.Context(), req.LocationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if loc == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
		return
	}
	cl := &asset.Client{ID: uuid.New(), Name: req.Name, LocationID: req.LocationID, CreatedAt: time.Now().UTC()}
	if err := h.repo.CreateClient(c.Request.Context(), cl); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.notify(c, "client", "created", cl.ID)
	c.JSON(http.StatusCreated, cl)
}

func (h *ReferenceHandler) deleteClient(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.repo.DeleteClient(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.notify(c, "client", "deleted", id)
	c.Status(http.StatusNoContent)
}

func (h *ReferenceHandler) listProjects(c *gin.Context) {
	list, err := h.repo.ListProjects(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ReferenceHandler) createProject(c *gin.Context) {
	var req struct {
		Name     string    `json:"name" binding:"required"`
		ClientID uuid.UUID `json:"clientId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cl, err := h.repo.GetClientByID(c.Request.Context(), req.ClientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if cl == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
		return
	}
	p := &asset.Project{ID: uuid.New(), Name: req.Name, ClientID: req.ClientID, CreatedAt: time.Now().UTC()}
	if err := h.repo.CreateProject(c.Request.Context(), p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.notify(c, "project", "created", p.ID)
	c.JSON(http.StatusCreated, p)
}

func (h *ReferenceHandler) deleteProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.repo.DeleteProject(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.notify(c, "project", "deleted", id)
	c.Status(http.StatusNoContent)
}
