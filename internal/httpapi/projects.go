package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/atelierhq/atelier/internal/domain/project"
)

type projectHandler struct {
	svc *project.Service
}

type createProjectRequest struct {
	ClientID    string            `json:"client_id" binding:"required"`
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description"`
	Status      project.Status    `json:"status"`
	Priority    project.Priority  `json:"priority"`
	Config      *project.Config   `json:"config"`
	Metadata    *project.Metadata `json:"metadata"`
	StartDate   *time.Time        `json:"start_date"`
	EndDate     *time.Time        `json:"end_date"`
}

type updateProjectRequest struct {
	Name        *string           `json:"name"`
	Description *string           `json:"description"`
	Status      *project.Status   `json:"status"`
	Priority    *project.Priority `json:"priority"`
	Config      *project.Config   `json:"config"`
	Metadata    *project.Metadata `json:"metadata"`
	StartDate   *time.Time        `json:"start_date"`
	EndDate     *time.Time        `json:"end_date"`
}

func (h *projectHandler) create(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.svc.Create(c.Request.Context(), project.CreateRequest{
		ClientID:    req.ClientID,
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Config:      req.Config,
		Metadata:    req.Metadata,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *projectHandler) list(c *gin.Context) {
	projects, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func (h *projectHandler) listByClient(c *gin.Context) {
	projects, err := h.svc.ListByClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func (h *projectHandler) get(c *gin.Context) {
	found, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (h *projectHandler) update(c *gin.Context) {
	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), c.Param("id"), project.UpdateRequest{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Config:      req.Config,
		Metadata:    req.Metadata,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *projectHandler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
