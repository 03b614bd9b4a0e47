package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atelierhq/atelier/internal/domain/client"
)

type clientHandler struct {
	svc *client.Service
}

type createClientRequest struct {
	Name      string           `json:"name" binding:"required"`
	Email     string           `json:"email"`
	Phone     string           `json:"phone"`
	Company   string           `json:"company"`
	Website   string           `json:"website"`
	AvatarURL string           `json:"avatar_url"`
	Status    client.Status    `json:"status"`
	Metadata  *client.Metadata `json:"metadata"`
	Settings  *client.Settings `json:"settings"`
}

type updateClientRequest struct {
	Name      *string          `json:"name"`
	Email     *string          `json:"email"`
	Phone     *string          `json:"phone"`
	Company   *string          `json:"company"`
	Website   *string          `json:"website"`
	AvatarURL *string          `json:"avatar_url"`
	Status    *client.Status   `json:"status"`
	Metadata  *client.Metadata `json:"metadata"`
	Settings  *client.Settings `json:"settings"`
}

func (h *clientHandler) create(c *gin.Context) {
	var req createClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.svc.Create(c.Request.Context(), client.CreateRequest{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Company:   req.Company,
		Website:   req.Website,
		AvatarURL: req.AvatarURL,
		Status:    req.Status,
		Metadata:  req.Metadata,
		Settings:  req.Settings,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *clientHandler) list(c *gin.Context) {
	clients, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": clients})
}

func (h *clientHandler) get(c *gin.Context) {
	found, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (h *clientHandler) update(c *gin.Context) {
	var req updateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), c.Param("id"), client.UpdateRequest{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Company:   req.Company,
		Website:   req.Website,
		AvatarURL: req.AvatarURL,
		Status:    req.Status,
		Metadata:  req.Metadata,
		Settings:  req.Settings,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *clientHandler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
