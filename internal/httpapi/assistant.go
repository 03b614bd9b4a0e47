package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atelierhq/atelier/internal/domain/assistant"
)

type assistantHandler struct {
	svc *assistant.Service
}

type askRequest struct {
	Question string `json:"question" binding:"required"`
}

func (h *assistantHandler) ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := h.svc.Ask(c.Request.Context(), c.Param("id"), req.Question)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, answer)
}

func (h *assistantHandler) history(c *gin.Context) {
	exchanges, err := h.svc.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": exchanges})
}
