package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atelierhq/atelier/internal/domain/assistant"
	"github.com/atelierhq/atelier/internal/domain/client"
	"github.com/atelierhq/atelier/internal/domain/document"
	"github.com/atelierhq/atelier/internal/domain/project"
	"github.com/atelierhq/atelier/internal/domain/task"
	"github.com/atelierhq/atelier/internal/domain/user"
	"github.com/atelierhq/atelier/internal/identity"
)

// respondError maps a domain error onto an HTTP status. Unknown errors
// become opaque 500s so internals never leak to the client.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, identity.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, client.ErrClientNotFound),
		errors.Is(err, project.ErrProjectNotFound),
		errors.Is(err, project.ErrClientNotFound),
		errors.Is(err, task.ErrTaskNotFound),
		errors.Is(err, task.ErrProjectNotFound),
		errors.Is(err, document.ErrDocumentNotFound),
		errors.Is(err, document.ErrProjectNotFound),
		errors.Is(err, assistant.ErrProjectNotFound),
		errors.Is(err, user.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, client.ErrInvalidInput),
		errors.Is(err, project.ErrInvalidInput),
		errors.Is(err, task.ErrInvalidInput),
		errors.Is(err, document.ErrInvalidInput),
		errors.Is(err, assistant.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, assistant.ErrModelFailure):
		c.JSON(http.StatusBadGateway, gin.H{"error": "assistant unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
