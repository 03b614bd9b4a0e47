package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atelierhq/atelier/internal/domain/user"
)

type userHandler struct {
	svc *user.Service
}

// me syncs the caller's profile into the database and returns it. The
// first user ever seen becomes the owner.
func (h *userHandler) me(c *gin.Context) {
	u, err := h.svc.Sync(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
