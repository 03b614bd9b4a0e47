// Package httpapi exposes the dashboard's REST surface.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/atelierhq/atelier/internal/domain/assistant"
	"github.com/atelierhq/atelier/internal/domain/client"
	"github.com/atelierhq/atelier/internal/domain/document"
	"github.com/atelierhq/atelier/internal/domain/project"
	"github.com/atelierhq/atelier/internal/domain/task"
	"github.com/atelierhq/atelier/internal/domain/user"
	"github.com/atelierhq/atelier/internal/identity"
)

// Services bundles the domain services the API exposes
type Services struct {
	Users     *user.Service
	Clients   *client.Service
	Projects  *project.Service
	Tasks     *task.Service
	Documents *document.Service
	Assistant *assistant.Service
}

// NewRouter builds the gin engine with all routes registered
func NewRouter(verifier *identity.Verifier, svc Services, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	api.Use(authMiddleware(verifier))
	{
		users := &userHandler{svc: svc.Users}
		api.GET("/users/me", users.me)

		clients := &clientHandler{svc: svc.Clients}
		api.POST("/clients", clients.create)
		api.GET("/clients", clients.list)
		api.GET("/clients/:id", clients.get)
		api.PATCH("/clients/:id", clients.update)
		api.DELETE("/clients/:id", clients.delete)

		projects := &projectHandler{svc: svc.Projects}
		api.POST("/projects", projects.create)
		api.GET("/projects", projects.list)
		api.GET("/projects/:id", projects.get)
		api.GET("/clients/:id/projects", projects.listByClient)
		api.PATCH("/projects/:id", projects.update)
		api.DELETE("/projects/:id", projects.delete)

		tasks := &taskHandler{svc: svc.Tasks}
		api.POST("/tasks", tasks.create)
		api.GET("/tasks", tasks.list)
		api.GET("/tasks/:id", tasks.get)
		api.GET("/projects/:id/tasks", tasks.listByProject)
		api.PATCH("/tasks/:id", tasks.update)
		api.POST("/tasks/:id/move", tasks.move)
		api.DELETE("/tasks/:id", tasks.delete)

		documents := &documentHandler{svc: svc.Documents}
		api.POST("/projects/:id/documents", documents.upload)
		api.GET("/projects/:id/documents", documents.listByProject)
		api.GET("/documents/:id", documents.get)
		api.PATCH("/documents/:id/content", documents.updateContent)
		api.DELETE("/documents/:id", documents.delete)

		ai := &assistantHandler{svc: svc.Assistant}
		api.POST("/projects/:id/assistant", ai.ask)
		api.GET("/projects/:id/assistant/history", ai.history)
	}

	return r
}
