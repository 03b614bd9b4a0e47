package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/atelierhq/atelier/internal/domain/project"
	"github.com/atelierhq/atelier/internal/domain/task"
)

type taskHandler struct {
	svc *task.Service
}

type createTaskRequest struct {
	ProjectID    string           `json:"project_id" binding:"required"`
	Title        string           `json:"title" binding:"required"`
	Description  string           `json:"description"`
	Content      *task.Content    `json:"content"`
	Status       task.Status      `json:"status"`
	Priority     project.Priority `json:"priority"`
	Category     string           `json:"category"`
	Tags         []string         `json:"tags"`
	AssigneeID   *string          `json:"assignee_id"`
	TimeEstimate int              `json:"time_estimate"`
	DueDate      *time.Time       `json:"due_date"`
}

type updateTaskRequest struct {
	Title        *string           `json:"title"`
	Description  *string           `json:"description"`
	Content      *task.Content     `json:"content"`
	Status       *task.Status      `json:"status"`
	Priority     *project.Priority `json:"priority"`
	Category     *string           `json:"category"`
	Tags         []string          `json:"tags"`
	AssigneeID   *string           `json:"assignee_id"`
	TimeEstimate *int              `json:"time_estimate"`
	TimeTracked  *int              `json:"time_tracked"`
	DueDate      *time.Time        `json:"due_date"`
	CompletedAt  *time.Time        `json:"completed_at"`
}

// Position is a pointer so an explicit 0 still satisfies the required check.
type moveTaskRequest struct {
	Status   task.Status `json:"status" binding:"required"`
	Position *int        `json:"position" binding:"required"`
}

func (h *taskHandler) create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.svc.Create(c.Request.Context(), task.CreateRequest{
		ProjectID:    req.ProjectID,
		Title:        req.Title,
		Description:  req.Description,
		Content:      req.Content,
		Status:       req.Status,
		Priority:     req.Priority,
		Category:     req.Category,
		Tags:         req.Tags,
		AssigneeID:   req.AssigneeID,
		TimeEstimate: req.TimeEstimate,
		DueDate:      req.DueDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *taskHandler) list(c *gin.Context) {
	tasks, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func (h *taskHandler) listByProject(c *gin.Context) {
	tasks, err := h.svc.ListByProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func (h *taskHandler) get(c *gin.Context) {
	found, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (h *taskHandler) update(c *gin.Context) {
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), c.Param("id"), task.UpdateRequest{
		Title:        req.Title,
		Description:  req.Description,
		Content:      req.Content,
		Status:       req.Status,
		Priority:     req.Priority,
		Category:     req.Category,
		Tags:         req.Tags,
		AssigneeID:   req.AssigneeID,
		TimeEstimate: req.TimeEstimate,
		TimeTracked:  req.TimeTracked,
		DueDate:      req.DueDate,
		CompletedAt:  req.CompletedAt,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *taskHandler) move(c *gin.Context) {
	var req moveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	moved, err := h.svc.Move(c.Request.Context(), task.MoveRequest{
		ID:       c.Param("id"),
		Status:   req.Status,
		Position: *req.Position,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, moved)
}

func (h *taskHandler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
