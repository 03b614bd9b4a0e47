package task

import (
	"time"

	"github.com/atelierhq/atelier/internal/domain/project"
)

// Status represents a task's Kanban column
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusInReview   Status = "in_review"
	StatusDone       Status = "done"
	StatusBlocked    Status = "blocked"
)

// ValidStatus reports whether s is a known task status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusInReview, StatusDone, StatusBlocked:
		return true
	}
	return false
}

// ChecklistItem is one entry of a checklist block
type ChecklistItem struct {
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

// Block is one structured content block of a task
type Block struct {
	Type  string          `json:"type"` // text, checklist, file, link
	Value string          `json:"value,omitempty"`
	Items []ChecklistItem `json:"items,omitempty"`
	URL   string          `json:"url,omitempty"`
	Name  string          `json:"name,omitempty"`
	Size  int64           `json:"size,omitempty"`
	Title string          `json:"title,omitempty"`
}

// Content holds a task's structured content blocks
type Content struct {
	Blocks []Block `json:"blocks,omitempty"`
}

// Task represents a unit of work on a project board. Position establishes
// manual ordering within the (project, status) column.
type Task struct {
	ID           string           `json:"id"`
	ProjectID    string           `json:"project_id"`
	Title        string           `json:"title"`
	Description  string           `json:"description,omitempty"`
	Content      *Content         `json:"content,omitempty"`
	Status       Status           `json:"status"`
	Priority     project.Priority `json:"priority"`
	Category     string           `json:"category,omitempty"`
	Tags         []string         `json:"tags,omitempty"`
	AssigneeID   *string          `json:"assignee_id,omitempty"`
	ReporterID   *string          `json:"reporter_id,omitempty"`
	TimeEstimate int              `json:"time_estimate,omitempty"` // minutes
	TimeTracked  int              `json:"time_tracked"`            // minutes
	Position     int              `json:"position"`
	DueDate      *time.Time       `json:"due_date,omitempty"`
	CompletedAt  *time.Time       `json:"completed_at,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}
