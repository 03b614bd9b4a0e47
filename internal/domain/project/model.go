package project

import "time"

// Status represents a project's lifecycle status
type Status string

const (
	StatusPlanning  Status = "planning"
	StatusActive    Status = "active"
	StatusOnHold    Status = "on_hold"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ValidStatus reports whether s is a known project status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPlanning, StatusActive, StatusOnHold, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Priority represents urgency, shared with tasks
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ValidPriority reports whether p is a known priority.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Budget is the agreed project budget
type Budget struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Type     string  `json:"type"` // fixed or hourly
}

// Deliverable is a named piece of agreed work
type Deliverable struct {
	Name   string `json:"name"`
	Status string `json:"status"` // pending, in_progress, completed
}

// Milestone is a dated checkpoint
type Milestone struct {
	Name      string `json:"name"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

// Config holds the structured project agreement
type Config struct {
	Budget       *Budget       `json:"budget,omitempty"`
	Deliverables []Deliverable `json:"deliverables,omitempty"`
	Milestones   []Milestone   `json:"milestones,omitempty"`
}

// Metadata holds descriptive project attributes
type Metadata struct {
	ProjectType    string   `json:"project_type,omitempty"`
	TechStack      []string `json:"tech_stack,omitempty"`
	EstimatedHours int      `json:"estimated_hours,omitempty"`
}

// Project represents a piece of client work. Deleting a project cascades
// to its tasks and documents.
type Project struct {
	ID          string     `json:"id"`
	ClientID    string     `json:"client_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	Config      *Config    `json:"config,omitempty"`
	Metadata    *Metadata  `json:"metadata,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Summary is a lightweight representation for listing.
type Summary struct {
	ID            string    `json:"id"`
	ClientID      string    `json:"client_id"`
	ClientName    string    `json:"client_name"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Status        Status    `json:"status"`
	Priority      Priority  `json:"priority"`
	TaskCount     int       `json:"task_count"`
	OpenTaskCount int       `json:"open_task_count"`
	DocumentCount int       `json:"document_count"`
	CreatedAt     time.Time `json:"created_at"`
}
