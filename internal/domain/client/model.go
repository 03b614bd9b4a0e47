package client

import "time"

// Status represents a client's engagement status
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusOnHold   Status = "on_hold"
	StatusArchived Status = "archived"
)

// ValidStatus reports whether s is a known client status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusActive, StatusInactive, StatusOnHold, StatusArchived:
		return true
	}
	return false
}

// Metadata holds descriptive attributes of a client
type Metadata struct {
	Industry         string `json:"industry,omitempty"`
	CompanySize      string `json:"company_size,omitempty"`
	PreferredContact string `json:"preferred_contact,omitempty"`
	Timezone         string `json:"timezone,omitempty"`
}

// Settings holds per-client collaboration settings
type Settings struct {
	PortalAccess          bool   `json:"portal_access,omitempty"`
	AllowTaskComments     bool   `json:"allow_task_comments,omitempty"`
	NotificationFrequency string `json:"notification_frequency,omitempty"`
}

// Client represents a freelancer's client. Deleting a client cascades to
// its projects and, transitively, their tasks and documents.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Website   string    `json:"website,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Status    Status    `json:"status"`
	Metadata  *Metadata `json:"metadata,omitempty"`
	Settings  *Settings `json:"settings,omitempty"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
