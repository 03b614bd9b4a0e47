package user

import "time"

// Role represents a user's access role
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	RoleViewer Role = "viewer"
)

// Permissions are optional per-user capability flags
type Permissions struct {
	CanDeleteProjects bool `json:"can_delete_projects,omitempty"`
	CanManageBilling  bool `json:"can_manage_billing,omitempty"`
	CanInviteUsers    bool `json:"can_invite_users,omitempty"`
}

// Preferences are per-user UI preferences
type Preferences struct {
	Theme              string `json:"theme,omitempty"`
	DefaultView        string `json:"default_view,omitempty"`
	EmailNotifications bool   `json:"email_notifications,omitempty"`
	TaskReminders      bool   `json:"task_reminders,omitempty"`
}

// User represents an authenticated dashboard user. The ID is the opaque
// identifier assigned by the identity provider and never changes.
type User struct {
	ID          string       `json:"id"`
	Email       string       `json:"email"`
	Name        string       `json:"name,omitempty"`
	AvatarURL   string       `json:"avatar_url,omitempty"`
	Role        Role         `json:"role"`
	Permissions *Permissions `json:"permissions,omitempty"`
	Preferences *Preferences `json:"preferences,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
