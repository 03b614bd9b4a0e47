package document

import "time"

// Document represents an uploaded project file. Content holds the text
// extracted at ingestion time and exists only to feed the assistant.
type Document struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"project_id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"` // MIME type
	Size       int64     `json:"size"` // bytes
	URL        string    `json:"url"`
	Key        string    `json:"key"` // object-store key
	Content    *string   `json:"content,omitempty"`
	UploadedBy string    `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
