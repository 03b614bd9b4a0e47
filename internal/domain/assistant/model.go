package assistant

import "time"

// Answer is the assistant's response to a project question.
type Answer struct {
	Answer      string `json:"answer"`
	ProjectName string `json:"project_name"`
}

// Exchange is one question/answer pair kept in the per-project history.
type Exchange struct {
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	AskedAt  time.Time `json:"asked_at"`
}
