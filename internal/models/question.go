package models

import "time"

// TimestampLayout renders machine timestamps in the canonical textual
// form callers expect (ISO-8601 with millisecond precision, UTC).
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Defaults applied when optional create arguments are omitted.
const (
	DefaultCategory     = "QUESTION"
	DefaultShowUsername = true
)

// QuestionDB represents a question row.
type QuestionDB struct {
	ID           string      `db:"id"`
	Title        string      `db:"title"`
	Content      string      `db:"content"`
	UserID       string      `db:"user_id"`
	CreatedAt    time.Time   `db:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at"`
	Attachments  StringSlice `db:"attachments"`
	ShowUsername bool        `db:"show_username"`
	Category     string      `db:"category"`
}

// QuestionOutput is the normalized question shape: timestamps rendered
// as ISO-8601 text, category coerced to a plain string.
type QuestionOutput struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Content      string      `json:"content"`
	UserID       string      `json:"userId"`
	CreatedAt    string      `json:"createdAt"`
	UpdatedAt    string      `json:"updatedAt"`
	Attachments  StringSlice `json:"attachments"`
	ShowUsername bool        `json:"showUsername"`
	Category     string      `json:"category"`
}

// Output normalizes the row for callers.
func (q QuestionDB) Output() QuestionOutput {
	return QuestionOutput{
		ID:           q.ID,
		Title:        q.Title,
		Content:      q.Content,
		UserID:       q.UserID,
		CreatedAt:    q.CreatedAt.UTC().Format(TimestampLayout),
		UpdatedAt:    q.UpdatedAt.UTC().Format(TimestampLayout),
		Attachments:  q.Attachments,
		ShowUsername: q.ShowUsername,
		Category:     q.Category,
	}
}

// CreateQuestionArgs are the arguments for createDbQuestion.
type CreateQuestionArgs struct {
	Title        string           `json:"title"`
	Content      string           `json:"content"`
	Attachments  StringSlice      `json:"attachments"`
	ShowUsername Optional[bool]   `json:"showUsername"`
	Category     Optional[string] `json:"category"`
}

// UpdateQuestionArgs are the arguments for updateDbQuestion.
type UpdateQuestionArgs struct {
	ID           string                `json:"id"`
	Title        Optional[string]      `json:"title"`
	Content      Optional[string]      `json:"content"`
	Attachments  Optional[StringSlice] `json:"attachments"`
	ShowUsername Optional[bool]        `json:"showUsername"`
	Category     Optional[string]      `json:"category"`
}

// DeleteQuestionArgs are the arguments for deleteDbQuestion.
type DeleteQuestionArgs struct {
	ID string `json:"id"`
}
