package models

import "time"

// CommentDB represents a comment row. ParentCommentID enables one level
// of threaded replies; deeper nesting is not enforced here.
type CommentDB struct {
	ID              string      `db:"id"`
	QuestionID      string      `db:"question_id"`
	UserID          string      `db:"user_id"`
	Content         string      `db:"content"`
	CreatedAt       time.Time   `db:"created_at"`
	UpdatedAt       time.Time   `db:"updated_at"`
	Attachments     StringSlice `db:"attachments"`
	ShowUsername    bool        `db:"show_username"`
	ParentCommentID *string     `db:"parent_comment_id"`
}

// CommentOutput is the normalized comment shape. parentCommentId is
// omitted entirely when the comment has no parent.
type CommentOutput struct {
	ID              string      `json:"id"`
	QuestionID      string      `json:"questionId"`
	UserID          string      `json:"userId"`
	Content         string      `json:"content"`
	CreatedAt       string      `json:"createdAt"`
	UpdatedAt       string      `json:"updatedAt"`
	Attachments     StringSlice `json:"attachments"`
	ShowUsername    bool        `json:"showUsername"`
	ParentCommentID *string     `json:"parentCommentId,omitempty"`
}

// Output normalizes the row for callers.
func (c CommentDB) Output() CommentOutput {
	return CommentOutput{
		ID:              c.ID,
		QuestionID:      c.QuestionID,
		UserID:          c.UserID,
		Content:         c.Content,
		CreatedAt:       c.CreatedAt.UTC().Format(TimestampLayout),
		UpdatedAt:       c.UpdatedAt.UTC().Format(TimestampLayout),
		Attachments:     c.Attachments,
		ShowUsername:    c.ShowUsername,
		ParentCommentID: c.ParentCommentID,
	}
}

// CreateCommentArgs are the arguments for createDbComment.
type CreateCommentArgs struct {
	QuestionID      string           `json:"questionId"`
	Content         string           `json:"content"`
	Attachments     StringSlice      `json:"attachments"`
	ShowUsername    Optional[bool]   `json:"showUsername"`
	ParentCommentID Optional[string] `json:"parentCommentId"`
}

// UpdateCommentArgs are the arguments for updateDbComment.
type UpdateCommentArgs struct {
	ID           string                `json:"id"`
	Content      Optional[string]      `json:"content"`
	Attachments  Optional[StringSlice] `json:"attachments"`
	ShowUsername Optional[bool]        `json:"showUsername"`
}

// DeleteCommentArgs are the arguments for deleteDbComment.
type DeleteCommentArgs struct {
	ID string `json:"id"`
}
