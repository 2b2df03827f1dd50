package models

// Notification is a feed entry pushed when someone comments on a
// caller's question.
type Notification struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	QuestionID string `json:"questionId"`
	CommentID  string `json:"commentId"`
	ActorID    string `json:"actorId"`
	CreatedAt  string `json:"createdAt"`
}
