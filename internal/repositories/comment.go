package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/qa-resolver/internal/models"
)

const commentColumns = `id, question_id, user_id, content, created_at, updated_at, attachments, show_username, parent_comment_id`

// CommentReadRepository handles comment read operations.
type CommentReadRepository struct {
	db *sqlx.DB
}

func NewCommentReadRepository(db *sqlx.DB) *CommentReadRepository {
	return &CommentReadRepository{db: db}
}

// List returns up to 100 comments, newest first.
func (r *CommentReadRepository) List(ctx context.Context) ([]models.CommentDB, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM comments
		ORDER BY created_at DESC
		LIMIT 100
	`, commentColumns)

	rows := []models.CommentDB{}
	err := r.db.SelectContext(ctx, &rows, query)
	logQuery(query, nil, err)
	return rows, err
}

// Exists reports whether the comment exists and belongs to the caller.
func (r *CommentReadRepository) Exists(ctx context.Context, id, userID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM comments WHERE id = $1 AND user_id = $2)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, id, userID)
	logQuery(query, []any{id, userID}, err)
	return exists, err
}

// CommentWriteRepository handles comment write operations. Updates and
// deletes are scoped to the owning user.
type CommentWriteRepository struct {
	db *sqlx.DB
}

func NewCommentWriteRepository(db *sqlx.DB) *CommentWriteRepository {
	return &CommentWriteRepository{db: db}
}

// Create inserts a comment owned by the caller, with the same optional
// defaults as questions.
func (r *CommentWriteRepository) Create(ctx context.Context, userID string, a models.CreateCommentArgs) (*models.CommentDB, error) {
	query := fmt.Sprintf(`
		INSERT INTO comments (id, question_id, user_id, content, attachments, show_username, parent_comment_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING %s
	`, commentColumns)

	attachments := a.Attachments
	if attachments == nil {
		attachments = models.StringSlice{}
	}
	showUsername := models.DefaultShowUsername
	if a.ShowUsername.Valid {
		showUsername = a.ShowUsername.Value
	}

	args := []any{uuid.New().String(), a.QuestionID, userID, a.Content, attachments, showUsername, a.ParentCommentID.Ptr()}

	var row models.CommentDB
	err := r.db.GetContext(ctx, &row, query, args...)
	logQuery(query, args, err)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Update applies a partial patch to the caller's comment. sql.ErrNoRows
// signals a missing or foreign row.
func (r *CommentWriteRepository) Update(ctx context.Context, id, userID string, a models.UpdateCommentArgs) (*models.CommentDB, error) {
	p := &patch{}
	if a.Content.Set {
		p.set("content", a.Content.Arg())
	}
	if a.Attachments.Set {
		p.set("attachments", a.Attachments.Arg())
	}
	if a.ShowUsername.Set {
		p.set("show_username", a.ShowUsername.Arg())
	}
	p.expr("updated_at = NOW()")

	query := fmt.Sprintf(`
		UPDATE comments
		SET %s
		WHERE id = $%d AND user_id = $%d
		RETURNING %s
	`, p.setClause(), len(p.args)+1, len(p.args)+2, commentColumns)
	args := append(p.args, id, userID)

	var row models.CommentDB
	err := r.db.GetContext(ctx, &row, query, args...)
	logQuery(query, args, err)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Delete removes the caller's comment. Non-owner deletes match zero
// rows and report false.
func (r *CommentWriteRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	const query = `DELETE FROM comments WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	var affected int64
	if res != nil {
		affected, _ = res.RowsAffected()
	}
	logQuery(query, []any{id, userID}, err)
	return affected > 0, err
}
