package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/qa-resolver/internal/models"
)

const questionColumns = `id, title, content, user_id, created_at, updated_at, attachments, show_username, category`

// QuestionReadRepository handles question read operations.
type QuestionReadRepository struct {
	db *sqlx.DB
}

func NewQuestionReadRepository(db *sqlx.DB) *QuestionReadRepository {
	return &QuestionReadRepository{db: db}
}

// List returns up to 50 questions, newest first.
func (r *QuestionReadRepository) List(ctx context.Context) ([]models.QuestionDB, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM questions
		ORDER BY created_at DESC
		LIMIT 50
	`, questionColumns)

	rows := []models.QuestionDB{}
	err := r.db.SelectContext(ctx, &rows, query)
	logQuery(query, nil, err)
	return rows, err
}

// Exists reports whether the question exists and belongs to the caller.
func (r *QuestionReadRepository) Exists(ctx context.Context, id, userID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM questions WHERE id = $1 AND user_id = $2)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, id, userID)
	logQuery(query, []any{id, userID}, err)
	return exists, err
}

// Owner returns the owning user id of a question.
func (r *QuestionReadRepository) Owner(ctx context.Context, id string) (string, error) {
	const query = `SELECT user_id FROM questions WHERE id = $1`

	var owner string
	err := r.db.GetContext(ctx, &owner, query, id)
	logQuery(query, []any{id}, err)
	return owner, err
}

// QuestionWriteRepository handles question write operations. Updates
// and deletes are scoped to the owning user.
type QuestionWriteRepository struct {
	db *sqlx.DB
}

func NewQuestionWriteRepository(db *sqlx.DB) *QuestionWriteRepository {
	return &QuestionWriteRepository{db: db}
}

// Create inserts a question owned by the caller. Omitted optionals get
// their defaults: showUsername true, category "QUESTION", empty
// attachments.
func (r *QuestionWriteRepository) Create(ctx context.Context, userID string, a models.CreateQuestionArgs) (*models.QuestionDB, error) {
	query := fmt.Sprintf(`
		INSERT INTO questions (id, user_id, title, content, attachments, show_username, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING %s
	`, questionColumns)

	attachments := a.Attachments
	if attachments == nil {
		attachments = models.StringSlice{}
	}
	showUsername := models.DefaultShowUsername
	if a.ShowUsername.Valid {
		showUsername = a.ShowUsername.Value
	}
	category := models.DefaultCategory
	if a.Category.Valid {
		category = a.Category.Value
	}

	args := []any{uuid.New().String(), userID, a.Title, a.Content, attachments, showUsername, category}

	var row models.QuestionDB
	err := r.db.GetContext(ctx, &row, query, args...)
	logQuery(query, args, err)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Update applies a partial patch to the caller's question. The owner
// filter is baked into the predicate; sql.ErrNoRows signals a missing
// or foreign row.
func (r *QuestionWriteRepository) Update(ctx context.Context, id, userID string, a models.UpdateQuestionArgs) (*models.QuestionDB, error) {
	p := &patch{}
	if a.Title.Set {
		p.set("title", a.Title.Arg())
	}
	if a.Content.Set {
		p.set("content", a.Content.Arg())
	}
	if a.Attachments.Set {
		p.set("attachments", a.Attachments.Arg())
	}
	if a.ShowUsername.Set {
		p.set("show_username", a.ShowUsername.Arg())
	}
	if a.Category.Set {
		p.set("category", a.Category.Arg())
	}
	p.expr("updated_at = NOW()")

	query := fmt.Sprintf(`
		UPDATE questions
		SET %s
		WHERE id = $%d AND user_id = $%d
		RETURNING %s
	`, p.setClause(), len(p.args)+1, len(p.args)+2, questionColumns)
	args := append(p.args, id, userID)

	var row models.QuestionDB
	err := r.db.GetContext(ctx, &row, query, args...)
	logQuery(query, args, err)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Delete removes the caller's question. Non-owner deletes match zero
// rows and report false.
func (r *QuestionWriteRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	const query = `DELETE FROM questions WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	var affected int64
	if res != nil {
		affected, _ = res.RowsAffected()
	}
	logQuery(query, []any{id, userID}, err)
	return affected > 0, err
}
