package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/qa-resolver/internal/models"
)

// LikeArtistReadRepository handles like read operations.
type LikeArtistReadRepository struct {
	db *sqlx.DB
}

func NewLikeArtistReadRepository(db *sqlx.DB) *LikeArtistReadRepository {
	return &LikeArtistReadRepository{db: db}
}

// List returns up to 100 likes.
func (r *LikeArtistReadRepository) List(ctx context.Context) ([]models.LikeArtistDB, error) {
	const query = `
		SELECT id, user_id, artist_id
		FROM like_artists
		LIMIT 100
	`

	rows := []models.LikeArtistDB{}
	err := r.db.SelectContext(ctx, &rows, query)
	logQuery(query, nil, err)
	return rows, err
}

// LikeArtistWriteRepository handles like write operations.
type LikeArtistWriteRepository struct {
	db *sqlx.DB
}

func NewLikeArtistWriteRepository(db *sqlx.DB) *LikeArtistWriteRepository {
	return &LikeArtistWriteRepository{db: db}
}

// Create inserts a like owned by the caller.
func (r *LikeArtistWriteRepository) Create(ctx context.Context, userID string, a models.CreateLikeArtistArgs) (*models.LikeArtistDB, error) {
	const query = `
		INSERT INTO like_artists (id, user_id, artist_id)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, artist_id
	`

	args := []any{uuid.New().String(), userID, a.ArtistID}

	var row models.LikeArtistDB
	err := r.db.GetContext(ctx, &row, query, args...)
	logQuery(query, args, err)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Delete removes a like only when it belongs to the caller. A
// non-owner's delete matches zero rows and reports false.
func (r *LikeArtistWriteRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	const query = `DELETE FROM like_artists WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	var affected int64
	if res != nil {
		affected, _ = res.RowsAffected()
	}
	logQuery(query, []any{id, userID}, err)
	return affected > 0, err
}
