package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/qa-resolver/internal/models"
)

// ArtistReadRepository handles artist read operations.
type ArtistReadRepository struct {
	db *sqlx.DB
}

func NewArtistReadRepository(db *sqlx.DB) *ArtistReadRepository {
	return &ArtistReadRepository{db: db}
}

// List returns up to 50 artists ordered by name.
func (r *ArtistReadRepository) List(ctx context.Context) ([]models.ArtistDB, error) {
	const query = `
		SELECT id, name, description
		FROM artists
		ORDER BY name ASC
		LIMIT 50
	`

	rows := []models.ArtistDB{}
	err := r.db.SelectContext(ctx, &rows, query)
	logQuery(query, nil, err)
	return rows, err
}

// ArtistWriteRepository handles artist write operations. Artists have
// no owner column, so writes are not identity-scoped.
type ArtistWriteRepository struct {
	db *sqlx.DB
}

func NewArtistWriteRepository(db *sqlx.DB) *ArtistWriteRepository {
	return &ArtistWriteRepository{db: db}
}

// Create inserts a new artist with a generated id.
func (r *ArtistWriteRepository) Create(ctx context.Context, a models.CreateArtistArgs) (*models.ArtistDB, error) {
	const query = `
		INSERT INTO artists (id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, name, description
	`

	args := []any{uuid.New().String(), a.Name, a.Description.Ptr()}

	var row models.ArtistDB
	err := r.db.GetContext(ctx, &row, query, args...)
	logQuery(query, args, err)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Update applies a partial patch to an artist. Returns sql.ErrNoRows
// when the artist does not exist.
func (r *ArtistWriteRepository) Update(ctx context.Context, a models.UpdateArtistArgs) (*models.ArtistDB, error) {
	p := &patch{}
	if a.Name.Set {
		p.set("name", a.Name.Arg())
	}
	if a.Description.Set {
		p.set("description", a.Description.Arg())
	}

	var row models.ArtistDB

	if p.empty() {
		const query = `SELECT id, name, description FROM artists WHERE id = $1`
		err := r.db.GetContext(ctx, &row, query, a.ID)
		logQuery(query, []any{a.ID}, err)
		if err != nil {
			return nil, err
		}
		return &row, nil
	}

	query := fmt.Sprintf(`
		UPDATE artists
		SET %s
		WHERE id = $%d
		RETURNING id, name, description
	`, p.setClause(), len(p.args)+1)
	args := append(p.args, a.ID)

	err := r.db.GetContext(ctx, &row, query, args...)
	logQuery(query, args, err)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Delete removes an artist by id.
func (r *ArtistWriteRepository) Delete(ctx context.Context, id string) (bool, error) {
	const query = `DELETE FROM artists WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	var affected int64
	if res != nil {
		affected, _ = res.RowsAffected()
	}
	logQuery(query, []any{id}, err)
	return affected > 0, err
}
