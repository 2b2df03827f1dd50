package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/qa-resolver/internal/models"
)

// ProfileReadRepository handles user profile read operations.
type ProfileReadRepository struct {
	db *sqlx.DB
}

func NewProfileReadRepository(db *sqlx.DB) *ProfileReadRepository {
	return &ProfileReadRepository{db: db}
}

// List returns up to 100 profiles ordered by name.
func (r *ProfileReadRepository) List(ctx context.Context) ([]models.UserProfileDB, error) {
	const query = `
		SELECT id, name, age, bio, instruments
		FROM user_profiles
		ORDER BY name ASC
		LIMIT 100
	`

	rows := []models.UserProfileDB{}
	err := r.db.SelectContext(ctx, &rows, query)
	logQuery(query, nil, err)
	return rows, err
}

// Exists reports whether a profile exists for the given subject.
func (r *ProfileReadRepository) Exists(ctx context.Context, id string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM user_profiles WHERE id = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, id)
	logQuery(query, []any{id}, err)
	return exists, err
}

// ProfileWriteRepository handles user profile write operations. The row
// key is always the authenticated subject; callers never supply it.
type ProfileWriteRepository struct {
	db *sqlx.DB
}

func NewProfileWriteRepository(db *sqlx.DB) *ProfileWriteRepository {
	return &ProfileWriteRepository{db: db}
}

// Upsert creates or overwrites the caller's profile. Create is an
// upsert keyed by identity, so repeated creates never duplicate.
func (r *ProfileWriteRepository) Upsert(ctx context.Context, id string, a models.CreateUserProfileArgs) (*models.UserProfileDB, error) {
	const query = `
		INSERT INTO user_profiles (id, name, age, bio, instruments)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    age = EXCLUDED.age,
		    bio = EXCLUDED.bio,
		    instruments = EXCLUDED.instruments
		RETURNING id, name, age, bio, instruments
	`

	if a.Instruments == nil {
		a.Instruments = models.StringSlice{}
	}
	args := []any{id, a.Name, a.Age, a.Bio.Ptr(), a.Instruments}

	var row models.UserProfileDB
	err := r.db.GetContext(ctx, &row, query, args...)
	logQuery(query, args, err)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Update applies a partial patch to the caller's profile.
func (r *ProfileWriteRepository) Update(ctx context.Context, id string, a models.UpdateUserProfileArgs) (*models.UserProfileDB, error) {
	p := &patch{}
	if a.Name.Set {
		p.set("name", a.Name.Arg())
	}
	if a.Age.Set {
		p.set("age", a.Age.Arg())
	}
	if a.Bio.Set {
		p.set("bio", a.Bio.Arg())
	}
	if a.Instruments.Set {
		p.set("instruments", a.Instruments.Arg())
	}

	var row models.UserProfileDB

	if p.empty() {
		const query = `SELECT id, name, age, bio, instruments FROM user_profiles WHERE id = $1`
		err := r.db.GetContext(ctx, &row, query, id)
		logQuery(query, []any{id}, err)
		if err != nil {
			return nil, err
		}
		return &row, nil
	}

	query := fmt.Sprintf(`
		UPDATE user_profiles
		SET %s
		WHERE id = $%d
		RETURNING id, name, age, bio, instruments
	`, p.setClause(), len(p.args)+1)
	args := append(p.args, id)

	err := r.db.GetContext(ctx, &row, query, args...)
	logQuery(query, args, err)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Delete removes the caller's profile. Returns false when no row was
// removed; never errors on a missing row.
func (r *ProfileWriteRepository) Delete(ctx context.Context, id string) (bool, error) {
	const query = `DELETE FROM user_profiles WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	var affected int64
	if res != nil {
		affected, _ = res.RowsAffected()
	}
	logQuery(query, []any{id}, err)
	return affected > 0, err
}
