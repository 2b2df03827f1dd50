package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/sbilibin2017/qa-resolver/internal/models"
)

func setupPostgresContainer(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}

	container, err := tc.GenericContainer(context.Background(), tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)

	host, _ := container.Host(context.Background())
	port, _ := container.MappedPort(context.Background(), "5432")

	dsn := fmt.Sprintf("postgres://postgres:password@%s:%d/testdb?sslmode=disable", host, port.Int())

	var db *sqlx.DB
	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("pgx", dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	assert.NoError(t, err)

	schema := `
	CREATE TABLE IF NOT EXISTS user_profiles (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		age INTEGER NOT NULL,
		bio TEXT,
		instruments JSONB NOT NULL DEFAULT '[]'
	);

	CREATE TABLE IF NOT EXISTS questions (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		user_id TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		attachments JSONB NOT NULL DEFAULT '[]',
		show_username BOOLEAN NOT NULL DEFAULT TRUE,
		category TEXT NOT NULL DEFAULT 'QUESTION'
	);
	`
	_, err = db.Exec(schema)
	assert.NoError(t, err)

	teardown := func() {
		db.Close()
		container.Terminate(context.Background())
	}

	return db, teardown
}

func TestProfileWriteRepository_UpsertIdempotent(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	repo := NewProfileWriteRepository(db)
	ctx := context.Background()

	_, err := repo.Upsert(ctx, "sub-1", models.CreateUserProfileArgs{
		Name:        "Alice",
		Age:         30,
		Instruments: models.StringSlice{"guitar"},
	})
	assert.NoError(t, err)

	// A second create for the same subject overwrites the first row
	// instead of adding another.
	row, err := repo.Upsert(ctx, "sub-1", models.CreateUserProfileArgs{
		Name:        "Alice Cooper",
		Age:         31,
		Instruments: models.StringSlice{"guitar", "vocals"},
	})
	assert.NoError(t, err)
	assert.Equal(t, "Alice Cooper", row.Name)
	assert.Equal(t, 31, row.Age)

	var count int
	assert.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM user_profiles WHERE id = $1", "sub-1"))
	assert.Equal(t, 1, count)
}

func TestProfileWriteRepository_DisjointPatchesCompose(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	repo := NewProfileWriteRepository(db)
	ctx := context.Background()

	_, err := repo.Upsert(ctx, "sub-1", models.CreateUserProfileArgs{Name: "Alice", Age: 30})
	assert.NoError(t, err)

	// Two sequential patches over disjoint fields each leave the other's
	// fields alone.
	_, err = repo.Update(ctx, "sub-1", models.UpdateUserProfileArgs{
		Name: models.Some("Alice Cooper"),
	})
	assert.NoError(t, err)

	row, err := repo.Update(ctx, "sub-1", models.UpdateUserProfileArgs{
		Bio: models.Some("plays jazz"),
		Age: models.Some(31),
	})
	assert.NoError(t, err)

	assert.Equal(t, "Alice Cooper", row.Name)
	assert.Equal(t, 31, row.Age)
	assert.Equal(t, "plays jazz", *row.Bio)

	// Explicit null clears without touching anything else.
	row, err = repo.Update(ctx, "sub-1", models.UpdateUserProfileArgs{
		Bio: models.Null[string](),
	})
	assert.NoError(t, err)
	assert.Nil(t, row.Bio)
	assert.Equal(t, "Alice Cooper", row.Name)
}

func TestQuestionRepositories_OwnershipScope(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	writeRepo := NewQuestionWriteRepository(db)
	readRepo := NewQuestionReadRepository(db)
	ctx := context.Background()

	created, err := writeRepo.Create(ctx, "owner", models.CreateQuestionArgs{
		Title:   "Original title",
		Content: "Body",
	})
	assert.NoError(t, err)
	assert.Equal(t, "QUESTION", created.Category)
	assert.True(t, created.ShowUsername)

	t.Run("non-owner update is a no-op", func(t *testing.T) {
		_, err := writeRepo.Update(ctx, created.ID, "intruder", models.UpdateQuestionArgs{
			Title: models.Some("hijacked"),
		})
		assert.ErrorIs(t, err, sql.ErrNoRows)

		var title string
		assert.NoError(t, db.Get(&title, "SELECT title FROM questions WHERE id = $1", created.ID))
		assert.Equal(t, "Original title", title)
	})

	t.Run("non-owner delete is a no-op", func(t *testing.T) {
		ok, err := writeRepo.Delete(ctx, created.ID, "intruder")
		assert.NoError(t, err)
		assert.False(t, ok)

		exists, err := readRepo.Exists(ctx, created.ID, "owner")
		assert.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("owner update and delete succeed", func(t *testing.T) {
		row, err := writeRepo.Update(ctx, created.ID, "owner", models.UpdateQuestionArgs{
			Title: models.Some("Edited title"),
		})
		assert.NoError(t, err)
		assert.Equal(t, "Edited title", row.Title)
		assert.Equal(t, "Body", row.Content)

		ok, err := writeRepo.Delete(ctx, created.ID, "owner")
		assert.NoError(t, err)
		assert.True(t, ok)

		ok, err = writeRepo.Delete(ctx, created.ID, "owner")
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}
