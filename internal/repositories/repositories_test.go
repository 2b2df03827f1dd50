package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

// newMockDB returns a sqlx handle backed by sqlmock.
func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func TestPatch_Building(t *testing.T) {
	p := &patch{}
	assert.True(t, p.empty())

	p.set("name", "Alice")
	p.set("bio", nil)
	p.expr("updated_at = NOW()")

	assert.False(t, p.empty())
	assert.Equal(t, "name = $1, bio = $2, updated_at = NOW()", p.setClause())
	assert.Equal(t, []any{"Alice", nil}, p.args)
}
