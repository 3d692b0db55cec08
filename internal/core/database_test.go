// AngelaMos | 2026
// database_test.go

package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPgErrorClassification(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	foreignKey := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"})
	plain := errors.New("connection reset")

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUniqueViolation(foreignKey))
	assert.False(t, IsUniqueViolation(plain))

	assert.True(t, IsForeignKeyViolation(foreignKey))
	assert.False(t, IsForeignKeyViolation(unique))
	assert.False(t, IsForeignKeyViolation(plain))
}
