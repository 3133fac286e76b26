package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrationURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@localhost:5432/db", MigrationURL("postgres://u:p@localhost:5432/db"))
	assert.Equal(t, "pgx5://localhost/db?sslmode=disable", MigrationURL("postgresql://localhost/db?sslmode=disable"))
	assert.Equal(t, "pgx5://already", MigrationURL("pgx5://already"))
}
