package postgres

import (
	"io/fs"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Los montos no deben redondearse en la base: el driver en memoria conserva toda la precisión.
func TestMigrations_MontosSinEscalaFija(t *testing.T) {
	entries, err := fs.ReadDir(migrations, "migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	scaled := regexp.MustCompile(`(?i)(NUMERIC|DECIMAL)\s*\(`)
	for _, e := range entries {
		sql, err := migrations.ReadFile("migrations/" + e.Name())
		require.NoError(t, err)
		assert.False(t, scaled.Match(sql), "%s fija precisión/escala en una columna de montos", e.Name())
	}
}

func TestMigrations_OrdenPorNombre(t *testing.T) {
	entries, err := fs.ReadDir(migrations, "migrations")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(entries), 2)
	assert.Equal(t, "001_schema.sql", entries[0].Name())
	assert.Equal(t, "002_numeric_precision.sql", entries[1].Name())
}
