package inspect

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// seedDatabase creates a SQLite file and runs the given statements against it
func seedDatabase(t *testing.T, path string, statements ...string) {
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err)

	for _, stmt := range statements {
		require.NoError(t, gdb.Exec(stmt).Error)
	}

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func TestDumpNoTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	// Force a write so the file exists, without creating any table
	seedDatabase(t, path, `PRAGMA user_version = 1`)

	var out bytes.Buffer
	err := New(&out).DumpFile(path)
	require.NoError(t, err)

	assert.Equal(t, "No tables found in database.\n", out.String())
}

func TestDumpEmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.db")
	seedDatabase(t, path,
		`CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT, quantity INTEGER)`,
	)

	var out bytes.Buffer
	err := New(&out).DumpFile(path)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "--- Table: items ---")
	assert.Contains(t, out.String(), "(Empty)")
	assert.NotContains(t, out.String(), "id | name | quantity")
}

func TestDumpPopulatedTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.db")
	seedDatabase(t, path,
		`CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT, quantity INTEGER)`,
		`INSERT INTO items (id, name, quantity) VALUES (1, 'Test Item', 10)`,
		`INSERT INTO items (id, name, quantity) VALUES (2, 'Second', 20)`,
	)

	var out bytes.Buffer
	err := New(&out).DumpFile(path)
	require.NoError(t, err)

	dump := out.String()
	assert.Contains(t, dump, "--- Table: items ---")
	assert.Contains(t, dump, "id | name | quantity")
	assert.Contains(t, dump, "1 | Test Item | 10")
	assert.Contains(t, dump, "2 | Second | 20")
	assert.NotContains(t, dump, "(Empty)")
}

func TestDumpNullValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.db")
	seedDatabase(t, path,
		`CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT)`,
		`INSERT INTO items (id, name) VALUES (1, NULL)`,
	)

	var out bytes.Buffer
	err := New(&out).DumpFile(path)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "1 | NULL")
}

func TestDumpMultipleTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.db")
	seedDatabase(t, path,
		`CREATE TABLE first (id INTEGER PRIMARY KEY)`,
		`CREATE TABLE second (id INTEGER PRIMARY KEY)`,
		`INSERT INTO first (id) VALUES (7)`,
	)

	var out bytes.Buffer
	err := New(&out).DumpFile(path)
	require.NoError(t, err)

	dump := out.String()
	// Catalog order: first created, first printed
	firstIdx := bytes.Index(out.Bytes(), []byte("--- Table: first ---"))
	secondIdx := bytes.Index(out.Bytes(), []byte("--- Table: second ---"))
	require.GreaterOrEqual(t, firstIdx, 0)
	require.GreaterOrEqual(t, secondIdx, 0)
	assert.Less(t, firstIdx, secondIdx)
	assert.Contains(t, dump, "7")
	assert.Contains(t, dump, "(Empty)")
}

func TestDumpMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.db")

	var out bytes.Buffer
	err := New(&out).DumpFile(path)
	assert.Error(t, err)
}
