package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSQL(t *testing.T) {
	stmts := splitSQL("-- header\nCREATE TABLE a (id INT);\n\nCREATE INDEX b ON a (id);\n")
	assert.Equal(t, []string{"CREATE TABLE a (id INT)", "CREATE INDEX b ON a (id)"}, stmts)
}

func TestExtractTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.sql")
	require.NoError(t, os.WriteFile(path, []byte("create table if not exists suggestion_history (id uuid);"), 0o600))

	tables, err := extractTables(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"suggestion_history"}, tables)
}
