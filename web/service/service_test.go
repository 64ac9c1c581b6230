package service

import (
	"path/filepath"
	"testing"

	"github.com/eventum/eventum/database"

	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) {
	t.Helper()
	require.NoError(t, database.InitDB(filepath.Join(t.TempDir(), "service.db")))
	t.Cleanup(func() { _ = database.CloseDB() })
}

func strPtr(s string) *string { return &s }
