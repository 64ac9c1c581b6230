package job

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/eventum/eventum/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckpointJobWithoutDB(t *testing.T) {
	require.NoError(t, database.CloseDB())
	assert.NotPanics(t, func() { NewCheckpointJob().Run() })
}

func TestCheckpointJob(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "job.db")
	require.NoError(t, database.InitDB(dbPath))
	t.Cleanup(func() { _ = database.CloseDB() })

	NewCheckpointJob().Run()

	f, err := os.Open(dbPath)
	require.NoError(t, err)
	defer f.Close()
	ok, err := database.IsSQLiteDB(f)
	require.NoError(t, err)
	assert.True(t, ok)
}
