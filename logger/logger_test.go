package logger

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingBeforeInitDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() { Info("logger not initialised yet") })
}

func TestGetLogsFiltersByLevel(t *testing.T) {
	InitLogger(logging.DEBUG, false)

	Debugf("debug %d", 1)
	Infof("info %d", 2)
	Warningf("warning %d", 3)
	Errorf("error %d", 4)

	logs := GetLogs(10, "WARNING")
	if assert.GreaterOrEqual(t, len(logs), 2) {
		assert.True(t, strings.HasSuffix(logs[0], "error 4"), logs[0])
		assert.True(t, strings.HasSuffix(logs[1], "warning 3"), logs[1])
	}
	for _, l := range logs {
		assert.NotContains(t, l, "debug 1")
		assert.NotContains(t, l, "info 2")
	}

	assert.Len(t, GetLogs(1, "DEBUG"), 1)
}

func TestFileBackendAndCloseLogger(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("EVENTUM_LOG_FOLDER", dir)
	t.Cleanup(func() { InitLogger(logging.INFO, false) })

	InitLogger(logging.INFO, true)
	Notice("written to file")

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			CloseLogger()
		}()
		go func() {
			defer wg.Done()
			InitLogger(logging.INFO, true)
		}()
	}
	wg.Wait()
	CloseLogger()
	assert.NotPanics(t, CloseLogger)
}
