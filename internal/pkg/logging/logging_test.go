package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyWriterRollsByDay(t *testing.T) {
	dir := t.TempDir()
	w, err := NewDailyWriter(dir)
	require.NoError(t, err)

	day1 := time.Date(2025, 3, 9, 23, 59, 0, 0, time.UTC)
	w.now = func() time.Time { return day1 }
	_, err = w.Write([]byte("first\n"))
	require.NoError(t, err)

	w.now = func() time.Time { return day1.Add(2 * time.Minute) }
	_, err = w.Write([]byte("second\n"))
	require.NoError(t, err)

	b1, err := os.ReadFile(filepath.Join(dir, "stdout_3-9-25.log"))
	require.NoError(t, err)
	b2, err := os.ReadFile(filepath.Join(dir, "stdout_3-10-25.log"))
	require.NoError(t, err)
	assert.Equal(t, "first\n", string(b1))
	assert.Equal(t, "second\n", string(b2))
}

func TestNewWritesToFile(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(dir, false)
	require.NoError(t, err)
	logger.Info("hello")
	_ = logger.Sync()

	b, err := os.ReadFile(filepath.Join(dir, DailyFilename(time.Now())))
	require.NoError(t, err)
	assert.Contains(t, string(b), "hello")
}
