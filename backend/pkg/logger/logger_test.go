package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_FallsBackWhenUninitialized(t *testing.T) {
	Logger = nil
	assert.NotNil(t, Get())
}

func TestInit_WritesToRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "linkedinsight.log")

	require.NoError(t, Init("production", path))
	t.Cleanup(func() { Logger = nil })

	Get().Info("hello from test")
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
	assert.Contains(t, string(data), `"timestamp"`)
}
