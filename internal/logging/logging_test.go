package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/air846/personal-blog-system/internal/logging"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"info":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		" warn ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, logging.ParseLevel(in), in)
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, logging.Validate("warn"))
	assert.NoError(t, logging.Validate(""))
	err := logging.Validate("loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), logging.LevelNames())

	assert.NoError(t, logging.ValidateFormat("json"))
	assert.Error(t, logging.ValidateFormat("xml"))
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "json", Output: &buf})
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept", "path", "/article/1")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, "/article/1", rec["path"])
}

func TestNewRejectsBadOptions(t *testing.T) {
	_, err := logging.New(logging.Options{Level: "chatty"})
	assert.Error(t, err)
	_, err = logging.New(logging.Options{Format: "yaml"})
	assert.Error(t, err)
}

func TestSetupSetsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	_, err := logging.Setup(logging.Options{Level: "info", Output: &buf})
	require.NoError(t, err)

	slog.Info("hello", "k", "v")
	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "k=v")
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "blog.log")
	f, err := logging.OpenFile(path)
	require.NoError(t, err)
	_, err = f.WriteString("line\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	f, err = logging.OpenFile(path)
	require.NoError(t, err)
	_, err = f.WriteString("again\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line\nagain\n", string(data))
}
