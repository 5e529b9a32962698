package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"cli"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	setArgs(t)
	cfg := LoadConfig()

	assert.Equal(t, "http://localhost:8000/api/v1", cfg.ServerEndpointAddr)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "presence.db", cfg.DatabasePath)
	assert.Nil(t, cfg.CaptureCommand)
}

func TestLoadConfig_JsonOverlaysDefaults(t *testing.T) {
	path := writeConfigFile(t, `{
  "server_endpoint_addr": "https://presence.example.edu/api/v1",
  "request_timeout": "10s",
  "database_path": "/tmp/p.db",
  "capture_command": "ffmpeg -f v4l2 -i /dev/video0"
}`)
	setArgs(t, "-c", path)

	cfg := LoadConfig()
	assert.Equal(t, "https://presence.example.edu/api/v1", cfg.ServerEndpointAddr)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "/tmp/p.db", cfg.DatabasePath)
	assert.Equal(t, []string{"ffmpeg", "-f", "v4l2", "-i", "/dev/video0"}, cfg.CaptureCommand)
}

func TestLoadConfig_PartialJsonKeepsDefaults(t *testing.T) {
	path := writeConfigFile(t, `{"database_path": "/tmp/p.db"}`)
	setArgs(t, "-c", path)

	cfg := LoadConfig()
	assert.Equal(t, "http://localhost:8000/api/v1", cfg.ServerEndpointAddr)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "/tmp/p.db", cfg.DatabasePath)
}

func TestLoadConfig_FlagsWinOverJson(t *testing.T) {
	path := writeConfigFile(t, `{"server_endpoint_addr": "https://from-json", "request_timeout": "10s"}`)
	setArgs(t, "-c", path, "-a", "https://from-flag", "-t", "5")

	cfg := LoadConfig()
	assert.Equal(t, "https://from-flag", cfg.ServerEndpointAddr)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_CaptureFlag(t *testing.T) {
	setArgs(t, "-capture", "ffmpeg -i /dev/video1")

	cfg := LoadConfig()
	assert.Equal(t, []string{"ffmpeg", "-i", "/dev/video1"}, cfg.CaptureCommand)
}

func TestLoadConfig_MissingJsonFilePanics(t *testing.T) {
	setArgs(t, "-c", "/nonexistent/conf.json")
	assert.Panics(t, func() { LoadConfig() })
}
