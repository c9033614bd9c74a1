package configuration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.dev.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "mongodb://localhost:27017", config.Mongo.Uri)
	assert.Equal(t, "userdir", config.Mongo.Database)
	assert.Equal(t, "users", config.Mongo.UsersCollection)
	assert.False(t, config.Mongo.Reset)
	assert.Equal(t, 1339, config.Server.AppPort)
	assert.Equal(t, 30*time.Second, config.Server.ShutdownTimeout)
	assert.Equal(t, "info", config.Logging.Level)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `{
		"mongo": {"uri": "mongodb://db:27017", "database": "directory", "reset": true},
		"server": {"app_port": 8080, "allow_origins": ["https://example.com"]},
		"logging": {"level": "debug"}
	}`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "mongodb://db:27017", config.Mongo.Uri)
	assert.Equal(t, "directory", config.Mongo.Database)
	assert.True(t, config.Mongo.Reset)
	assert.Equal(t, 8080, config.Server.AppPort)
	assert.Equal(t, []string{"https://example.com"}, config.Server.AllowOrigins)
	assert.Equal(t, "debug", config.Logging.Level)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `{"mongo": {"uri": "mongodb://file:27017"}}`)
	t.Setenv("USERDIR_MONGO_URI", "mongodb://env:27017")
	t.Setenv("USERDIR_SERVER_APP_PORT", "9000")

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "mongodb://env:27017", config.Mongo.Uri)
	assert.Equal(t, 9000, config.Server.AppPort)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, `{"server": {"app_port": 70000}}`))
	assert.ErrorContains(t, err, "server.app_port")

	_, err = LoadConfig(writeConfig(t, `{"logging": {"level": "loud"}}`))
	assert.ErrorContains(t, err, "logging.level")
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LoggingConfig{Level: "debug", Development: true})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(-1))

	_, err = NewLogger(LoggingConfig{Level: "loud"})
	assert.Error(t, err)
}
