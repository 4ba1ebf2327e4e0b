package orm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/monoforge/internal/config"
)

func decodeCompose(t *testing.T, root string) ComposeFile {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(root, ComposeFileName))
	require.NoError(t, err)

	var compose ComposeFile
	require.NoError(t, yaml.Unmarshal(data, &compose))
	return compose
}

func TestWriteComposePostgres(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, WriteCompose(root, "myapp", config.DatabasePostgres))

	compose := decodeCompose(t, root)
	service, ok := compose.Services["postgres"]
	require.True(t, ok)

	assert.Equal(t, "postgres:16-alpine", service.Image)
	assert.Equal(t, []string{"5432:5432"}, service.Ports)
	assert.Equal(t, "myapp", service.Environment["POSTGRES_DB"])
	assert.Contains(t, compose.Volumes, "db_data")
}

func TestWriteComposeVolumesRenderBare(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, WriteCompose(root, "myapp", config.DatabasePostgres))

	data, err := os.ReadFile(filepath.Join(root, ComposeFileName))
	require.NoError(t, err)

	raw := string(data)
	assert.Contains(t, raw, "db_data:")
	assert.NotContains(t, raw, "null", "named volumes render without an explicit value")
}

func TestWriteComposeMySQL(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, WriteCompose(root, "myapp", config.DatabaseMySQL))

	compose := decodeCompose(t, root)
	service, ok := compose.Services["mysql"]
	require.True(t, ok)

	assert.Equal(t, "mysql:8.4", service.Image)
	assert.Equal(t, "myapp", service.Environment["MYSQL_DATABASE"])
	assert.Equal(t, []string{"db_data:/var/lib/mysql"}, service.Volumes)
}

func TestWriteComposeSQLite(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, WriteCompose(root, "myapp", config.DatabaseSQLite))

	assert.NoFileExists(t, filepath.Join(root, ComposeFileName),
		"sqlite is file-backed and needs no compose file")
}
