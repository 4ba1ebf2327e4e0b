package assembler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/monoforge/internal/config"
	forgeerrors "github.com/conneroisu/monoforge/internal/errors"
	"github.com/conneroisu/monoforge/internal/logging"
	"github.com/conneroisu/monoforge/internal/registry"
)

func newTestAssembler() *Assembler {
	log := logging.NewLogger(&logging.Config{Level: logging.LevelError, Format: "text", Output: io.Discard})
	return New(registry.Default(), log)
}

func readJSON(t *testing.T, parts ...string) map[string]interface{} {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(parts...))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	return decoded
}

func readText(t *testing.T, parts ...string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(parts...))
	require.NoError(t, err)
	return string(data)
}

func depNames(t *testing.T, manifest map[string]interface{}) map[string]string {
	t.Helper()

	deps := map[string]string{}
	raw, _ := manifest["dependencies"].(map[string]interface{})
	for name, version := range raw {
		versionStr, ok := version.(string)
		require.True(t, ok)
		deps[name] = versionStr
	}
	return deps
}

func TestCreateMonorepo(t *testing.T) {
	t.Chdir(t.TempDir())

	opts := config.Options{
		ProjectName: "myapp",
		Apps:        []string{"web[react-vite]", "api[express]"},
		Packages:    []string{"[ui]", "[utils]"},
		Linter:      config.LinterBiome,
		ORM:         config.OrmSpec{Flavor: config.OrmPrisma, Database: config.DatabasePostgres},
	}
	require.NoError(t, newTestAssembler().CreateMonorepo(context.Background(), opts))

	t.Run("root manifest", func(t *testing.T) {
		manifest := readJSON(t, "myapp", "package.json")
		assert.Equal(t, "myapp", manifest["name"])
		assert.Equal(t, true, manifest["private"])

		workspaces, ok := manifest["workspaces"].([]interface{})
		require.True(t, ok)
		assert.ElementsMatch(t, []interface{}{"apps/*", "packages/*"}, workspaces)

		scripts, ok := manifest["scripts"].(map[string]interface{})
		require.True(t, ok)
		assert.Contains(t, scripts, "dev")
		assert.Contains(t, scripts, "lint")
		assert.Contains(t, scripts, "db:push")
		assert.Contains(t, scripts, "db:up")
	})

	t.Run("root config files", func(t *testing.T) {
		assert.FileExists(t, filepath.Join("myapp", "biome.json"))
		assert.NoFileExists(t, filepath.Join("myapp", ".eslintrc.json"))
		assert.FileExists(t, filepath.Join("myapp", ".gitignore"))
		assert.FileExists(t, filepath.Join("myapp", ".env.example"))

		tsconfig := readText(t, "myapp", "tsconfig.json")
		assert.Contains(t, tsconfig, "apps/web")
		assert.Contains(t, tsconfig, "apps/api")
		assert.Contains(t, tsconfig, "packages/ui")
		assert.Contains(t, tsconfig, "packages/db")
	})

	t.Run("database artifacts", func(t *testing.T) {
		assert.FileExists(t, filepath.Join("myapp", "docker-compose.dev.yml"))
		assert.Contains(t, readText(t, "myapp", "docker-compose.dev.yml"), "postgres:16-alpine")
		assert.FileExists(t, filepath.Join("myapp", "packages", "db", "prisma", "schema.prisma"))
	})

	t.Run("packages are scoped", func(t *testing.T) {
		ui := readJSON(t, "myapp", "packages", "ui", "package.json")
		assert.Equal(t, "@myapp/ui", ui["name"])

		utils := readJSON(t, "myapp", "packages", "utils", "package.json")
		assert.Equal(t, "@myapp/utils", utils["name"])
	})

	t.Run("backend app wired to orm", func(t *testing.T) {
		entry := readText(t, "myapp", "apps", "api", "src", "index.ts")
		assert.Contains(t, entry, `import { prisma } from "@myapp/db";`)
		assert.Contains(t, entry, `app.get("/api/users"`)

		manifest := readJSON(t, "myapp", "apps", "api", "package.json")
		assert.Equal(t, "@myapp/api", manifest["name"])

		deps := depNames(t, manifest)
		assert.Equal(t, "workspace:*", deps["@myapp/utils"])
		assert.Equal(t, "workspace:*", deps["@myapp/db"])
		assert.NotContains(t, deps, "@myapp/ui", "backend apps do not depend on web ui")
	})

	t.Run("frontend app wired to ui", func(t *testing.T) {
		entry := readText(t, "myapp", "apps", "web", "src", "App.tsx")
		assert.Contains(t, entry, `import { Button } from "@myapp/ui";`)

		deps := depNames(t, readJSON(t, "myapp", "apps", "web", "package.json"))
		assert.Equal(t, "workspace:*", deps["@myapp/ui"])
		assert.Equal(t, "workspace:*", deps["@myapp/utils"])
		assert.NotContains(t, deps, "@myapp/db", "frontend apps never link the db package")
	})
}

func TestCreateMonorepoLogsCarryProjectContext(t *testing.T) {
	t.Chdir(t.TempDir())

	var buf bytes.Buffer
	log := logging.NewLogger(&logging.Config{Level: logging.LevelInfo, Format: "json", Output: &buf})

	opts := config.Options{
		ProjectName: "logapp",
		Apps:        []string{"worker"},
		Linter:      config.LinterBiome,
	}
	require.NoError(t, New(registry.Default(), log).CreateMonorepo(context.Background(), opts))

	assert.Contains(t, buf.String(), `"project":"logapp"`, "create logs are scoped to the project")
}

func TestCreateMonorepoExistingDirectory(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.Mkdir("myapp", 0755))

	opts := config.Options{ProjectName: "myapp", Linter: config.LinterBiome}
	err := newTestAssembler().CreateMonorepo(context.Background(), opts)

	var fe *forgeerrors.ForgeError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "PROJECT_EXISTS", fe.Code)
}

func TestCreateMonorepoBlankAppsOnly(t *testing.T) {
	t.Chdir(t.TempDir())

	opts := config.Options{
		ProjectName: "svc",
		Apps:        []string{"worker"},
		Linter:      config.LinterBiome,
	}
	require.NoError(t, newTestAssembler().CreateMonorepo(context.Background(), opts))

	manifest := readJSON(t, "svc", "apps", "worker", "package.json")
	assert.Equal(t, "@svc/worker", manifest["name"])

	workspaces, ok := readJSON(t, "svc", "package.json")["workspaces"].([]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"apps/*"}, workspaces, "no packages directory without packages")
	assert.NoDirExists(t, filepath.Join("svc", "packages"))
}

func TestCreateMonorepoESLint(t *testing.T) {
	t.Chdir(t.TempDir())

	opts := config.Options{
		ProjectName: "lintapp",
		Apps:        []string{"web[react-vite]"},
		Linter:      config.LinterESLint,
	}
	require.NoError(t, newTestAssembler().CreateMonorepo(context.Background(), opts))

	assert.FileExists(t, filepath.Join("lintapp", ".eslintrc.json"))
	assert.FileExists(t, filepath.Join("lintapp", ".prettierrc"))
	assert.NoFileExists(t, filepath.Join("lintapp", "biome.json"))

	scripts, ok := readJSON(t, "lintapp", "package.json")["scripts"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "eslint .", scripts["lint"])
}

func TestCreateMonorepoGitignoreVariants(t *testing.T) {
	t.Chdir(t.TempDir())

	opts := config.Options{
		ProjectName: "nextapp",
		Apps:        []string{"web[nextjs]", "mobile[react-native-expo]"},
		Linter:      config.LinterBiome,
	}
	require.NoError(t, newTestAssembler().CreateMonorepo(context.Background(), opts))

	gitignore := readText(t, "nextapp", ".gitignore")
	assert.Contains(t, gitignore, "node_modules/")
	assert.Contains(t, gitignore, ".next/")
	assert.Contains(t, gitignore, ".expo/")
	assert.NotContains(t, gitignore, ".cache/", "remix ignores only appear for remix apps")
}

func TestCreateMonorepoSQLiteSkipsCompose(t *testing.T) {
	t.Chdir(t.TempDir())

	opts := config.Options{
		ProjectName: "liteapp",
		Apps:        []string{"api[hono]"},
		Linter:      config.LinterBiome,
		ORM:         config.OrmSpec{Flavor: config.OrmDrizzle, Database: config.DatabaseSQLite},
	}
	require.NoError(t, newTestAssembler().CreateMonorepo(context.Background(), opts))

	assert.NoFileExists(t, filepath.Join("liteapp", "docker-compose.dev.yml"))

	scripts, ok := readJSON(t, "liteapp", "package.json")["scripts"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, scripts, "db:push")
	assert.NotContains(t, scripts, "db:up", "no container scripts for sqlite")

	entry := readText(t, "liteapp", "apps", "api", "src", "index.ts")
	assert.Contains(t, entry, `import { db, users } from "@liteapp/db";`)
}

func TestWorkspaceDeps(t *testing.T) {
	packages := []registry.Resolved{
		{Name: "ui", Template: "ui", Category: "packages"},
		{Name: "ui-native", Template: "ui-native", Category: "packages"},
		{Name: "hooks", Template: "hooks", Category: "packages"},
		{Name: "utils", Template: "utils", Category: "packages"},
		{Name: "schemas", Template: "schemas", Category: "packages"},
	}

	tests := []struct {
		name string
		app  registry.Resolved
		orm  bool
		want []string
	}{
		{
			name: "frontend",
			app:  registry.Resolved{Name: "web", Template: "react-vite", Category: "frontend"},
			want: []string{"ui", "hooks", "utils", "schemas"},
		},
		{
			name: "native",
			app:  registry.Resolved{Name: "mobile", Template: "react-native-expo", Category: "native"},
			want: []string{"ui-native", "hooks", "utils", "schemas"},
		},
		{
			name: "backend without orm",
			app:  registry.Resolved{Name: "api", Template: "express", Category: "backend"},
			want: []string{"utils", "schemas"},
		},
		{
			name: "backend with orm",
			app:  registry.Resolved{Name: "api", Template: "express", Category: "backend"},
			orm:  true,
			want: []string{"utils", "schemas", "db"},
		},
		{
			name: "blank app",
			app:  registry.Resolved{Name: "worker", Template: "blank", Category: "blank"},
			want: []string{"utils", "schemas"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, workspaceDeps(tt.app, packages, tt.orm))
		})
	}
}
