package assembler

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/conneroisu/monoforge/internal/config"
	forgeerrors "github.com/conneroisu/monoforge/internal/errors"
	"github.com/conneroisu/monoforge/internal/orm"
	"github.com/conneroisu/monoforge/internal/registry"
)

// packageJSON is the root manifest layout. Field order here fixes the key
// order in the generated file.
type packageJSON struct {
	Name            string            `json:"name"`
	Version         string            `json:"version,omitempty"`
	Private         bool              `json:"private"`
	Workspaces      []string          `json:"workspaces,omitempty"`
	Scripts         map[string]string `json:"scripts,omitempty"`
	Dependencies    map[string]string `json:"dependencies,omitempty"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`
}

// tsConfig is the root tsconfig layout with one project reference per
// generated app and package.
type tsConfig struct {
	CompilerOptions map[string]interface{} `json:"compilerOptions"`
	Files           []string               `json:"files"`
	References      []tsReference          `json:"references,omitempty"`
}

type tsReference struct {
	Path string `json:"path"`
}

func writeRootPackageJSON(root string, opts config.Options, hasApps, hasPackages bool) error {
	var workspaces []string
	if hasApps {
		workspaces = append(workspaces, "apps/*")
	}
	if hasPackages {
		workspaces = append(workspaces, "packages/*")
	}

	scripts := map[string]string{
		"dev":   "bun run --filter '*' dev",
		"build": "bun run --filter '*' build",
	}

	devDeps := map[string]string{
		"typescript": "^5.5.4",
	}

	switch opts.Linter {
	case config.LinterESLint:
		scripts["lint"] = "eslint ."
		scripts["format"] = "prettier --write ."
		devDeps["eslint"] = "^9.7.0"
		devDeps["prettier"] = "^3.3.3"
		devDeps["typescript-eslint"] = "^8.0.0"
	default:
		scripts["lint"] = "biome check ."
		scripts["format"] = "biome format --write ."
		devDeps["@biomejs/biome"] = "^1.8.3"
	}

	if opts.ORM.Enabled() {
		filter := fmt.Sprintf("bun run --filter '@%s/db'", opts.ProjectName)
		scripts["db:generate"] = filter + " db:generate"
		scripts["db:push"] = filter + " db:push"
		scripts["db:seed"] = filter + " db:seed"
		if opts.ORM.Database != config.DatabaseSQLite {
			scripts["db:up"] = "docker compose -f " + orm.ComposeFileName + " up -d"
			scripts["db:down"] = "docker compose -f " + orm.ComposeFileName + " down"
		}
	}

	manifest := packageJSON{
		Name:            opts.ProjectName,
		Version:         "0.1.0",
		Private:         true,
		Workspaces:      workspaces,
		Scripts:         scripts,
		DevDependencies: devDeps,
	}

	return writeJSON(filepath.Join(root, "package.json"), manifest)
}

func writeRootTSConfig(root string, apps, packages []registry.Resolved, ormEnabled bool) error {
	var refs []tsReference
	for _, app := range apps {
		refs = append(refs, tsReference{Path: "apps/" + app.Name})
	}
	for _, pkg := range packages {
		refs = append(refs, tsReference{Path: "packages/" + pkg.Name})
	}
	if ormEnabled {
		refs = append(refs, tsReference{Path: "packages/db"})
	}

	cfg := tsConfig{
		CompilerOptions: map[string]interface{}{
			"target":                           "ES2022",
			"module":                           "ESNext",
			"moduleResolution":                 "Bundler",
			"strict":                           true,
			"skipLibCheck":                     true,
			"esModuleInterop":                  true,
			"resolveJsonModule":                true,
			"forceConsistentCasingInFileNames": true,
		},
		Files:      []string{},
		References: refs,
	}

	return writeJSON(filepath.Join(root, "tsconfig.json"), cfg)
}

// biomeConfig is written verbatim for the biome linter choice.
const biomeConfig = `{
  "$schema": "https://biomejs.dev/schemas/1.8.3/schema.json",
  "organizeImports": {
    "enabled": true
  },
  "files": {
    "ignore": ["node_modules", "dist", ".next", "build"]
  },
  "linter": {
    "enabled": true,
    "rules": {
      "recommended": true
    }
  },
  "formatter": {
    "enabled": true,
    "indentStyle": "space",
    "indentWidth": 2
  }
}
`

func writeLintConfig(root string, linter config.Linter) error {
	if linter == config.LinterESLint {
		eslint := map[string]interface{}{
			"root": true,
			"env":  map[string]bool{"browser": true, "es2022": true, "node": true},
			"extends": []string{
				"eslint:recommended",
				"plugin:@typescript-eslint/recommended",
			},
			"parser":         "@typescript-eslint/parser",
			"plugins":        []string{"@typescript-eslint"},
			"ignorePatterns": []string{"node_modules", "dist", ".next", "build"},
		}
		if err := writeJSON(filepath.Join(root, ".eslintrc.json"), eslint); err != nil {
			return err
		}

		prettier := map[string]interface{}{
			"semi":        true,
			"singleQuote": false,
			"tabWidth":    2,
		}

		return writeJSON(filepath.Join(root, ".prettierrc"), prettier)
	}

	if err := os.WriteFile(filepath.Join(root, "biome.json"), []byte(biomeConfig), 0644); err != nil {
		return forgeerrors.NewIOError("WRITE_FAILED", "failed to write biome.json", err)
	}

	return nil
}

func writeGitignore(root string, apps []registry.Resolved) error {
	var b strings.Builder
	b.WriteString(`# Dependencies
node_modules/

# Build output
dist/

# Environment
.env
.env.local

# Logs
*.log

# OS
.DS_Store
`)

	templates := make(map[string]bool, len(apps))
	for _, app := range apps {
		templates[app.Template] = true
	}

	if templates["nextjs"] || templates["nextjs-solito"] {
		b.WriteString("\n# Next.js\n.next/\nout/\n")
	}
	if templates["remix"] || templates["react-router"] {
		b.WriteString("\n# Remix / React Router\nbuild/\n.cache/\n")
	}
	if templates["react-native-expo"] {
		b.WriteString("\n# Expo\n.expo/\n")
	}

	if err := os.WriteFile(filepath.Join(root, ".gitignore"), []byte(b.String()), 0644); err != nil {
		return forgeerrors.NewIOError("WRITE_FAILED", "failed to write .gitignore", err)
	}

	return nil
}

// rewritePackageJSON renames a generated workspace member to its scoped name
// and links the given workspace dependencies. Unknown manifest fields are
// preserved.
func rewritePackageJSON(dir, projectName, name string, deps []string) error {
	path := filepath.Join(dir, "package.json")

	data, err := os.ReadFile(path)
	if err != nil {
		return forgeerrors.NewIOError("READ_FAILED", "failed to read package.json", err).WithPath(path)
	}

	var manifest map[string]interface{}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return forgeerrors.NewIOError("PARSE_FAILED", "failed to parse package.json", err).WithPath(path)
	}

	manifest["name"] = fmt.Sprintf("@%s/%s", projectName, name)

	if len(deps) > 0 {
		dependencies, _ := manifest["dependencies"].(map[string]interface{})
		if dependencies == nil {
			dependencies = make(map[string]interface{})
		}
		for _, dep := range deps {
			dependencies[fmt.Sprintf("@%s/%s", projectName, dep)] = "workspace:*"
		}
		manifest["dependencies"] = dependencies
	}

	return writeJSON(path, manifest)
}

func writeJSON(path string, value interface{}) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return forgeerrors.NewInternalError("MARSHAL_FAILED", "failed to marshal "+filepath.Base(path), err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return forgeerrors.NewIOError("WRITE_FAILED", "failed to write "+filepath.Base(path), err).WithPath(path)
	}

	return nil
}
