package assembler

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/conneroisu/monoforge/internal/config"
	forgeerrors "github.com/conneroisu/monoforge/internal/errors"
	"github.com/conneroisu/monoforge/internal/orm"
	"github.com/conneroisu/monoforge/internal/registry"
)

// AddOptions holds the inputs for extending an existing monorepo.
type AddOptions struct {
	Apps     []string // raw name inputs, bracket notation allowed
	Packages []string
	ORM      config.OrmSpec
}

// AddToMonorepo re-validates the monorepo shape under root and runs the same
// per-app/per-package pipeline as CreateMonorepo against it.
func (a *Assembler) AddToMonorepo(ctx context.Context, root string, opts AddOptions) error {
	manifest, err := readRootManifest(root)
	if err != nil {
		return err
	}

	projectName, _ := manifest["name"].(string)
	if projectName == "" {
		projectName = filepath.Base(root)
	}

	apps, err := a.reg.ResolveAll(opts.Apps, registry.KindApps)
	if err != nil {
		return err
	}
	newPackages, err := a.reg.ResolveAll(opts.Packages, registry.KindPackages)
	if err != nil {
		return err
	}

	if opts.ORM.Enabled() {
		for _, pkg := range newPackages {
			if pkg.Name == "db" {
				return forgeerrors.NewValidationError("RESERVED_NAME",
					"package name 'db' is reserved when an ORM is configured")
			}
		}
	}

	for _, app := range apps {
		if err := ensureAbsent(filepath.Join(root, "apps", app.Name)); err != nil {
			return err
		}
	}
	for _, pkg := range newPackages {
		if err := ensureAbsent(filepath.Join(root, "packages", pkg.Name)); err != nil {
			return err
		}
	}

	manifestChanged := false
	if len(apps) > 0 {
		changed, err := ensureWorkspace(root, manifest, "apps")
		if err != nil {
			return err
		}
		manifestChanged = manifestChanged || changed
	}
	if len(newPackages) > 0 || opts.ORM.Enabled() {
		changed, err := ensureWorkspace(root, manifest, "packages")
		if err != nil {
			return err
		}
		manifestChanged = manifestChanged || changed
	}

	if opts.ORM.Enabled() {
		if _, err := os.Stat(filepath.Join(root, "packages", "db")); os.IsNotExist(err) {
			a.log.Info(ctx, "adding ORM setup", "flavor", string(opts.ORM.Flavor), "database", string(opts.ORM.Database))
			if err := orm.Setup(root, projectName, opts.ORM); err != nil {
				return err
			}
			if err := orm.WriteCompose(root, projectName, opts.ORM.Database); err != nil {
				return err
			}
			manifestChanged = ensureOrmScripts(manifest, projectName, opts.ORM) || manifestChanged
		}
	}

	if manifestChanged {
		if err := writeJSON(filepath.Join(root, "package.json"), manifest); err != nil {
			return err
		}
	}

	// UI injection and dependency matching see both the packages being added
	// and the ones already on disk.
	allPackages := append(a.existingPackages(root), newPackages...)

	for _, pkg := range newPackages {
		if err := a.materializePackage(ctx, root, pkg, projectName); err != nil {
			return err
		}
	}

	for _, app := range apps {
		if err := a.materializeApp(ctx, root, app, allPackages, config.Options{
			ProjectName: projectName,
			ORM:         opts.ORM,
		}); err != nil {
			return err
		}
	}

	return nil
}

// readRootManifest loads root/package.json and validates monorepo shape: the
// manifest must carry a workspaces array.
func readRootManifest(root string) (map[string]interface{}, error) {
	path := filepath.Join(root, "package.json")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, forgeerrors.NewValidationError("NOT_A_MONOREPO",
			fmt.Sprintf("no package.json found in %q: not a monorepo root", root))
	}

	var manifest map[string]interface{}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, forgeerrors.NewIOError("PARSE_FAILED", "failed to parse package.json", err).WithPath(path)
	}

	if _, ok := manifest["workspaces"].([]interface{}); !ok {
		return nil, forgeerrors.NewValidationError("NOT_A_MONOREPO",
			fmt.Sprintf("package.json in %q has no workspaces array: not a monorepo root", root))
	}

	return manifest, nil
}

// ensureWorkspace creates the apps/ or packages/ directory and its workspace
// glob when missing, reporting whether the manifest changed.
func ensureWorkspace(root string, manifest map[string]interface{}, dir string) (bool, error) {
	if err := os.MkdirAll(filepath.Join(root, dir), 0755); err != nil {
		return false, forgeerrors.NewIOError("MKDIR_FAILED", "failed to create "+dir+" directory", err)
	}

	glob := dir + "/*"
	workspaces, _ := manifest["workspaces"].([]interface{})
	for _, entry := range workspaces {
		if entry == glob {
			return false, nil
		}
	}

	manifest["workspaces"] = append(workspaces, glob)

	return true, nil
}

// ensureOrmScripts adds the db scripts to the root manifest, reporting
// whether anything changed.
func ensureOrmScripts(manifest map[string]interface{}, projectName string, spec config.OrmSpec) bool {
	scripts, _ := manifest["scripts"].(map[string]interface{})
	if scripts == nil {
		scripts = make(map[string]interface{})
	}

	filter := fmt.Sprintf("bun run --filter '@%s/db'", projectName)
	additions := map[string]string{
		"db:generate": filter + " db:generate",
		"db:push":     filter + " db:push",
		"db:seed":     filter + " db:seed",
	}
	if spec.Database != config.DatabaseSQLite {
		additions["db:up"] = "docker compose -f " + orm.ComposeFileName + " up -d"
		additions["db:down"] = "docker compose -f " + orm.ComposeFileName + " down"
	}

	changed := false
	for key, value := range additions {
		if _, exists := scripts[key]; !exists {
			scripts[key] = value
			changed = true
		}
	}

	manifest["scripts"] = scripts

	return changed
}

// existingPackages lists the packages already on disk. A directory whose name
// matches a catalog key is treated as that template so capability matching
// and UI injection keep working across add runs.
func (a *Assembler) existingPackages(root string) []registry.Resolved {
	entries, err := os.ReadDir(filepath.Join(root, "packages"))
	if err != nil {
		return nil
	}

	var packages []registry.Resolved
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		template, category := registry.BlankTemplate, "blank"
		if _, cat, ok := a.reg.Find(entry.Name(), registry.KindPackages); ok {
			template, category = entry.Name(), cat
		}

		packages = append(packages, registry.Resolved{
			Name:     entry.Name(),
			Template: template,
			Category: category,
		})
	}

	return packages
}

func ensureAbsent(path string) error {
	if _, err := os.Stat(path); err == nil {
		return forgeerrors.NewValidationError("TARGET_EXISTS",
			fmt.Sprintf("directory %q already exists", path))
	}

	return nil
}
