// Package assembler orchestrates monorepo creation: root config files, per
// app/package materialization, source injection, and workspace wiring.
//
// Assembly is strictly sequential and non-transactional. A failing step
// aborts with a partially written tree on disk; re-running `add` against the
// existing directory is the recovery path.
package assembler

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/conneroisu/monoforge/internal/config"
	forgeerrors "github.com/conneroisu/monoforge/internal/errors"
	"github.com/conneroisu/monoforge/internal/inject"
	"github.com/conneroisu/monoforge/internal/logging"
	"github.com/conneroisu/monoforge/internal/orm"
	"github.com/conneroisu/monoforge/internal/registry"
	"github.com/conneroisu/monoforge/internal/scaffolding"
	"github.com/conneroisu/monoforge/templates"
)

// Assembler builds monorepos from resolved template specs.
type Assembler struct {
	reg *registry.Registry
	mat *scaffolding.Materializer
	log logging.Logger
}

// New creates an assembler over the built-in catalog and embedded assets.
func New(reg *registry.Registry, log logging.Logger) *Assembler {
	return &Assembler{
		reg: reg,
		mat: scaffolding.NewMaterializer(templates.FS, log),
		log: log.WithComponent("assembler"),
	}
}

// CreateMonorepo builds a complete monorepo under opts.ProjectName. Options
// must already be validated and defaulted.
func (a *Assembler) CreateMonorepo(ctx context.Context, opts config.Options) error {
	apps, err := a.reg.ResolveAll(opts.Apps, registry.KindApps)
	if err != nil {
		return err
	}
	packages, err := a.reg.ResolveAll(opts.Packages, registry.KindPackages)
	if err != nil {
		return err
	}

	root := opts.ProjectName
	if _, err := os.Stat(root); err == nil {
		return forgeerrors.NewValidationError("PROJECT_EXISTS",
			fmt.Sprintf("directory %q already exists", root))
	}

	if err := os.MkdirAll(root, 0755); err != nil {
		return forgeerrors.NewIOError("MKDIR_FAILED", "failed to create project directory", err).WithPath(root)
	}

	hasApps := len(apps) > 0
	hasPackages := len(packages) > 0 || opts.ORM.Enabled()

	if hasApps {
		if err := os.MkdirAll(filepath.Join(root, "apps"), 0755); err != nil {
			return forgeerrors.NewIOError("MKDIR_FAILED", "failed to create apps directory", err)
		}
	}
	if hasPackages {
		if err := os.MkdirAll(filepath.Join(root, "packages"), 0755); err != nil {
			return forgeerrors.NewIOError("MKDIR_FAILED", "failed to create packages directory", err)
		}
	}

	log := a.log.With("project", opts.ProjectName)
	log.Info(ctx, "creating monorepo",
		"apps", len(apps), "packages", len(packages), "orm", string(opts.ORM.Flavor))

	if err := writeRootPackageJSON(root, opts, hasApps, hasPackages); err != nil {
		return err
	}
	if err := writeRootTSConfig(root, apps, packages, opts.ORM.Enabled()); err != nil {
		return err
	}
	if err := writeLintConfig(root, opts.Linter); err != nil {
		return err
	}
	if err := writeGitignore(root, apps); err != nil {
		return err
	}

	if opts.ORM.Enabled() {
		if err := orm.Setup(root, opts.ProjectName, opts.ORM); err != nil {
			return err
		}
		if err := orm.WriteCompose(root, opts.ProjectName, opts.ORM.Database); err != nil {
			return err
		}
	}

	for _, pkg := range packages {
		if err := a.materializePackage(ctx, root, pkg, opts.ProjectName); err != nil {
			return err
		}
	}

	for _, app := range apps {
		if err := a.materializeApp(ctx, root, app, packages, opts); err != nil {
			return err
		}
	}

	log.Info(ctx, "monorepo created")

	return nil
}

// materializePackage copies or generates one shared package and rewrites its
// package.json name to the workspace scope.
func (a *Assembler) materializePackage(ctx context.Context, root string, pkg registry.Resolved, projectName string) error {
	dest := filepath.Join(root, "packages", pkg.Name)

	if err := a.materialize(ctx, dest, pkg, projectName, false); err != nil {
		return err
	}

	return rewritePackageJSON(dest, projectName, pkg.Name, nil)
}

// materializeApp copies or generates one app, runs the ORM and UI demo
// injectors, and wires its workspace dependencies.
func (a *Assembler) materializeApp(ctx context.Context, root string, app registry.Resolved, packages []registry.Resolved, opts config.Options) error {
	dest := filepath.Join(root, "apps", app.Name)

	if err := a.materialize(ctx, dest, app, opts.ProjectName, true); err != nil {
		return err
	}

	if err := inject.ORM(ctx, a.log, dest, app.Template, opts.ProjectName, opts.ORM); err != nil {
		return err
	}
	if err := inject.UIDemo(ctx, a.log, dest, app, packages, opts.ProjectName); err != nil {
		return err
	}

	deps := workspaceDeps(app, packages, opts.ORM.Enabled())

	return rewritePackageJSON(dest, opts.ProjectName, app.Name, deps)
}

// materialize writes one template's files to dest: blank templates from the
// inline skeleton, everything else by copying the embedded asset tree and
// substituting placeholders.
func (a *Assembler) materialize(ctx context.Context, dest string, spec registry.Resolved, projectName string, isApp bool) error {
	a.log.Info(ctx, "materializing", "name", spec.Name, "template", spec.Template)

	if spec.Template == registry.BlankTemplate {
		if isApp {
			return scaffolding.WriteBlankApp(dest, spec.Name, projectName)
		}
		return scaffolding.WriteBlankPackage(dest, spec.Name, projectName)
	}

	info, _, ok := a.reg.Get(spec.Template)
	if !ok || info.Path == "" {
		return forgeerrors.NewInternalError("TEMPLATE_ASSETS_MISSING",
			fmt.Sprintf("template %q has no assets", spec.Template), nil)
	}

	if err := a.mat.Copy(path.Join(templates.Root, info.Path), dest); err != nil {
		return forgeerrors.NewIOError("COPY_FAILED",
			fmt.Sprintf("failed to materialize template %q", spec.Template), err).WithPath(dest)
	}

	replacements := map[string]string{
		"name":        spec.Name,
		"projectName": projectName,
		"packageName": fmt.Sprintf("@%s/%s", projectName, spec.Name),
	}

	return a.mat.Substitute(ctx, dest, replacements)
}

// workspaceDeps applies the fixed capability-matching rule: native apps get
// ui-native packages, React apps get ui and hooks, every app gets utils and
// schemas, and backend apps get the db package when an ORM is configured.
func workspaceDeps(app registry.Resolved, packages []registry.Resolved, ormEnabled bool) []string {
	wanted := map[string]bool{"utils": true, "schemas": true}

	switch app.Category {
	case "native":
		wanted["ui-native"] = true
		wanted["hooks"] = true
	case "frontend":
		wanted["ui"] = true
		wanted["hooks"] = true
	}

	var deps []string
	for _, pkg := range packages {
		if wanted[pkg.Template] {
			deps = append(deps, pkg.Name)
		}
	}

	if ormEnabled && app.Category == "backend" {
		deps = append(deps, "db")
	}

	return deps
}
