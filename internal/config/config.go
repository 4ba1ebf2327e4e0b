// Package config provides option management for monoforge using Viper for
// flexible loading from command-line flags and environment variables.
//
// Non-interactive runs are driven by the legacy environment variables
// NON_INTERACTIVE, APP_NAME, APPS, PACKAGES, ORM_TYPE, DATABASE and LINTING,
// which are bound explicitly alongside the MONOFORGE_ prefixed forms.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	forgeerrors "github.com/conneroisu/monoforge/internal/errors"
)

// OrmFlavor is one of the supported database-access libraries.
type OrmFlavor string

const (
	OrmNone    OrmFlavor = "none"
	OrmDrizzle OrmFlavor = "drizzle"
	OrmPrisma  OrmFlavor = "prisma"
)

// Database is one of the supported database engines.
type Database string

const (
	DatabasePostgres Database = "postgresql"
	DatabaseMySQL    Database = "mysql"
	DatabaseSQLite   Database = "sqlite"
)

// Linter selects the generated lint/format tooling.
type Linter string

const (
	LinterBiome  Linter = "biome"
	LinterESLint Linter = "eslint"
)

// OrmSpec determines which client, schema and seed variants are generated and
// which injected route bodies are used.
type OrmSpec struct {
	Flavor   OrmFlavor
	Database Database
}

// Enabled reports whether an ORM was actually selected.
func (s OrmSpec) Enabled() bool {
	return s.Flavor != "" && s.Flavor != OrmNone
}

// Options holds everything one scaffolding run needs. Options are built from
// CLI input or prompts, consumed once by the assembler, and discarded.
type Options struct {
	ProjectName string
	Apps        []string // raw name inputs, bracket notation allowed
	Packages    []string
	Linter      Linter
	ORM         OrmSpec
	Yes         bool // accept defaults, skip prompts
}

// envBindings maps viper keys to the legacy environment variable names that
// drive non-interactive mode.
var envBindings = map[string]string{
	"non_interactive": "NON_INTERACTIVE",
	"app_name":        "APP_NAME",
	"apps":            "APPS",
	"packages":        "PACKAGES",
	"orm_type":        "ORM_TYPE",
	"database":        "DATABASE",
	"linting":         "LINTING",
}

// BindEnv registers the legacy environment variables with viper. Called once
// during CLI initialization.
func BindEnv() {
	for key, env := range envBindings {
		// BindEnv only fails on an empty key, which cannot happen here.
		_ = viper.BindEnv(key, env)
	}
}

// NonInteractive reports whether the legacy env-driven mode is active.
func NonInteractive() bool {
	return viper.GetBool("non_interactive")
}

// FromEnv builds Options from the bound environment variables. Values the
// environment leaves empty keep their zero value so the caller can fall back
// to flags, prompts or defaults.
func FromEnv() Options {
	opts := Options{
		ProjectName: viper.GetString("app_name"),
		Apps:        SplitCSV(viper.GetString("apps")),
		Packages:    SplitCSV(viper.GetString("packages")),
		Linter:      Linter(viper.GetString("linting")),
		Yes:         NonInteractive(),
	}

	if flavor := viper.GetString("orm_type"); flavor != "" {
		opts.ORM.Flavor = OrmFlavor(flavor)
	}
	if db := viper.GetString("database"); db != "" {
		opts.ORM.Database = Database(db)
	}

	return opts
}

// ApplyDefaults fills unset fields with their defaults.
func (o *Options) ApplyDefaults() {
	if o.Linter == "" {
		o.Linter = LinterBiome
	}
	if o.ORM.Flavor == "" {
		o.ORM.Flavor = OrmNone
	}
	if o.ORM.Enabled() && o.ORM.Database == "" {
		o.ORM.Database = DatabasePostgres
	}
}

// SplitCSV splits a comma-separated value list, trimming whitespace and
// dropping empty entries.
func SplitCSV(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}

	return out
}

// Validate checks option values for correctness before assembly starts.
func (o *Options) Validate() error {
	if err := ValidateProjectName(o.ProjectName); err != nil {
		return err
	}

	if err := ValidateNameInputs(o.Apps, "app"); err != nil {
		return err
	}
	if err := ValidateNameInputs(o.Packages, "package"); err != nil {
		return err
	}

	switch o.Linter {
	case LinterBiome, LinterESLint:
	default:
		return forgeerrors.NewConfigError("UNKNOWN_LINTER",
			fmt.Sprintf("unknown linter %q (available: %s, %s)", o.Linter, LinterBiome, LinterESLint))
	}

	switch o.ORM.Flavor {
	case OrmNone, OrmDrizzle, OrmPrisma:
	default:
		return forgeerrors.NewConfigError("UNKNOWN_ORM",
			fmt.Sprintf("unknown ORM %q (available: %s, %s, %s)", o.ORM.Flavor, OrmNone, OrmDrizzle, OrmPrisma))
	}

	if o.ORM.Enabled() {
		switch o.ORM.Database {
		case DatabasePostgres, DatabaseMySQL, DatabaseSQLite:
		default:
			return forgeerrors.NewConfigError("UNKNOWN_DATABASE",
				fmt.Sprintf("unknown database %q (available: %s, %s, %s)",
					o.ORM.Database, DatabasePostgres, DatabaseMySQL, DatabaseSQLite))
		}

		// packages/db is generated for the ORM client and must not collide
		// with a user-chosen package.
		for _, pkg := range o.Packages {
			if BaseName(pkg) == "db" {
				return forgeerrors.NewValidationError("RESERVED_NAME",
					"package name 'db' is reserved when an ORM is configured")
			}
		}
	}

	return nil
}
