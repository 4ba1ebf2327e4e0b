// Package cmd provides the command-line interface for monoforge.
//
// Configuration System:
//
//	The CLI supports flexible configuration through multiple sources with clear precedence:
//	1. Command-line flags (--apps, --orm, etc.) - highest priority
//	2. Individual environment variables (APPS, ORM_TYPE, etc.)
//	3. Interactive prompts - lowest priority, skipped with --yes
//
// Environment Variables:
//
//	NON_INTERACTIVE: Skip all prompts and take values from the environment
//	APP_NAME: Project directory name
//	APPS: Comma-separated app name inputs, bracket notation allowed
//	PACKAGES: Comma-separated package name inputs
//	ORM_TYPE: ORM flavor (none, drizzle, prisma)
//	DATABASE: Database engine (postgresql, mysql, sqlite)
//	LINTING: Lint tooling (biome, eslint)
package cmd

import (
	"fmt"
	"os"

	"github.com/conneroisu/monoforge/internal/config"
	forgeerrors "github.com/conneroisu/monoforge/internal/errors"
	"github.com/conneroisu/monoforge/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands.
// Invoking the binary with a bare project name delegates to create.
var rootCmd = &cobra.Command{
	Use:   "monoforge [project-name]",
	Short: "Scaffold Bun-based TypeScript monorepos",
	Long: `Monoforge scaffolds Bun workspace monorepos from a built-in template
catalog: backend servers, web frontends, React Native apps and shared
packages, optionally wired to a drizzle or prisma database package.

Quick Start:
  monoforge myapp --apps web[react-vite],api[express] --packages ui
  monoforge create myapp --orm prisma --database postgresql
  monoforge add --app admin[nextjs]
  monoforge list

Name inputs use bracket notation: "web[react-vite]" scaffolds the
react-vite template into apps/web, "[hono]" names the app after the
template, and a bare "worker" generates a blank skeleton.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreate(cmd, args)
	},
	// Failures end with the error line, not the usage block.
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	err := rootCmd.Execute()
	if hint := recoveryHint(err); hint != "" {
		fmt.Fprintln(os.Stderr, hint)
	}

	return err
}

// recoveryHint names the resume path after a failure that may have left a
// partial tree on disk. Validation and config errors fire before anything is
// written and need no hint.
func recoveryHint(err error) string {
	if err == nil || forgeerrors.IsRecoverable(err) {
		return ""
	}

	if forgeerrors.IsType(err, forgeerrors.ErrorTypeIO) || forgeerrors.IsType(err, forgeerrors.ErrorTypeInternal) {
		return "a partial tree may remain on disk; fix the cause and re-run `monoforge add` against it to continue"
	}

	return ""
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log-format", rootCmd.PersistentFlags().Lookup("log-format"))

	addCreateFlags(rootCmd)
}

// initConfig wires the environment into viper. The legacy unprefixed
// variables are bound explicitly so existing CI setups keep working; the
// MONOFORGE_ prefix covers everything else.
func initConfig() {
	viper.SetEnvPrefix("MONOFORGE")
	viper.AutomaticEnv()
	config.BindEnv()
}

// newLogger builds the run's logger from the persistent flags.
func newLogger() logging.Logger {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLevel(viper.GetString("log-level"))
	cfg.Format = viper.GetString("log-format")

	return logging.NewLogger(cfg)
}
