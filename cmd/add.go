package cmd

import (
	"github.com/conneroisu/monoforge/internal/assembler"
	"github.com/conneroisu/monoforge/internal/config"
	"github.com/conneroisu/monoforge/internal/registry"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:     "add [path]",
	Aliases: []string{"a"},
	Short:   "Add apps or packages to an existing monorepo",
	Long: `Add apps, packages or an ORM setup to an existing monorepo. The target
directory (default ".") must contain a package.json with a workspaces
array; anything else is rejected before files are written.

Examples:
  monoforge add --app admin[nextjs]
  monoforge add --package hooks --package utils
  monoforge add --orm drizzle --database sqlite
  monoforge add ../myapp --app mobile[react-native-expo]`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

var (
	addApps     []string
	addPackages []string
	addOrm      string
	addDatabase string
)

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringArrayVar(&addApps, "app", nil, "app name input, repeatable")
	addCmd.Flags().StringArrayVar(&addPackages, "package", nil, "package name input, repeatable")
	addCmd.Flags().StringVar(&addOrm, "orm", "", "ORM flavor to add (drizzle, prisma)")
	addCmd.Flags().StringVar(&addDatabase, "database", "", "database engine (postgresql, mysql, sqlite)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	if err := config.ValidateNameInputs(addApps, "app"); err != nil {
		return err
	}
	if err := config.ValidateNameInputs(addPackages, "package"); err != nil {
		return err
	}

	opts := assembler.AddOptions{
		Apps:     addApps,
		Packages: addPackages,
	}
	if addOrm != "" {
		opts.ORM = config.OrmSpec{
			Flavor:   config.OrmFlavor(addOrm),
			Database: config.Database(addDatabase),
		}
		if opts.ORM.Enabled() && opts.ORM.Database == "" {
			opts.ORM.Database = config.DatabasePostgres
		}
		if err := validateOrmSpec(opts.ORM); err != nil {
			return err
		}
	}

	log := newLogger()

	return assembler.New(registry.Default(), log).AddToMonorepo(cmd.Context(), root, opts)
}

// validateOrmSpec reuses the option validation for a standalone ORM spec.
func validateOrmSpec(spec config.OrmSpec) error {
	opts := config.Options{
		ProjectName: "placeholder",
		Linter:      config.LinterBiome,
		ORM:         spec,
	}

	return opts.Validate()
}
