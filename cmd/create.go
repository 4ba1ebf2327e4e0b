package cmd

import (
	"fmt"

	"github.com/conneroisu/monoforge/internal/assembler"
	"github.com/conneroisu/monoforge/internal/config"
	"github.com/conneroisu/monoforge/internal/registry"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// createCmd scaffolds a new monorepo. The root command delegates here so
// `monoforge myapp` and `monoforge create myapp` behave identically.
var createCmd = &cobra.Command{
	Use:     "create [project-name]",
	Aliases: []string{"new", "c"},
	Short:   "Create a new monorepo",
	Long: `Create a new Bun workspace monorepo in a directory named after the
project. Apps and packages are selected with bracket notation; anything
not given on the command line or in the environment is prompted for.

Examples:
  monoforge create myapp --apps web[react-vite],api[express]
  monoforge create myapp --packages ui,utils --orm drizzle --database sqlite
  monoforge create myapp --yes                 # accept defaults, no prompts
  APPS='api[hono]' NON_INTERACTIVE=1 monoforge create myapp`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)
	addCreateFlags(createCmd)
}

// addCreateFlags registers the scaffolding flags. The same set lives on the
// root command and on create so both invocation forms accept them.
func addCreateFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("apps", nil, "app name inputs, e.g. web[react-vite],api[express]")
	cmd.Flags().StringSlice("packages", nil, "package name inputs, e.g. ui,utils")
	cmd.Flags().String("orm", "", "ORM flavor (none, drizzle, prisma)")
	cmd.Flags().String("database", "", "database engine (postgresql, mysql, sqlite)")
	cmd.Flags().String("linter", "", "lint tooling (biome, eslint)")
	cmd.Flags().BoolP("yes", "y", false, "accept defaults and skip prompts")
}

func runCreate(cmd *cobra.Command, args []string) error {
	opts := config.FromEnv()

	if len(args) > 0 {
		opts.ProjectName = args[0]
	}
	applyCreateFlags(cmd.Flags(), &opts)

	reg := registry.Default()

	if !opts.Yes && !config.NonInteractive() && stdinIsTerminal() {
		if err := runCreateWizard(&opts, reg); err != nil {
			return err
		}
	}

	if opts.ProjectName == "" {
		return fmt.Errorf("project name required: pass it as an argument or set APP_NAME")
	}

	opts.ApplyDefaults()
	if err := opts.Validate(); err != nil {
		return err
	}

	log := newLogger()
	if err := assembler.New(reg, log).CreateMonorepo(cmd.Context(), opts); err != nil {
		return err
	}

	printNextSteps(opts)

	return nil
}

// applyCreateFlags overrides env-derived options with explicitly set flags.
func applyCreateFlags(flags *pflag.FlagSet, opts *config.Options) {
	if flags.Changed("apps") {
		opts.Apps, _ = flags.GetStringSlice("apps")
	}
	if flags.Changed("packages") {
		opts.Packages, _ = flags.GetStringSlice("packages")
	}
	if flags.Changed("orm") {
		value, _ := flags.GetString("orm")
		opts.ORM.Flavor = config.OrmFlavor(value)
	}
	if flags.Changed("database") {
		value, _ := flags.GetString("database")
		opts.ORM.Database = config.Database(value)
	}
	if flags.Changed("linter") {
		value, _ := flags.GetString("linter")
		opts.Linter = config.Linter(value)
	}
	if yes, _ := flags.GetBool("yes"); yes {
		opts.Yes = true
	}
}

func printNextSteps(opts config.Options) {
	fmt.Printf("\nCreated %s\n\nNext steps:\n", opts.ProjectName)
	fmt.Printf("  cd %s\n", opts.ProjectName)
	fmt.Println("  bun install")
	if opts.ORM.Enabled() {
		if opts.ORM.Database != config.DatabaseSQLite {
			fmt.Println("  bun run db:up")
		}
		fmt.Println("  bun run db:push")
		fmt.Println("  bun run db:seed")
	}
	fmt.Println("  bun run dev")
}
