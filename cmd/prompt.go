package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/conneroisu/monoforge/internal/config"
	"github.com/conneroisu/monoforge/internal/registry"
)

// stdinIsTerminal reports whether stdin is an interactive terminal. Piped
// input never triggers prompts.
func stdinIsTerminal() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}

	return info.Mode()&os.ModeCharDevice != 0
}

// runCreateWizard fills the options the flags and environment left empty by
// prompting on stdin. Fields that already have a value are never re-asked.
func runCreateWizard(opts *config.Options, reg *registry.Registry) error {
	reader := bufio.NewReader(os.Stdin)

	if opts.ProjectName == "" {
		name, err := promptString(reader, "Project name", "")
		if err != nil {
			return err
		}
		opts.ProjectName = name
	}

	if len(opts.Apps) == 0 {
		fmt.Printf("Available app templates: %s\n", strings.Join(reg.Keys(registry.KindApps), ", "))
		apps, err := promptString(reader, "Apps (comma-separated, e.g. web[react-vite],api[express])", "")
		if err != nil {
			return err
		}
		opts.Apps = config.SplitCSV(apps)
	}

	if len(opts.Packages) == 0 {
		fmt.Printf("Available package templates: %s\n", strings.Join(reg.Keys(registry.KindPackages), ", "))
		packages, err := promptString(reader, "Packages (comma-separated, empty for none)", "")
		if err != nil {
			return err
		}
		opts.Packages = config.SplitCSV(packages)
	}

	if opts.Linter == "" {
		linter, err := promptChoice(reader, "Linter", []string{
			string(config.LinterBiome), string(config.LinterESLint),
		}, string(config.LinterBiome))
		if err != nil {
			return err
		}
		opts.Linter = config.Linter(linter)
	}

	if opts.ORM.Flavor == "" {
		flavor, err := promptChoice(reader, "ORM", []string{
			string(config.OrmNone), string(config.OrmDrizzle), string(config.OrmPrisma),
		}, string(config.OrmNone))
		if err != nil {
			return err
		}
		opts.ORM.Flavor = config.OrmFlavor(flavor)
	}

	if opts.ORM.Enabled() && opts.ORM.Database == "" {
		database, err := promptChoice(reader, "Database", []string{
			string(config.DatabasePostgres), string(config.DatabaseMySQL), string(config.DatabaseSQLite),
		}, string(config.DatabasePostgres))
		if err != nil {
			return err
		}
		opts.ORM.Database = config.Database(database)
	}

	return nil
}

// promptString reads one trimmed line, falling back to def on empty input.
func promptString(reader *bufio.Reader, label, def string) (string, error) {
	if def != "" {
		fmt.Printf("%s [%s]: ", label, def)
	} else {
		fmt.Printf("%s: ", label)
	}

	input, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return def, nil
	}

	return input, nil
}

// promptChoice reads one of the listed values, re-asking on anything else.
func promptChoice(reader *bufio.Reader, label string, choices []string, def string) (string, error) {
	for {
		input, err := promptString(reader, fmt.Sprintf("%s (%s)", label, strings.Join(choices, "/")), def)
		if err != nil {
			return "", err
		}

		for _, choice := range choices {
			if strings.EqualFold(input, choice) {
				return choice, nil
			}
		}

		fmt.Printf("Invalid choice %q. Please pick one of: %s\n", input, strings.Join(choices, ", "))
	}
}
