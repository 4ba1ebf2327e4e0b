package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/conneroisu/monoforge/internal/registry"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"templates", "l"},
	Short:   "List the available templates",
	Long: `List the template catalog grouped by category.

Examples:
  monoforge list               # List templates in table format
  monoforge list -f json       # Output as JSON
  monoforge list --format yaml # Output as YAML`,
	RunE: runList,
}

var listFormat string

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "Output format (table, json, yaml)")
}

// listedTemplate is the serialized listing row.
type listedTemplate struct {
	Key         string `json:"key" yaml:"key"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// listedCategory groups listing rows the way the catalog does.
type listedCategory struct {
	Key         string           `json:"key" yaml:"key"`
	Name        string           `json:"name" yaml:"name"`
	Description string           `json:"description" yaml:"description"`
	Templates   []listedTemplate `json:"templates" yaml:"templates"`
}

func runList(cmd *cobra.Command, args []string) error {
	reg := registry.Default()

	var categories []listedCategory
	for _, cat := range reg.Categories() {
		listed := listedCategory{
			Key:         cat.Key,
			Name:        registry.DisplayName(cat.Key),
			Description: cat.Description,
		}

		kind := registry.KindApps
		if cat.Key == "packages" {
			kind = registry.KindPackages
		}
		for _, key := range reg.Keys(kind) {
			info, ok := cat.Templates[key]
			if !ok {
				continue
			}
			listed.Templates = append(listed.Templates, listedTemplate{
				Key:         key,
				Name:        info.Name,
				Description: info.Description,
			})
		}

		categories = append(categories, listed)
	}

	switch listFormat {
	case "json":
		return outputListJSON(categories)
	case "yaml":
		return outputListYAML(categories)
	case "table":
		return outputListTable(categories)
	default:
		return fmt.Errorf("unsupported format: %s (supported: table, json, yaml)", listFormat)
	}
}

func outputListTable(categories []listedCategory) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	for _, cat := range categories {
		fmt.Fprintf(w, "%s\t%s\n", cat.Name, cat.Description)
		for _, tmpl := range cat.Templates {
			fmt.Fprintf(w, "  %s\t%s\n", tmpl.Key, tmpl.Description)
		}
		fmt.Fprintln(w)
	}

	return w.Flush()
}

func outputListJSON(categories []listedCategory) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	return encoder.Encode(categories)
}

func outputListYAML(categories []listedCategory) error {
	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(2)
	defer encoder.Close()

	return encoder.Encode(categories)
}
