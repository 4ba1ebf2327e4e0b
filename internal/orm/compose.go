package orm

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/conneroisu/monoforge/internal/config"
)

// ComposeFileName is where the dev database definition lands in the project
// root.
const ComposeFileName = "docker-compose.dev.yml"

// ComposeFile models the subset of the Compose format the dev database needs.
type ComposeFile struct {
	Services map[string]ComposeService `yaml:"services"`
	Volumes  map[string]yaml.Node      `yaml:"volumes,omitempty"`
}

// namedVolumes builds volume entries that render as bare keys ("db_data:"),
// the way compose files are written by hand. An empty scalar node with the
// null tag emits no value.
func namedVolumes(names ...string) map[string]yaml.Node {
	volumes := make(map[string]yaml.Node, len(names))
	for _, name := range names {
		volumes[name] = yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null"}
	}

	return volumes
}

// ComposeService is one service definition.
type ComposeService struct {
	Image       string            `yaml:"image"`
	Restart     string            `yaml:"restart,omitempty"`
	Ports       []string          `yaml:"ports,omitempty"`
	Environment map[string]string `yaml:"environment,omitempty"`
	Volumes     []string          `yaml:"volumes,omitempty"`
}

// WriteCompose writes docker-compose.dev.yml for the chosen engine. SQLite is
// file-backed and gets no compose file.
func WriteCompose(root, projectName string, db config.Database) error {
	compose, ok := composeFor(projectName, db)
	if !ok {
		return nil
	}

	path := filepath.Join(root, ComposeFileName)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(compose); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	return nil
}

func composeFor(projectName string, db config.Database) (ComposeFile, bool) {
	switch db {
	case config.DatabasePostgres:
		return ComposeFile{
			Services: map[string]ComposeService{
				"postgres": {
					Image:   "postgres:16-alpine",
					Restart: "unless-stopped",
					Ports:   []string{"5432:5432"},
					Environment: map[string]string{
						"POSTGRES_USER":     "postgres",
						"POSTGRES_PASSWORD": "postgres",
						"POSTGRES_DB":       projectName,
					},
					Volumes: []string{"db_data:/var/lib/postgresql/data"},
				},
			},
			Volumes: namedVolumes("db_data"),
		}, true
	case config.DatabaseMySQL:
		return ComposeFile{
			Services: map[string]ComposeService{
				"mysql": {
					Image:   "mysql:8.4",
					Restart: "unless-stopped",
					Ports:   []string{"3306:3306"},
					Environment: map[string]string{
						"MYSQL_ROOT_PASSWORD": "mysql",
						"MYSQL_DATABASE":      projectName,
					},
					Volumes: []string{"db_data:/var/lib/mysql"},
				},
			},
			Volumes: namedVolumes("db_data"),
		}, true
	default:
		return ComposeFile{}, false
	}
}
