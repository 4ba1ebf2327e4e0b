// Package scaffolding materializes template assets onto disk: copying
// embedded template trees, substituting {{token}} placeholders, and writing
// the inline skeletons used by the synthetic blank template.
package scaffolding

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/conneroisu/monoforge/internal/logging"
)

// skipDirs are path segments never copied out of a template tree.
var skipDirs = map[string]bool{
	"node_modules": true,
	"dist":         true,
}

// substitutableExts is the allow-list of text file extensions that
// placeholder substitution touches.
var substitutableExts = map[string]bool{
	".json": true, ".js": true, ".ts": true, ".tsx": true, ".jsx": true,
	".md": true, ".txt": true, ".yml": true, ".yaml": true, ".xml": true,
	".html": true, ".css": true, ".scss": true,
}

// Materializer copies template directories out of a source filesystem and
// rewrites placeholder tokens in the result.
type Materializer struct {
	fsys fs.FS
	log  logging.Logger
}

// NewMaterializer creates a materializer reading from fsys.
func NewMaterializer(fsys fs.FS, log logging.Logger) *Materializer {
	return &Materializer{fsys: fsys, log: log.WithComponent("materializer")}
}

// Copy recursively duplicates the template tree rooted at templatePath into
// destPath, skipping node_modules and dist segments.
func (m *Materializer) Copy(templatePath, destPath string) error {
	return fs.WalkDir(m.fsys, templatePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to walk template %s: %w", templatePath, err)
		}

		if d.IsDir() && skipDirs[d.Name()] {
			return fs.SkipDir
		}

		rel, err := filepath.Rel(templatePath, path)
		if err != nil {
			return fmt.Errorf("failed to relativize %s: %w", path, err)
		}
		target := filepath.Join(destPath, rel)

		if d.IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", target, err)
			}
			return nil
		}

		data, err := fs.ReadFile(m.fsys, path)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", path, err)
		}

		if err := os.WriteFile(target, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", target, err)
		}

		return nil
	})
}

// Substitute walks every file under destPath whose extension is in the
// allow-list and replaces each literal {{key}} occurrence with its mapped
// value. Files without matching tokens are left untouched. A single file's
// failure is logged as a warning and skipped, never aborting the walk.
func (m *Materializer) Substitute(ctx context.Context, destPath string, replacements map[string]string) error {
	if len(replacements) == 0 {
		return nil
	}

	return filepath.WalkDir(destPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if skipDirs[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}

		if !substitutableExts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		if err := substituteFile(path, replacements); err != nil {
			m.log.Warn(ctx, err, "skipping placeholder substitution", "file", path)
		}

		return nil
	})
}

// substituteFile rewrites one file in place, writing only when a token
// actually matched so untouched files keep their timestamps.
func substituteFile(path string, replacements map[string]string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	content := string(data)
	updated := content
	for key, value := range replacements {
		updated = strings.ReplaceAll(updated, "{{"+key+"}}", value)
	}

	if updated == content {
		return nil
	}

	if err := os.WriteFile(path, []byte(updated), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
