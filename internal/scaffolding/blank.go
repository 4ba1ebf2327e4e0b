package scaffolding

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteBlankApp generates the inline skeleton for an app created without a
// bracket template: a runnable TypeScript entrypoint and workspace wiring.
func WriteBlankApp(destPath, name, projectName string) error {
	files := map[string]string{
		"package.json": fmt.Sprintf(`{
  "name": "@%s/%s",
  "version": "0.1.0",
  "private": true,
  "type": "module",
  "scripts": {
    "dev": "bun run --watch src/index.ts",
    "build": "tsc",
    "start": "bun run src/index.ts"
  },
  "devDependencies": {
    "typescript": "^5.5.4"
  }
}
`, projectName, name),
		"tsconfig.json": `{
  "extends": "../../tsconfig.json",
  "compilerOptions": {
    "outDir": "dist",
    "rootDir": "src"
  },
  "include": ["src"]
}
`,
		"src/index.ts": fmt.Sprintf(`console.log("Hello from %s!");
`, name),
	}

	return writeFileMap(destPath, files)
}

// WriteBlankPackage generates the inline skeleton for a package created
// without a bracket template.
func WriteBlankPackage(destPath, name, projectName string) error {
	files := map[string]string{
		"package.json": fmt.Sprintf(`{
  "name": "@%s/%s",
  "version": "0.1.0",
  "private": true,
  "type": "module",
  "main": "src/index.ts",
  "types": "src/index.ts",
  "devDependencies": {
    "typescript": "^5.5.4"
  }
}
`, projectName, name),
		"tsconfig.json": `{
  "extends": "../../tsconfig.json",
  "compilerOptions": {
    "noEmit": true
  },
  "include": ["src"]
}
`,
		"src/index.ts": fmt.Sprintf(`export const name = "%s";
`, name),
	}

	return writeFileMap(destPath, files)
}

// writeFileMap writes a relative-path → content map under destPath, creating
// parent directories as needed.
func writeFileMap(destPath string, files map[string]string) error {
	for rel, content := range files {
		target := filepath.Join(destPath, rel)

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", target, err)
		}

		if err := os.WriteFile(target, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", target, err)
		}
	}

	return nil
}
