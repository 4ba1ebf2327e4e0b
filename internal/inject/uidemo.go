package inject

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/conneroisu/monoforge/internal/logging"
	"github.com/conneroisu/monoforge/internal/registry"
)

// uiFramework describes one frontend template's entrypoint and the two edits
// a shared-component demo needs: the import rewrite and the counter-button
// replacement.
type uiFramework struct {
	entrypoint   string
	sharedPkg    string // "ui" or "ui-native" template key the edit depends on
	importAnchor *regexp.Regexp
	// importText receives the workspace import specifier (@project/pkg).
	importText func(specifier string) string
	// importReplaces selects replaceFirst over insertAfter for the import
	// edit; native templates rewrite the react-native import line so the
	// shared Button does not collide with react-native's.
	importReplaces bool
	buttonAnchor   *regexp.Regexp
	buttonText     string
}

const webCounterButton = `<button onClick={() => setCount((c) => c + 1)}>count is {count}</button>`

const nativeCounterButton = "<Button title={`count is ${count}`} onPress={() => setCount((c) => c + 1)} />"

var (
	useStateImport = regexp.MustCompile(`(?m)^import \{ useState \} from "react";$`)
	rnValueImport  = regexp.MustCompile(`(?m)^import \{ Button, StyleSheet, Text, View \} from "react-native";$`)
	webButton      = regexp.MustCompile(regexp.QuoteMeta(webCounterButton))
	nativeButton   = regexp.MustCompile(regexp.QuoteMeta(nativeCounterButton))
)

func webUIFramework(entrypoint string) uiFramework {
	return uiFramework{
		entrypoint:   entrypoint,
		sharedPkg:    "ui",
		importAnchor: useStateImport,
		importText: func(specifier string) string {
			return fmt.Sprintf(`import { Button } from "%s";`, specifier)
		},
		buttonAnchor: webButton,
		buttonText:   `<Button onClick={() => setCount((c) => c + 1)}>count is {count}</Button>`,
	}
}

func nativeUIFramework() uiFramework {
	return uiFramework{
		entrypoint:   "App.tsx",
		sharedPkg:    "ui-native",
		importAnchor: rnValueImport,
		importText: func(specifier string) string {
			return fmt.Sprintf(`import { StyleSheet, Text, View } from "react-native";
import { Button } from "%s";`, specifier)
		},
		importReplaces: true,
		buttonAnchor:   nativeButton,
		buttonText:     "<Button label={`count is ${count}`} onPress={() => setCount((c) => c + 1)} />",
	}
}

// uiFrameworks is the fixed dispatch table keyed by app template.
var uiFrameworks = map[string]uiFramework{
	"react-vite":        webUIFramework("src/App.tsx"),
	"react-webpack":     webUIFramework("src/App.tsx"),
	"nextjs":            webUIFramework("app/page.tsx"),
	"nextjs-solito":     webUIFramework("app/page.tsx"),
	"react-router":      webUIFramework("app/routes/home.tsx"),
	"react-native-expo": nativeUIFramework(),
	"react-native-bare": nativeUIFramework(),
}

// UIDemo wires a shared Button component into a frontend app's entrypoint:
// an import of the workspace ui package and a demo usage replacing the
// template's counter button. The injection is cosmetic and never fatal;
// read failures and anchor misses are logged as warnings.
func UIDemo(ctx context.Context, log logging.Logger, appDir string, app registry.Resolved, packages []registry.Resolved, projectName string) error {
	fw, ok := uiFrameworks[app.Template]
	if !ok {
		return nil
	}

	shared, ok := findPackage(packages, fw.sharedPkg)
	if !ok {
		return nil
	}

	log = log.WithComponent("ui-inject")
	path := filepath.Join(appDir, fw.entrypoint)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn(ctx, err, "cannot read app entrypoint, skipping UI demo injection", "file", path)
		return nil
	}

	specifier := fmt.Sprintf("@%s/%s", projectName, shared.Name)
	content := string(data)
	changed := false

	var edited bool
	if fw.importReplaces {
		content, edited = replaceFirst(content, fw.importAnchor, fw.importText(specifier))
	} else {
		content, edited = insertAfter(content, fw.importAnchor, fw.importText(specifier))
	}
	if !edited {
		log.Warn(ctx, nil, "import anchor not found, skipping UI import injection",
			"file", path, "anchor", fw.importAnchor.String())
	}
	changed = changed || edited

	content, edited = replaceFirst(content, fw.buttonAnchor, fw.buttonText)
	if !edited {
		log.Warn(ctx, nil, "counter button not found, skipping UI demo injection",
			"file", path, "anchor", fw.buttonAnchor.String())
	}
	changed = changed || edited

	if !changed {
		return nil
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		log.Warn(ctx, err, "cannot write app entrypoint, skipping UI demo injection", "file", path)
	}

	return nil
}

// findPackage returns the first resolved package using the given template.
func findPackage(packages []registry.Resolved, template string) (registry.Resolved, bool) {
	for _, pkg := range packages {
		if pkg.Template == template {
			return pkg, true
		}
	}
	return registry.Resolved{}, false
}
