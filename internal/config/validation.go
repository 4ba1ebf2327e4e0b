package config

import (
	"fmt"
	"regexp"
	"strings"
)

// namePattern matches npm-safe directory and package names.
var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// ValidateProjectName validates the top-level project directory name.
func ValidateProjectName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("project name must not be empty")
	}

	return ValidateName(name)
}

// ValidateName validates a single app/package/project name for filesystem and
// npm safety.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name must not be empty")
	}

	if strings.Contains(name, "..") {
		return fmt.Errorf("name %q contains path traversal", name)
	}

	dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'", "\\", "/", " "}
	for _, char := range dangerousChars {
		if strings.Contains(name, char) {
			return fmt.Errorf("name %q contains dangerous character: %s", name, char)
		}
	}

	if !namePattern.MatchString(name) {
		return fmt.Errorf("name %q must start with a lowercase letter or digit and use only [a-z0-9._-]", name)
	}

	return nil
}

// BaseName strips an optional [template] suffix from a name input, returning
// the plain name part. Inputs of the form "[template]" yield the template key.
func BaseName(input string) string {
	trimmed := strings.TrimSpace(input)
	if idx := strings.IndexByte(trimmed, '['); idx >= 0 {
		name := strings.TrimSpace(trimmed[:idx])
		if name != "" {
			return name
		}
		if end := strings.IndexByte(trimmed, ']'); end > idx {
			return strings.TrimSpace(trimmed[idx+1 : end])
		}
	}

	return trimmed
}

// ValidateNameInputs validates the plain-name part of each name input and
// rejects duplicates. The template part is validated later by the resolver.
func ValidateNameInputs(inputs []string, label string) error {
	seen := make(map[string]bool, len(inputs))

	for _, input := range inputs {
		name := BaseName(input)
		if err := ValidateName(name); err != nil {
			return fmt.Errorf("invalid %s: %w", label, err)
		}
		if seen[name] {
			return fmt.Errorf("duplicate %s name %q", label, name)
		}
		seen[name] = true
	}

	return nil
}
