package registry

import (
	"fmt"
	"regexp"
	"strings"

	forgeerrors "github.com/conneroisu/monoforge/internal/errors"
)

// Resolved is one name input bound to a catalog template (or the blank
// sentinel) and the category it came from.
type Resolved struct {
	Name     string
	Template string
	Category string
}

// nameInputPattern matches "name", "name[template]" and "[template]". The
// name part must not contain brackets.
var nameInputPattern = regexp.MustCompile(`^([^\[\]]*)(?:\[([^\[\]]+)\])?$`)

// Resolve binds a single bracket-notation input to a template. A missing
// bracket part falls back to the blank skeleton; a bare "[template]" uses the
// template key as the name.
func (r *Registry) Resolve(input string, kind Kind) (Resolved, error) {
	trimmed := strings.TrimSpace(input)

	match := nameInputPattern.FindStringSubmatch(trimmed)
	if match == nil {
		return Resolved{}, forgeerrors.NewValidationError("MALFORMED_NAME",
			fmt.Sprintf("malformed name input %q: expected name, name[template] or [template]", input))
	}

	name := strings.TrimSpace(match[1])
	template := strings.TrimSpace(match[2])

	if template == "" {
		if name == "" {
			return Resolved{}, forgeerrors.NewValidationError("EMPTY_NAME",
				"name input must not be empty")
		}

		return Resolved{Name: name, Template: BlankTemplate, Category: BlankTemplate}, nil
	}

	if name == "" {
		name = template
	}

	_, category, ok := r.Find(template, kind)
	if !ok {
		return Resolved{}, forgeerrors.UnknownTemplateError(template, string(kind), r.Keys(kind))
	}

	return Resolved{Name: name, Template: template, Category: category}, nil
}

// ResolveAll resolves every input, failing fast on the first bad one.
func (r *Registry) ResolveAll(inputs []string, kind Kind) ([]Resolved, error) {
	var resolved []Resolved
	for _, input := range inputs {
		res, err := r.Resolve(input, kind)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, res)
	}

	return resolved, nil
}
