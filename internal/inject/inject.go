// Package inject performs targeted, anchor-based source insertion into files
// that were just materialized from a template: ORM route handlers for backend
// apps and shared-component demos for frontend apps.
//
// Injection is best-effort. A missing entrypoint is an expected no-op; an
// anchor that fails to match is reported as a warning and the file is left
// unchanged.
package inject

import "regexp"

// insertAfter inserts text on a new line after the first anchor match.
func insertAfter(content string, anchor *regexp.Regexp, text string) (string, bool) {
	loc := anchor.FindStringIndex(content)
	if loc == nil {
		return content, false
	}

	return content[:loc[1]] + "\n" + text + content[loc[1]:], true
}

// insertBefore inserts text followed by a blank line before the first anchor
// match.
func insertBefore(content string, anchor *regexp.Regexp, text string) (string, bool) {
	loc := anchor.FindStringIndex(content)
	if loc == nil {
		return content, false
	}

	return content[:loc[0]] + text + "\n" + content[loc[0]:], true
}

// replaceFirst substitutes the first anchor match with text.
func replaceFirst(content string, anchor *regexp.Regexp, text string) (string, bool) {
	loc := anchor.FindStringIndex(content)
	if loc == nil {
		return content, false
	}

	return content[:loc[0]] + text + content[loc[1]:], true
}
