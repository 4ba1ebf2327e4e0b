// Package registry holds the built-in template catalog and resolves
// bracket-notation name inputs against it.
package registry

import (
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind selects which part of the catalog a lookup searches. Apps draw from
// every category except packages; packages draw only from packages.
type Kind string

const (
	KindApps     Kind = "apps"
	KindPackages Kind = "packages"
)

// BlankTemplate is the sentinel key for the minimal generated skeleton. It
// never appears in the catalog.
const BlankTemplate = "blank"

// categoryPackages is the one category reserved for shared workspace packages.
const categoryPackages = "packages"

// TemplateInfo describes one scaffoldable template.
type TemplateInfo struct {
	Name        string // human-readable name
	Description string
	Path        string // asset directory relative to the embedded root
}

// Category groups templates that serve the same role in a monorepo. Its
// display label is derived from the key via DisplayName.
type Category struct {
	Key         string
	Description string
	Templates   map[string]TemplateInfo
}

// Registry is the immutable template catalog. Lookups are read-only, so a
// single Registry is safe for concurrent use.
type Registry struct {
	categories []Category
}

// Default returns the built-in catalog.
func Default() *Registry {
	return &Registry{categories: []Category{
		{
			Key:         "backend",
			Description: "Server-side applications",
			Templates: map[string]TemplateInfo{
				"express": {Name: "Express", Description: "Express server with CORS and health routes", Path: "backend/express"},
				"hono":    {Name: "Hono", Description: "Hono server for Bun with CORS and health routes", Path: "backend/hono"},
				"nestjs":  {Name: "NestJS", Description: "NestJS application with a starter module", Path: "backend/nestjs"},
			},
		},
		{
			Key:         "frontend",
			Description: "Web applications",
			Templates: map[string]TemplateInfo{
				"react-vite":    {Name: "React + Vite", Description: "React SPA bundled with Vite", Path: "frontend/react-vite"},
				"react-webpack": {Name: "React + Webpack", Description: "React SPA bundled with Webpack", Path: "frontend/react-webpack"},
				"nextjs":        {Name: "Next.js", Description: "Next.js app-router application", Path: "frontend/nextjs"},
				"nextjs-solito": {Name: "Next.js + Solito", Description: "Next.js wired for cross-platform navigation", Path: "frontend/nextjs-solito"},
				"react-router":  {Name: "React Router", Description: "React Router framework-mode application", Path: "frontend/react-router"},
				"remix":         {Name: "Remix", Description: "Remix full-stack application", Path: "frontend/remix"},
			},
		},
		{
			Key:         "native",
			Description: "Mobile applications",
			Templates: map[string]TemplateInfo{
				"react-native-expo": {Name: "React Native + Expo", Description: "Expo-managed React Native app", Path: "native/react-native-expo"},
				"react-native-bare": {Name: "React Native", Description: "Bare React Native app", Path: "native/react-native-bare"},
			},
		},
		{
			Key:         categoryPackages,
			Description: "Shared workspace packages",
			Templates: map[string]TemplateInfo{
				"ui":        {Name: "UI", Description: "Shared web component library", Path: "packages/ui"},
				"ui-native": {Name: "UI Native", Description: "Shared React Native component library", Path: "packages/ui-native"},
				"hooks":     {Name: "Hooks", Description: "Shared React hooks", Path: "packages/hooks"},
				"utils":     {Name: "Utils", Description: "Shared utility functions", Path: "packages/utils"},
				"schemas":   {Name: "Schemas", Description: "Shared zod validation schemas", Path: "packages/schemas"},
			},
		},
	}}
}

// Categories returns the catalog's categories in declaration order.
func (r *Registry) Categories() []Category {
	return r.categories
}

// Get looks a template key up across the whole catalog, returning its info
// and category key.
func (r *Registry) Get(template string) (TemplateInfo, string, bool) {
	for _, cat := range r.categories {
		if info, ok := cat.Templates[template]; ok {
			return info, cat.Key, true
		}
	}

	return TemplateInfo{}, "", false
}

// Find looks a template key up within the categories visible to kind.
func (r *Registry) Find(template string, kind Kind) (TemplateInfo, string, bool) {
	for _, cat := range r.categories {
		if !cat.visibleTo(kind) {
			continue
		}
		if info, ok := cat.Templates[template]; ok {
			return info, cat.Key, true
		}
	}

	return TemplateInfo{}, "", false
}

// Keys returns the sorted template keys visible to kind, used for listings
// and error messages.
func (r *Registry) Keys(kind Kind) []string {
	var keys []string
	for _, cat := range r.categories {
		if !cat.visibleTo(kind) {
			continue
		}
		for key := range cat.Templates {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	return keys
}

// visibleTo reports whether the category participates in lookups for kind.
func (c Category) visibleTo(kind Kind) bool {
	if kind == KindPackages {
		return c.Key == categoryPackages
	}

	return c.Key != categoryPackages
}

var titleCaser = cases.Title(language.English)

// DisplayName renders a template key as a title-cased label for prompts and
// listings, e.g. "react-vite" becomes "React-Vite".
func DisplayName(key string) string {
	return titleCaser.String(key)
}
