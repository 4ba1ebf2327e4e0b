// Package templates embeds the static template asset tree that monoforge
// materializes into generated monorepos. The layout mirrors the registry:
// assets/<category>/<template-key>/...
package templates

import "embed"

//go:embed all:assets
var FS embed.FS

// Root is the path prefix of the embedded asset tree.
const Root = "assets"
