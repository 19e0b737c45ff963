// Package web embeds the shell's static fragments.
package web

import "embed"

// FS holds the fragments under src/pages, addressed the same way the route
// table addresses them.
//
//go:embed src/pages/*.html
var FS embed.FS
