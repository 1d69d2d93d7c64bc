// Package patterns embeds the default plaintext pattern corpus.
package patterns

import "embed"

// FS holds the bundled .cells files at its root.
//
//go:embed *.cells
var FS embed.FS
