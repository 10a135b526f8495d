// Package web provides the embedded front-end assets. The single-page
// client is compiled into web/static/ and served from the binary; in local
// development it may only contain the index shell.
package web

import "embed"

// StaticFS embeds the web/static/ directory tree.
//
//go:embed all:static
var StaticFS embed.FS
