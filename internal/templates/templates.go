// Package templates embeds the server-rendered HTML pages so the
// router works regardless of the working directory.
package templates

import "embed"

//go:embed *.html
var FS embed.FS
