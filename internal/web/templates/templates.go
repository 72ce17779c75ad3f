// Package templates embeds the HTML templates for the admin pages.
package templates

import "embed"

//go:embed base.html pages/*.html partials/*.html
var FS embed.FS
