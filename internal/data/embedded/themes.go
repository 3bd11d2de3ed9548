// Package embedded holds the data files compiled into the lpub binary: console themes
// and sample models.
package embedded

import "embed"

// ThemesFS contains the console theme YAML files, one per theme.
//
//go:embed themes/*.yaml
var ThemesFS embed.FS
