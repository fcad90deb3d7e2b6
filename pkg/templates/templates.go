// Package templates provides embedded configuration templates.
package templates

import _ "embed"

// ConfigYAML is the config.yaml written on the first run.
//
//go:embed config.yaml
var ConfigYAML string
