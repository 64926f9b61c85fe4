//go:build tools
// +build tools

// Package tools tracks command-line tools used by the build but not imported
// by application code.
package tools

import (
	// swag regenerates docs/ from handler annotations
	_ "github.com/swaggo/swag/cmd/swag"
)
