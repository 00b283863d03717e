// Package configs ships the default runtime files written by the installer.
package configs

import "embed"

//go:embed SYSTEM.md
var FS embed.FS
