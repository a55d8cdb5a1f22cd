// Package config loads studentops settings from defaults, an optional YAML
// file, a .env file and the environment, in increasing precedence.
//
// Credential values may be written as ${VAR}, secretref:env:NAME or
// secretref:file:/path and are resolved after loading. Any other `$` is
// kept literally. In a .env file, single-quote values that contain `$`.
package config
