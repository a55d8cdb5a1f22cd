// Package secret resolves credentials for the student API from configuration.
//
// Configuration values may be literals, may reference environment variables
// with ${VAR}, or may point at a secret store with the "secretref:" prefix:
//
//	API_PASSWORD=secretref:file:/run/secrets/api_password
//	API_PASSWORD=secretref:env:VAULT_INJECTED_PASSWORD
//
// Two providers ship with the package: "env" and "file". Additional providers
// can be added through a Registry. Resolved values are never logged.
package secret
