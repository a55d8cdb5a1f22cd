// Package auth authenticates inbound requests to the front-end's JSON routes.
//
// Two schemes are supported: HS256 JWT bearer tokens and HTTP Basic
// credentials. [New] combines whichever are configured into a single
// [Authenticator]; [Verify] runs it against request headers.
package auth
