// Package students implements the front-end's student operations on top of
// the apiclient integration layer: creating a student, listing student ages,
// and listing full student records.
//
// Input is validated locally before any network call. Failures are returned
// as *ValidationError or *APIError; both carry a user-facing message that
// never exposes transport details.
package students
