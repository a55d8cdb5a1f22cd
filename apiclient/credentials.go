package apiclient

import "encoding/base64"

// Credentials authenticate calls to the student API with HTTP Basic auth.
type Credentials struct {
	Username string
	Password string
}

// AuthorizationHeader returns the Basic Authorization header value.
func (c Credentials) AuthorizationHeader() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(c.Username+":"+c.Password))
}

// String hides the password.
func (c Credentials) String() string {
	return c.Username + ":[REDACTED]"
}

// GoString hides the password from %#v.
func (c Credentials) GoString() string {
	return "apiclient.Credentials{Username:" + c.Username + ", Password:[REDACTED]}"
}
