package auth

import "github.com/google/uuid"

// NewSessionToken generates an opaque session token stored server-side
// and handed to the client in a cookie.
func NewSessionToken() string {
	return uuid.New().String()
}
