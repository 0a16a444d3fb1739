package authenticator

import "time"

// TokenEngine generates and verifies signed tokens carrying an arbitrary
// payload object.
type TokenEngine interface {
	Generate(expiration time.Duration, obj any) (string, error)
	Verify(token string, obj any) error
}
