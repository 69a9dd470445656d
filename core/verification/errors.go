package verification

import "errors"

// ErrInvalidToken is returned for an empty, unknown or expired token.
var ErrInvalidToken = errors.New("verification: invalid token")
