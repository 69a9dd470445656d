package csrf

import "errors"

// ErrInvalid is returned when a submitted token is empty, unknown, expired
// or does not match the session's token.
var ErrInvalid = errors.New("csrf: invalid token")
