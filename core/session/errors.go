package session

import "errors"

var (
	// ErrInvalidSession is returned for an empty, unknown or expired token.
	ErrInvalidSession = errors.New("session: invalid session")
	// ErrActivationInProgress is returned when another activation for the
	// same user holds the activation lock.
	ErrActivationInProgress = errors.New("session: activation already in progress")
)
