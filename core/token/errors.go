package token

import "errors"

var (
	ErrRead       = errors.New("token: failed to read record")
	ErrWrite      = errors.New("token: failed to write record")
	ErrRefresh    = errors.New("token: failed to refresh record expiration")
	ErrExpiration = errors.New("token: failed to expire record")

	// ErrEncode and ErrDecode are not store failures: the payload could not be
	// marshalled, or a stored record is not valid JSON for the destination.
	ErrEncode = errors.New("token: failed to encode payload")
	ErrDecode = errors.New("token: failed to decode record")
)
