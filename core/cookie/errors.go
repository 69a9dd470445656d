package cookie

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSecret is returned by signed and flash operations when the manager
	// was created without secrets.
	ErrNoSecret = errors.New("cookie: no signing secret configured")
	// ErrSecretTooShort is returned by New for secrets under 32 characters.
	ErrSecretTooShort = errors.New("cookie: secret must be at least 32 characters long")
	// ErrInvalidSignature means the value was tampered with or signed by an
	// unknown secret.
	ErrInvalidSignature = errors.New("cookie: signature verification failed")
	ErrNotFound         = errors.New("cookie: not found")
	ErrInvalidFormat    = errors.New("cookie: invalid format")
)

// ErrTooLarge is returned when the serialized Set-Cookie header exceeds the
// manager's size limit.
type ErrTooLarge struct {
	Name string
	Size int
	Max  int
}

func (e ErrTooLarge) Error() string {
	return fmt.Sprintf("cookie: %q size %d exceeds maximum %d bytes", e.Name, e.Size, e.Max)
}
