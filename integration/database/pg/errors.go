package pg

import "errors"

var (
	ErrFailedToParseConfig = errors.New("pg: failed to parse config")
	ErrNotReady            = errors.New("pg: database did not become ready within the timeout")
	ErrMigrationFailed     = errors.New("pg: migration failed")
	ErrHealthcheckFailed   = errors.New("pg: healthcheck failed")
)
