package redis

import "errors"

var (
	ErrFailedToParseConnString = errors.New("redis: failed to parse connection string")
	ErrNotReady                = errors.New("redis: did not become ready within the timeout")
	ErrEmptyConnection         = errors.New("redis: neither REDIS_URL nor SESSION_STORE_HOST is set")
	ErrHealthcheckFailed       = errors.New("redis: healthcheck failed")
)
