package memo

import "errors"

var (
	ErrNotFound           = errors.New("no classification recorded for environment")
	ErrStoreUnavailable   = errors.New("memo store unavailable")
	ErrEmptyEnvironmentID = errors.New("empty environment id")
	ErrCorruptEntry       = errors.New("memo entry cannot be decoded")
	ErrInvalidRedisURL    = errors.New("failed to parse redis connection string")
	ErrRedisNotReady      = errors.New("redis did not become ready within the given time period")
	ErrUnknownBackend     = errors.New("unknown memo backend")
	ErrMongoNotReady      = errors.New("failed to connect to mongo")
)
