package report

import "errors"

var (
	ErrDeliveryFailed     = errors.New("report delivery failed")
	ErrPermanentFailure   = errors.New("permanent report failure")
	ErrMigrationFailed    = errors.New("failed to apply report migrations")
	ErrInvalidPGConfig    = errors.New("failed to parse postgres config")
	ErrPGNotReady         = errors.New("failed to open postgres connection")
	ErrUnknownSink        = errors.New("unknown report sink")
	ErrOpenSearchNotReady = errors.New("opensearch connection failed")
	ErrMissingBaseURL     = errors.New("http report sink requires a base url")
)
