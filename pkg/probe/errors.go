package probe

import "errors"

var (
	ErrInvalidSnapshot   = errors.New("invalid environment snapshot")
	ErrUnsupportedFormat = errors.New("unsupported snapshot format")
)
