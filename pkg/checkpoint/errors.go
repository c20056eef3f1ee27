package checkpoint

import "errors"

var (
	ErrUnordered       = errors.New("checkpoints are not ordered newest to oldest")
	ErrInvalidInterval = errors.New("checkpoint interval is empty")
)
