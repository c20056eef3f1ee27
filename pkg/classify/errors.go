package classify

import "errors"

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownField    = errors.New("unknown result field")
)
