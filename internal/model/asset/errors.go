package asset

import "errors"

var (
	ErrNotFound   = errors.New("record not found")
	ErrBadPayload = errors.New("malformed payload")
)
