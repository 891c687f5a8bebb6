package chat

import "errors"

var (
	ErrInvalidContext = errors.New("invalid chat context")
	ErrEmptyMessage   = errors.New("message content is empty")
	ErrNoCompletion   = errors.New("assistant returned no completion")
)
