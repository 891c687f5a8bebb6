package family

import "errors"

var (
	ErrMemberNotFound      = errors.New("family member not found")
	ErrInvalidRelationship = errors.New("invalid relationship")
)
