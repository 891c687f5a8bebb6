package assets

import "errors"

var (
	ErrAssetNotFound   = errors.New("asset not found")
	ErrInvalidKind     = errors.New("invalid asset kind")
	ErrInvalidCurrency = errors.New("invalid currency code")
	ErrDetailMismatch  = errors.New("asset details do not match kind")
)
