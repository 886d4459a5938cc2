package transaction

import "errors"

var (
	ErrNotFound      = errors.New("transaction not found")
	ErrInvalidReview = errors.New("reviewed account number is required")
)
