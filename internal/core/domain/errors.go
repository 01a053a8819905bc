package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNoFile          = errors.New("no file provided")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrNoReadableText  = errors.New("no readable text")
	ErrNoClauses       = errors.New("no clauses detected")
	ErrInvalidInput    = errors.New("invalid input")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
