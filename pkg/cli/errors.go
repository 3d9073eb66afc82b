package cli

import "errors"

// Common CLI errors
var (
	ErrNoFiles          = errors.New("no documents given - pass one or more with -f")
	ErrValidationFailed = errors.New("validation failed")
	ErrCountNeedsEntity = errors.New("--count requires --entity")
	ErrFileExists       = errors.New("file already exists - use --force to overwrite")
)
