package gengui

import "github.com/odvcencio/gengui/pkg/errors"

// Sentinels for errors.Is. Any *errors.Error with the same code matches.
var (
	ErrUnknownWidget  = errors.New(errors.ErrCodeUnknownWidget, "unknown widget")
	ErrConfiguration  = errors.New(errors.ErrCodeConfiguration, "invalid widget configuration")
	ErrNotFound       = errors.New(errors.ErrCodeNotFound, "widget not found")
	ErrMalformedInput = errors.New(errors.ErrCodeMalformedInput, "malformed document")
)
