package domain

import "errors"

// ErrInvalidConfig marks a missing or malformed reaction-role configuration document.
// A bot without role mappings cannot run, so callers treat it as fatal.
var ErrInvalidConfig = errors.New("invalid bot config")
