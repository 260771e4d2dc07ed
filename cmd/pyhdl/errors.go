package main

import "errors"

// Sentinel errors for command operations
var (
	ErrCheckFailed          = errors.New("one or more trees failed to normalize")
	ErrVerboseQuietTogether = errors.New("--verbose and --quiet are mutually exclusive")
)
