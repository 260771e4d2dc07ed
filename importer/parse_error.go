package importer

import (
	"errors"
	"strconv"
	"strings"
)

// ParseError aggregates the problems found while decoding one document.
type ParseError struct {
	Errors []error
}

func (e *ParseError) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no parse errors"
	case 1:
		return e.Errors[0].Error()
	}

	var sb strings.Builder

	sb.WriteString("multiple parse errors:")

	for i, err := range e.Errors {
		sb.WriteString("\n  [")
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteString("] ")
		sb.WriteString(err.Error())
	}

	return sb.String()
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *ParseError) Unwrap() []error {
	return e.Errors
}

// Add appends err, flattening nested ParseErrors.
func (e *ParseError) Add(err error) {
	if err == nil {
		return
	}

	if perr, ok := err.(*ParseError); ok {
		e.Errors = append(e.Errors, perr.Errors...)
	} else {
		e.Errors = append(e.Errors, err)
	}
}

// AsParseError extracts a *ParseError from err.
func AsParseError(err error) (*ParseError, bool) {
	var perr *ParseError
	if errors.As(err, &perr) {
		return perr, true
	}

	return nil, false
}
