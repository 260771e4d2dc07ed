package pyhdl

import "errors"

// Common errors used throughout the pyhdl packages
var (
	// Simplifier errors

	// ErrStructuralAssumption is returned when the input container does not hold a
	// function definition as its first statement.
	ErrStructuralAssumption = errors.New("structural assumption violated")
	// ErrMalformedSlice indicates a slice expression that carries a step component.
	ErrMalformedSlice = errors.New("malformed slice: step is not supported")
	// ErrUnhandledNodeKind indicates a node kind without a rewrite rule.
	ErrUnhandledNodeKind = errors.New("unhandled node kind")

	// Importer errors

	// ErrInvalidTree indicates a serialized tree is missing a required field or has a field of the wrong shape.
	ErrInvalidTree = errors.New("invalid tree")
	// ErrNoTreeBlock indicates a Markdown document had no yaml or json fenced block.
	ErrNoTreeBlock            = errors.New("no yaml or json code block found")
	ErrUnsupportedInputFormat = errors.New("unsupported input format")

	// Dump errors

	ErrUnsupportedOutputFormat = errors.New("unsupported output format")
)
