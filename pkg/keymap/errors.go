package keymap

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for keymap line parsing. Every *ParseError unwraps to
// exactly one of these, so callers can branch with errors.Is.
var (
	ErrMissingField       = errors.New("missing field")
	ErrInvalidNumber      = errors.New("invalid number")
	ErrInvalidModifier    = errors.New("invalid modifier code")
	ErrInvalidKeyCode     = errors.New("invalid key code")
	ErrInvalidSection     = errors.New("invalid section code")
	ErrInvalidTermination = errors.New("invalid termination behavior")
	ErrInvalidTag         = errors.New("invalid entry tag")
	ErrInvalidCommandID   = errors.New("invalid command id")
	ErrLineTooLong        = errors.New("line too long")
)

// ErrInvalidEntry is returned by Validate and Save for entries built in code
// that could never have come out of ParseLine.
var ErrInvalidEntry = errors.New("invalid entry")

// lineTag is used in errors raised before a tag has been recognised.
const lineTag = "<line>"

// ParseError describes why a single keymap line could not be parsed.
type ParseError struct {
	// Tag is the entry tag being parsed (KEY, SCR, ACT) or "<line>".
	Tag string
	// Field names the offending field, e.g. "modifiers" or "section".
	Field string
	// Value is the raw token that failed, if there was one.
	Value string
	// Err is one of the package sentinel errors.
	Err error
	// Cause is the lower-level error, e.g. from strconv, if any.
	Cause error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%s entry: %s: %v", e.Tag, e.Field, e.Err)
	if e.Value != "" {
		msg += fmt.Sprintf(" %q", e.Value)
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(" (%v)", e.Cause)
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Kind returns a short stable identifier for the error category, suitable for
// machine-readable diagnostics.
func (e *ParseError) Kind() string {
	switch {
	case errors.Is(e.Err, ErrMissingField):
		return "missing_field"
	case errors.Is(e.Err, ErrInvalidNumber):
		return "invalid_number"
	case errors.Is(e.Err, ErrInvalidModifier):
		return "invalid_modifier"
	case errors.Is(e.Err, ErrInvalidKeyCode):
		return "invalid_key_code"
	case errors.Is(e.Err, ErrInvalidSection):
		return "invalid_section"
	case errors.Is(e.Err, ErrInvalidTermination):
		return "invalid_termination"
	case errors.Is(e.Err, ErrInvalidTag):
		return "invalid_tag"
	case errors.Is(e.Err, ErrInvalidCommandID):
		return "invalid_command_id"
	case errors.Is(e.Err, ErrLineTooLong):
		return "line_too_long"
	default:
		return "unknown"
	}
}

func missingField(tag, field string) *ParseError {
	return &ParseError{Tag: tag, Field: field, Err: ErrMissingField}
}

func invalidNumber(tag, field, value string, cause error) *ParseError {
	return &ParseError{Tag: tag, Field: field, Value: value, Err: ErrInvalidNumber, Cause: cause}
}
