package textpath

import (
	"errors"
	"fmt"
)

// Sentinel errors for path parsing.
var (
	// ErrUnknownCommand is returned for a command letter outside the path grammar.
	ErrUnknownCommand = errors.New("textpath: unknown path command")

	// ErrMissingNumber is returned when a command lacks one of its coordinates.
	ErrMissingNumber = errors.New("textpath: missing or malformed number")

	// ErrBadFlag is returned when an arc flag is not 0 or 1.
	ErrBadFlag = errors.New("textpath: arc flag must be 0 or 1")

	// ErrNoCurrentPoint is returned for a drawing command before any moveto.
	ErrNoCurrentPoint = errors.New("textpath: drawing command without current point")

	// ErrUnexpectedNumber is returned for a number that follows a command taking no parameters.
	ErrUnexpectedNumber = errors.New("textpath: unexpected number after closepath")
)

// ParseError describes where parsing a path string failed.
type ParseError struct {
	Offset  int  // byte offset into the path string
	Command byte // command being parsed, 0 if none
	Err     error
}

func (e *ParseError) Error() string {
	if e.Command == 0 {
		return fmt.Sprintf("textpath: parse error at offset %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("textpath: parse error in %q at offset %d: %v", e.Command, e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ConfigError reports a Config field holding an unusable value.
type ConfigError struct {
	Field string
	Value any
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("textpath: invalid config %s: %v", e.Field, e.Value)
}

// PresetError reports a preset parameter rejected by its constructor.
type PresetError struct {
	Kind  PresetKind
	Param string
	Value float64
}

func (e *PresetError) Error() string {
	return fmt.Sprintf("textpath: invalid %s %s: %g", e.Kind, e.Param, e.Value)
}
