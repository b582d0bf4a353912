package evaluator

import (
	"errors"
	"fmt"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrSyntax          = errors.New("syntax error")
	ErrUnresolvedField = errors.New("unresolved field")
	ErrUnsupported     = errors.New("unsupported construct")
	ErrConfig          = errors.New("invalid configuration")
)

// SyntaxError reports malformed, incomplete or empty input.
type SyntaxError struct {
	Offset  int    // byte offset of the offending token
	Token   string // offending token text, empty at end of input
	Message string
}

func (e *SyntaxError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("syntax error at offset %d: %s", e.Offset, e.Message)
	}
	return fmt.Sprintf("syntax error at offset %d near %q: %s", e.Offset, e.Token, e.Message)
}

func (e *SyntaxError) Is(target error) bool { return target == ErrSyntax }

// UnresolvedFieldError reports a field reference that cannot be bound to
// exactly one registered table.
type UnresolvedFieldError struct {
	Qualifier string
	Column    string
	Reason    string
}

func (e *UnresolvedFieldError) Error() string {
	ref := e.Column
	if e.Qualifier != "" {
		ref = e.Qualifier + "." + e.Column
	}
	return fmt.Sprintf("unresolved field %q: %s", ref, e.Reason)
}

func (e *UnresolvedFieldError) Is(target error) bool { return target == ErrUnresolvedField }

// UnsupportedConstructError reports valid SQL outside the supported subset.
type UnsupportedConstructError struct {
	Construct string
	Message   string
}

func (e *UnsupportedConstructError) Error() string {
	return fmt.Sprintf("unsupported %s: %s", e.Construct, e.Message)
}

func (e *UnsupportedConstructError) Is(target error) bool { return target == ErrUnsupported }

// ConfigError reports an invalid table list passed to New.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return "invalid table configuration: " + e.Message
}

func (e *ConfigError) Is(target error) bool { return target == ErrConfig }
