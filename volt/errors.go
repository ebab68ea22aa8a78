package volt

import (
	"fmt"

	"github.com/npillmayer/fontvolt/core"
)

// SyntaxError is reported for malformed VOLT sources.
type SyntaxError struct {
	Msg      string
	Location Location
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Location, e.Msg)
}

// ErrorCode returns core.ESYNTAX.
func (e *SyntaxError) ErrorCode() int {
	return core.ESYNTAX
}

// UserMessage returns the error text including the location.
func (e *SyntaxError) UserMessage() string {
	return e.Error()
}

// Class namespaces. Glyph classes and mark attachment classes are independent
// of each other.
const (
	GlyphClassNamespace      = "glyph class"
	MarkAttachClassNamespace = "mark attachment class"
)

// ConflictingClassError is reported when a glyph is assigned to a class
// different from a class it has been assigned to before.
type ConflictingClassError struct {
	Namespace    string // GlyphClassNamespace or MarkAttachClassNamespace
	Glyph        string
	Class        int      // class of the rejected assignment
	Location     Location // location of the rejected assignment
	PrevClass    int
	PrevLocation Location
}

func (e *ConflictingClassError) Error() string {
	return fmt.Sprintf("%s: glyph %q was assigned to %s %d at %s, cannot assign %s %d",
		e.Location, e.Glyph, e.Namespace, e.PrevClass, e.PrevLocation, e.Namespace, e.Class)
}

// ErrorCode returns core.ECONFLICT.
func (e *ConflictingClassError) ErrorCode() int {
	return core.ECONFLICT
}

// UserMessage returns the error text including both locations.
func (e *ConflictingClassError) UserMessage() string {
	return e.Error()
}

// Error is a semantic error in a VOLT source, other than conflicting classes.
type Error struct {
	Msg      string
	Location Location
	Code     int
}

// Errorf creates a semantic error for a location.
func Errorf(loc Location, code int, format string, v ...interface{}) *Error {
	return &Error{Msg: fmt.Sprintf(format, v...), Location: loc, Code: code}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Location, e.Msg)
}

// ErrorCode returns the error's code.
func (e *Error) ErrorCode() int {
	return e.Code
}

// UserMessage returns the error text including the location.
func (e *Error) UserMessage() string {
	return e.Error()
}

var _ core.AppError = &SyntaxError{}
var _ core.AppError = &ConflictingClassError{}
var _ core.AppError = &Error{}
