package xlsx

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the failures the codec can report.
type ErrorKind int

const (
	// KindIO indicates the container could not be read or written.
	KindIO ErrorKind = iota
	// KindInvalidFormat indicates the container is not a valid package
	// or a required part is absent.
	KindInvalidFormat
	// KindParse indicates malformed XML in a required part.
	KindParse
	// KindInvalidCoordinate indicates a malformed or out-of-range cell reference.
	KindInvalidCoordinate
	// KindWorksheetNotFound indicates a lookup by name or index failed.
	KindWorksheetNotFound
	// KindWorksheetExists indicates a sheet name is already in use.
	KindWorksheetExists
	// KindNamedRangeExists indicates a named range is already defined.
	KindNamedRangeExists
	// KindNoWorksheets indicates an operation on an empty workbook.
	KindNoWorksheets
	// KindCustom is for collaborator-specific failures.
	KindCustom
)

var kindNames = map[ErrorKind]string{
	KindIO:                "io",
	KindInvalidFormat:     "invalid format",
	KindParse:             "parse",
	KindInvalidCoordinate: "invalid coordinate",
	KindWorksheetNotFound: "worksheet not found",
	KindWorksheetExists:   "worksheet exists",
	KindNamedRangeExists:  "named range exists",
	KindNoWorksheets:      "no worksheets",
	KindCustom:            "custom",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error represents an error that occurred while reading or writing a
// spreadsheet package.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new Error of the given kind with a formatted message.
func NewError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError creates a new Error of the given kind wrapping an underlying cause.
func WrapError(kind ErrorKind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// ErrKind reports the kind of err, or KindCustom if err is not an *Error.
func ErrKind(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindCustom
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
