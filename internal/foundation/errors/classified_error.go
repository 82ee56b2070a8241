package errors

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
)

// ClassifiedError is a categorized error that knows where in the input it happened.
type ClassifiedError struct {
	category ErrorCategory
	severity ErrorSeverity
	message  string
	cause    error

	file    string // source file, when known
	field   string // dotted path such as hero.actions[1].theme
	details []slog.Attr
}

// Error renders "[category:severity] file: field: message: cause", skipping empty parts.
func (e *ClassifiedError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s:%s] ", e.category, e.severity)
	if e.file != "" {
		b.WriteString(e.file)
		b.WriteString(": ")
	}
	if e.field != "" {
		b.WriteString(e.field)
		b.WriteString(": ")
	}
	b.WriteString(e.message)
	if e.cause != nil {
		b.WriteString(": ")
		b.WriteString(e.cause.Error())
	}
	return b.String()
}

func (e *ClassifiedError) Unwrap() error { return e.cause }

func (e *ClassifiedError) Category() ErrorCategory { return e.category }
func (e *ClassifiedError) Severity() ErrorSeverity { return e.severity }
func (e *ClassifiedError) Cause() error            { return e.cause }

// Message returns the message without location or cause.
func (e *ClassifiedError) Message() string { return e.message }

// Field returns the dotted path of the offending field, if any.
func (e *ClassifiedError) Field() string { return e.field }

// File returns the source file the error was found in, if any.
func (e *ClassifiedError) File() string { return e.file }

// Detail looks up an extra value attached with WithDetail.
func (e *ClassifiedError) Detail(key string) (any, bool) {
	for _, a := range e.details {
		if a.Key == key {
			return a.Value.Any(), true
		}
	}
	return nil, false
}

// Attrs returns the location and details as slog attributes.
func (e *ClassifiedError) Attrs() []slog.Attr {
	attrs := []slog.Attr{slog.String("category", string(e.category))}
	if e.file != "" {
		attrs = append(attrs, slog.String("file", e.file))
	}
	if e.field != "" {
		attrs = append(attrs, slog.String("field", e.field))
	}
	return append(attrs, e.details...)
}

// InFile returns a copy of e located in file. Resolvers that work on decoded
// data do not know the file; their callers add it.
func (e *ClassifiedError) InFile(file string) *ClassifiedError {
	c := *e
	c.file = file
	c.details = append([]slog.Attr(nil), e.details...)
	return &c
}

// Is matches another ClassifiedError with the same category and message.
func (e *ClassifiedError) Is(target error) bool {
	if other, ok := target.(*ClassifiedError); ok {
		return e.category == other.category && e.message == other.message
	}
	return false
}

func (e *ClassifiedError) IsCategory(category ErrorCategory) bool { return e.category == category }

// IsFatal reports whether the error halts the command.
func (e *ClassifiedError) IsFatal() bool { return e.severity == SeverityFatal }

// AsClassified finds the first ClassifiedError in err's chain.
func AsClassified(err error) (*ClassifiedError, bool) {
	var classified *ClassifiedError
	if stderrors.As(err, &classified) {
		return classified, true
	}
	return nil, false
}

// HasCategory checks if the first classified error in the chain belongs to category.
func HasCategory(err error, category ErrorCategory) bool {
	if classified, ok := AsClassified(err); ok {
		return classified.IsCategory(category)
	}
	return false
}

// IsParseError reports whether err is a front-matter ParseError.
func IsParseError(err error) bool { return HasCategory(err, CategoryParse) }

// IsConfigError reports whether err is a site ConfigError.
func IsConfigError(err error) bool { return HasCategory(err, CategoryConfig) }

// GetCategory extracts the category from an error, or returns CategoryInternal.
func GetCategory(err error) ErrorCategory {
	if classified, ok := AsClassified(err); ok {
		return classified.Category()
	}
	return CategoryInternal
}

// FieldOf returns the field path carried by err, or "".
func FieldOf(err error) string {
	if classified, ok := AsClassified(err); ok {
		return classified.Field()
	}
	return ""
}

// FileOf returns the source file carried by err, or "".
func FileOf(err error) string {
	if classified, ok := AsClassified(err); ok {
		return classified.File()
	}
	return ""
}
