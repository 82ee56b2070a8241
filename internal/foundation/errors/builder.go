package errors

import "log/slog"

// ErrorBuilder assembles a ClassifiedError.
type ErrorBuilder struct {
	err ClassifiedError
}

// NewError starts an error of the given category with severity error.
func NewError(category ErrorCategory, message string) *ErrorBuilder {
	return &ErrorBuilder{err: ClassifiedError{category: category, severity: SeverityError, message: message}}
}

// WrapError starts an error that wraps err.
func WrapError(err error, category ErrorCategory, message string) *ErrorBuilder {
	return NewError(category, message).WithCause(err)
}

func (b *ErrorBuilder) WithSeverity(severity ErrorSeverity) *ErrorBuilder {
	b.err.severity = severity
	return b
}

func (b *ErrorBuilder) WithCause(err error) *ErrorBuilder {
	b.err.cause = err
	return b
}

// WithField records the dotted path of the offending field.
func (b *ErrorBuilder) WithField(path string) *ErrorBuilder {
	b.err.field = path
	return b
}

// InFile records the source file.
func (b *ErrorBuilder) InFile(file string) *ErrorBuilder {
	b.err.file = file
	return b
}

// WithDetail attaches an extra value; it shows up in verbose logs.
func (b *ErrorBuilder) WithDetail(key string, value any) *ErrorBuilder {
	b.err.details = append(b.err.details, slog.Any(key, value))
	return b
}

func (b *ErrorBuilder) Fatal() *ErrorBuilder   { return b.WithSeverity(SeverityFatal) }
func (b *ErrorBuilder) Warning() *ErrorBuilder { return b.WithSeverity(SeverityWarning) }

// Build returns the error. The builder can keep being used afterwards.
func (b *ErrorBuilder) Build() *ClassifiedError {
	e := b.err
	e.details = append([]slog.Attr(nil), b.err.details...)
	return &e
}

// ParseError starts a fatal front-matter error.
func ParseError(message string) *ErrorBuilder {
	return NewError(CategoryParse, message).Fatal()
}

// ConfigError starts a fatal site configuration error.
func ConfigError(message string) *ErrorBuilder {
	return NewError(CategoryConfig, message).Fatal()
}

// ValidationError starts a fatal usage error.
func ValidationError(message string) *ErrorBuilder {
	return NewError(CategoryValidation, message).Fatal()
}

func FileSystemError(message string) *ErrorBuilder {
	return NewError(CategoryFileSystem, message)
}

func RuntimeError(message string) *ErrorBuilder {
	return NewError(CategoryRuntime, message).Fatal()
}

func InternalError(message string) *ErrorBuilder {
	return NewError(CategoryInternal, message).Fatal()
}
