package errors

// ErrorCategory says which part of the input or the tool an error belongs to.
// It decides how the error is shown to the author and which exit code the CLI uses.
type ErrorCategory string

const (
	// CategoryParse marks malformed page front matter.
	CategoryParse ErrorCategory = "parse"
	// CategoryConfig marks an invalid site configuration or settings file.
	CategoryConfig ErrorCategory = "config"
	// CategoryValidation marks a bad command line.
	CategoryValidation ErrorCategory = "validation"
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryRuntime    ErrorCategory = "runtime"
	CategoryInternal   ErrorCategory = "internal"
)

type categoryInfo struct {
	exitCode int
	heading  string // empty hides the message unless verbose
}

var categoryTable = map[ErrorCategory]categoryInfo{
	CategoryValidation: {exitCode: 2, heading: "Invalid usage"},
	CategoryParse:      {exitCode: 6, heading: "Front matter error"},
	CategoryConfig:     {exitCode: 7, heading: "Configuration error"},
	CategoryInternal:   {exitCode: 10},
	CategoryFileSystem: {exitCode: 11, heading: "File error"},
	CategoryRuntime:    {exitCode: 12, heading: "Error"},
}

// ExitCode is the process exit code for errors of this category.
func (c ErrorCategory) ExitCode() int {
	if info, ok := categoryTable[c]; ok {
		return info.exitCode
	}
	return 1
}

func (c ErrorCategory) heading() string {
	return categoryTable[c].heading
}

// ErrorSeverity indicates whether the command can go on.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // halts the command
	SeverityError   ErrorSeverity = "error"   // fails the current load only
	SeverityWarning ErrorSeverity = "warning" // reported, resolution continues
)
