package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// CLIErrorAdapter reports errors to the site author and picks the exit code.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	out     io.Writer
	exit    func(int)
}

// NewCLIErrorAdapter creates an adapter writing to stderr and exiting the process.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
		out:     os.Stderr,
		exit:    os.Exit,
	}
}

// ExitCodeFor returns 0 for nil, the category's code for classified errors and 1 otherwise.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	if classified, ok := AsClassified(err); ok {
		return classified.Category().ExitCode()
	}
	return 1
}

// FormatError renders err for the author. Verbose mode shows the raw chain.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	classified, ok := AsClassified(err)
	if !ok {
		return fmt.Sprintf("Error: %v", err)
	}
	if a.verbose {
		return err.Error()
	}

	heading := classified.Category().heading()
	if heading == "" {
		return "Internal error occurred (use -v for details)"
	}
	return heading + ": " + authorMessage(classified)
}

// authorMessage reads like "config.yaml: link is not a valid path (field "nav[1].link")".
func authorMessage(err *ClassifiedError) string {
	msg := err.Message()
	if err.Field() != "" {
		msg = fmt.Sprintf("%s (field %q)", msg, err.Field())
	}
	if err.File() != "" {
		msg = err.File() + ": " + msg
	}
	if err.Cause() != nil {
		msg = fmt.Sprintf("%s: %v", msg, err.Cause())
	}
	return msg
}

// HandleError reports err and exits the process with the matching code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}

	if a.verbose {
		a.logError(err)
	}
	_, _ = fmt.Fprintln(a.out, a.FormatError(err))
	a.exit(a.ExitCodeFor(err))
}

func (a *CLIErrorAdapter) logError(err error) {
	classified, ok := AsClassified(err)
	if !ok {
		a.logger.Error("Unclassified error", "error", err)
		return
	}

	level := slog.LevelError
	if classified.Severity() == SeverityWarning {
		level = slog.LevelWarn
	}
	a.logger.LogAttrs(context.Background(), level, classified.Message(), classified.Attrs()...)
}
