package errors

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/sustainlog/internal/client"
	"github.com/julianstephens/sustainlog/internal/logger"
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %s", Describe(err))
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Describe renders err for a terminal. Field-level rejections from the
// collection are expanded to one "field: message" line each.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var verr *client.ValidationError
	if !stderrors.As(err, &verr) {
		return err.Error()
	}

	lines := []string{fmt.Sprintf("%s rejected by server", verr.Op)}
	for _, name := range verr.FieldNames() {
		for _, msg := range verr.Fields[name] {
			lines = append(lines, fmt.Sprintf("  %s: %s", name, msg))
		}
	}
	return strings.Join(lines, "\n")
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
