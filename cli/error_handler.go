package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/ovehbe/710Launcher-sub000/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
}

// NewErrorHandler creates a new error handler writing to stderr
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		Out:     os.Stderr,
	}
}

// Handle prints a hint for err based on its code and returns err unchanged
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}
	launcherErr, _ := err.(*errors.LauncherError)

	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(h.Out, "❌ Configuration file not found. Remove --config to run with defaults.\n")

	case errors.ErrCodeConfigInvalid:
		fmt.Fprintf(h.Out, "❌ %v\n", err)
		fmt.Fprintf(h.Out, "Check launcher.yml; store.backend must be file, sqlite or memory.\n")

	case errors.ErrCodePackNotFound:
		if launcherErr != nil {
			fmt.Fprintf(h.Out, "❌ Icon pack '%v' is not installed\n", launcherErr.Details["package"])
		} else {
			fmt.Fprintf(h.Out, "❌ Icon pack is not installed\n")
		}
		fmt.Fprintf(h.Out, "Run 'launcherctl packs' to see available packs.\n")

	case errors.ErrCodeParseError:
		fmt.Fprintf(h.Out, "❌ %v\n", err)
		fmt.Fprintf(h.Out, "The pack's appfilter.xml is missing or malformed.\n")

	case errors.ErrCodeDrawableNotFound:
		if launcherErr != nil {
			fmt.Fprintf(h.Out, "❌ Drawable '%v' not found in '%v'\n",
				launcherErr.Details["drawable"], launcherErr.Details["package"])
		}
		fmt.Fprintf(h.Out, "Run 'launcherctl icons <package>' to list drawable names.\n")

	case errors.ErrCodeImportValidation:
		fmt.Fprintf(h.Out, "❌ %v\n", err)
		fmt.Fprintf(h.Out, "The configuration was left unchanged.\n")

	default:
		fmt.Fprintf(h.Out, "❌ Error: %v\n", err)
	}

	if h.Verbose && launcherErr != nil {
		fmt.Fprintf(h.Out, "\nError details:\n%s\n", launcherErr.ToJSON())
	}
	return err
}
