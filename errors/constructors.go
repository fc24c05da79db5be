package errors

import (
	"fmt"
)

// PackNotFound creates an error for an icon pack package that is missing or uninstalled
func PackNotFound(packageID string) *LauncherError {
	return New(ErrCodePackNotFound, fmt.Sprintf("icon pack '%s' not found", packageID)).
		WithDetail("package", packageID)
}

// ParseFailed creates an appfilter parse error
func ParseFailed(packageID string, err error) *LauncherError {
	return Wrap(err, ErrCodeParseError, fmt.Sprintf("cannot read appfilter of '%s'", packageID)).
		WithDetail("package", packageID)
}

// DrawableNotFound creates an error for a drawable missing from a pack's resources
func DrawableNotFound(packageID, name string) *LauncherError {
	return New(ErrCodeDrawableNotFound,
		fmt.Sprintf("drawable '%s' not found in '%s'", name, packageID)).
		WithDetail("package", packageID).
		WithDetail("drawable", name)
}

// ImportInvalid creates an import validation error
func ImportInvalid(reason string) *LauncherError {
	return New(ErrCodeImportValidation, fmt.Sprintf("invalid snapshot: %s", reason))
}

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *LauncherError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *LauncherError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// PersistFailed wraps a backend write failure
func PersistFailed(backend string, err error) *LauncherError {
	return Wrap(err, ErrCodeStorePersist, "failed to persist configuration store").
		WithDetail("backend", backend)
}
