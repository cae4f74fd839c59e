package config

import (
	stderrors "errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/rkm/internal/errors"
	"github.com/thoreinstein/rkm/internal/export"
)

// CurrentVersion is the only config schema version rkm understands.
const CurrentVersion = 1

// Validation errors for configuration fields.
var (
	// ErrUnsupportedVersion indicates a schema version rkm cannot read.
	ErrUnsupportedVersion = errors.New("unsupported config version")

	// ErrInvalidFormat indicates an export_format outside json, yaml, toml.
	ErrInvalidFormat = errors.New("invalid export format")

	// ErrInvalidRetention indicates a negative backup_retention.
	ErrInvalidRetention = errors.New("backup_retention must be >= 0")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version != CurrentVersion {
		errs = append(errs, &FieldError{Field: "version", Value: cfg.Version, Err: ErrUnsupportedVersion})
	}

	if _, err := export.ParseFormat(cfg.ExportFormat); err != nil {
		errs = append(errs, &FieldError{Field: "export_format", Value: cfg.ExportFormat, Err: ErrInvalidFormat})
	}

	if cfg.BackupRetention < 0 {
		errs = append(errs, ErrInvalidRetention)
	}

	for _, f := range []struct{ name, value string }{
		{"keymap", cfg.Keymap},
		{"resource_dir", cfg.ResourceDir},
	} {
		if err := validatePath(f.value); err != nil {
			errs = append(errs, &FieldError{Field: f.name, Value: f.value, Err: err})
		}
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	// Empty paths are valid (they mean "use default")
	if path == "" {
		return nil
	}

	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

// FieldError reports an invalid value for a named config field.
type FieldError struct {
	Field string
	Value any
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Field, e.Err, e.Value)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// joinErrors folds validation failures into one error that still matches
// each sentinel.
func joinErrors(errs []error) error {
	return stderrors.Join(errs...)
}
