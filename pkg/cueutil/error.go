// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue/errors"
)

// ValidationError reports a single invalid field of a CUE document.
type ValidationError struct {
	FilePath string
	// CUEPath is the field in JSON-path notation, e.g. "build.emit[1]".
	CUEPath string
	Message string
}

func (e *ValidationError) Error() string {
	if e.CUEPath != "" {
		return fmt.Sprintf("%s: %s: %s", e.FilePath, e.CUEPath, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

// FormatError rewrites a CUE error so every line reads
// "<file>: <json-path>: <message>". Each CUE error becomes a
// *ValidationError reachable through errors.As. Non-CUE errors are prefixed
// with the file name and wrapped.
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	cueErrors := errors.Errors(err)
	if len(cueErrors) == 0 {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	issues := make([]*ValidationError, 0, len(cueErrors))
	for _, e := range cueErrors {
		path := formatPath(errors.Path(e))
		msg := e.Error()
		if path != "" && strings.HasPrefix(msg, path) {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, path), ":"))
		}
		issues = append(issues, &ValidationError{FilePath: filePath, CUEPath: path, Message: msg})
	}

	if len(issues) == 1 {
		return issues[0]
	}
	return &validationErrors{filePath: filePath, issues: issues}
}

// validationErrors lists every invalid field of one document.
type validationErrors struct {
	filePath string
	issues   []*ValidationError
}

func (e *validationErrors) Error() string {
	lines := make([]string, len(e.issues))
	for i, ve := range e.issues {
		lines[i] = strings.TrimPrefix(ve.Error(), e.filePath+": ")
	}
	return fmt.Sprintf("%s: validation failed:\n  %s", e.filePath, strings.Join(lines, "\n  "))
}

// Unwrap exposes each *ValidationError to errors.As.
func (e *validationErrors) Unwrap() []error {
	errs := make([]error, len(e.issues))
	for i, ve := range e.issues {
		errs[i] = ve
	}
	return errs
}

// formatPath turns CUE's ["build", "emit", "1"] into "build.emit[1]".
func formatPath(path []string) string {
	var b strings.Builder
	for i, part := range path {
		switch {
		case i > 0 && isIndex(part):
			b.WriteString("[" + part + "]")
		case i > 0:
			b.WriteString("." + part)
		default:
			b.WriteString(part)
		}
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// CheckFileSize fails when data is larger than maxSize bytes.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes", filename, len(data), maxSize)
	}
	return nil
}
