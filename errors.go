package xdiff

import (
	"fmt"

	"github.com/vortex/xdiff/xmlformat"
)

// InvalidInputError reports that the differ was handed unusable input or
// used out of order — a nil tree, a second Diff on the same Differ, or
// Format called before Diff.
type InvalidInputError struct {
	Reason string
	Cause  error
}

func (e *InvalidInputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("xdiff: invalid input: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("xdiff: invalid input: %s", e.Reason)
}

func (e *InvalidInputError) Unwrap() error { return e.Cause }

// PathNotFoundError reports that an xpath step in an edit script resolved
// to zero matches while rendering a formatted document. It is an alias for
// the type xmlformat.Formatter.Format actually constructs, kept under this
// name so callers can match on xdiff.PathNotFoundError without reaching
// into the xmlformat package directly.
type PathNotFoundError = xmlformat.PathNotFoundError

// AmbiguousPathError reports that an unpredicated xpath step resolved to
// more than one match — the core never generates such a path itself, so
// this indicates a caller-supplied script or a corrupted document. Alias
// for xmlformat.AmbiguousPathError; see PathNotFoundError.
type AmbiguousPathError = xmlformat.AmbiguousPathError

// ConfigurationError reports contradictory formatter or matcher
// configuration, e.g. a tag listed as both single and dual formatting.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("xdiff: configuration error: %s", e.Reason)
}
