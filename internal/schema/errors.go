package schema

import "strings"

// Issue is a single constraint violation located by its JSON path,
// for example "links.items[0].url".
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError is returned when input cannot be coerced into an AppConfig.
// It lists every issue found, in document order.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		if is.Path == "" {
			parts = append(parts, is.Message)
			continue
		}
		parts = append(parts, is.Path+": "+is.Message)
	}
	return strings.Join(parts, "; ")
}

// SyntaxError wraps a failure to decode the raw text before validation.
type SyntaxError struct {
	Err error
}

func (e *SyntaxError) Error() string { return "invalid JSON: " + e.Err.Error() }

func (e *SyntaxError) Unwrap() error { return e.Err }
