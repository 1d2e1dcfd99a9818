package schema

import "encoding/json"

// Marshal encodes c compactly, the form written to storage.
func Marshal(c AppConfig) ([]byte, error) {
	return json.Marshal(c.Clone())
}

// MarshalIndent encodes c with two-space indentation, the export form.
func MarshalIndent(c AppConfig) ([]byte, error) {
	return json.MarshalIndent(c.Clone(), "", "  ")
}
