// Package profile implements customer document analysis: loading the input
// document, deriving a canonical customer profile via the LLM, and building
// deterministic fallback profiles when that path fails.
package profile

import (
	"encoding/json"
	"fmt"
	"os"
)

// MaxDocumentSize bounds input documents at 10MB
const MaxDocumentSize = 10 << 20

// LoadCustomerDocument reads and parses the customer JSON document.
// A missing file, oversized file, or malformed JSON is an InputError.
func LoadCustomerDocument(path string) (map[string]any, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &InputError{Path: path, Message: "cannot read file", Cause: err}
	}
	if info.Size() > MaxDocumentSize {
		return nil, &InputError{
			Path:    path,
			Message: fmt.Sprintf("file exceeds %d byte limit (%d bytes)", MaxDocumentSize, info.Size()),
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &InputError{Path: path, Message: "cannot read file", Cause: err}
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &InputError{Path: path, Message: "not valid JSON", Cause: err}
	}
	if raw == nil {
		return nil, &InputError{Path: path, Message: "document is not a JSON object"}
	}

	return raw, nil
}
