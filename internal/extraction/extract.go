// Package extraction locates and parses JSON objects embedded in free-form
// LLM response text, falling back to caller-supplied defaults when no
// recoverable object exists.
package extraction

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Result reports the outcome of an extraction attempt. Expected parse
// failures are values, not errors: UsedFallback marks a degraded result.
type Result struct {
	Value        map[string]any
	UsedFallback bool
	Reason       string
}

// Anchor patterns of decreasing specificity. Each is tried in turn against
// the full text; the first pattern with any match determines the start
// position.
var (
	anchorKeyedObject = regexp.MustCompile(`\{\s*"[^"]+"\s*:\s*\{`)
	anchorKeyedString = regexp.MustCompile(`\{\s*"[^"]+"\s*:\s*"`)
	fenceMarker       = regexp.MustCompile("(?m)^\\s*```[a-zA-Z]*\\s*$")
)

// Extract locates the first JSON object in text and parses it. On any
// failure the fallback is returned unchanged. Never panics.
func Extract(text string, fallback map[string]any) map[string]any {
	return ExtractResult(text, "", fallback).Value
}

// ExtractWithAnchor behaves like Extract but probes for an expected
// top-level key before the generic anchor patterns.
func ExtractWithAnchor(text, expectedKey string, fallback map[string]any) map[string]any {
	return ExtractResult(text, expectedKey, fallback).Value
}

// ExtractResult runs the full extraction algorithm and reports whether the
// fallback was used.
func ExtractResult(text, expectedKey string, fallback map[string]any) Result {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Result{Value: fallback, UsedFallback: true, Reason: "empty input"}
	}

	// Fast path: the whole input is one JSON object
	if obj, ok := parseObject(trimmed); ok {
		return Result{Value: obj}
	}

	// Strip leading/trailing code-fence markers
	stripped := cleanFences(trimmed)
	if obj, ok := parseObject(stripped); ok {
		return Result{Value: obj}
	}

	// Anchor search: first pattern with any match wins
	start := findAnchor(stripped, expectedKey)
	if start >= 0 {
		candidate := scanObject(stripped, start)
		if obj, ok := parseObject(candidate); ok {
			return Result{Value: obj}
		}
	}

	// Second chance: strip every fence marker globally and rescan from the
	// first brace
	global := fenceMarker.ReplaceAllString(trimmed, "")
	global = strings.ReplaceAll(global, "```json", "")
	global = strings.ReplaceAll(global, "```", "")
	if idx := strings.Index(global, "{"); idx >= 0 {
		candidate := scanObject(global, idx)
		if obj, ok := parseObject(candidate); ok {
			return Result{Value: obj}
		}
	}

	return Result{Value: fallback, UsedFallback: true, Reason: "no parseable JSON object found"}
}

// parseObject attempts to decode s as a single JSON object
func parseObject(s string) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, false
	}
	if obj == nil {
		return nil, false
	}
	return obj, true
}

// cleanFences removes leading/trailing markdown code-fence markers
func cleanFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}
	return text
}

// findAnchor returns the index of the most specific anchor match, or -1.
// Patterns are tried in order against the whole text; the first pattern
// with any match determines the start position.
func findAnchor(text, expectedKey string) int {
	if expectedKey != "" {
		keyAnchor := regexp.MustCompile(fmt.Sprintf(`\{\s*%s\s*:`, regexp.QuoteMeta(fmt.Sprintf("%q", expectedKey))))
		if loc := keyAnchor.FindStringIndex(text); loc != nil {
			return loc[0]
		}
	}
	if loc := anchorKeyedObject.FindStringIndex(text); loc != nil {
		return loc[0]
	}
	if loc := anchorKeyedString.FindStringIndex(text); loc != nil {
		return loc[0]
	}
	return strings.Index(text, "{")
}

// scanObject walks forward from start tracking brace depth, skipping braces
// inside quoted strings and respecting backslash escapes. Returns the
// substring covering the balanced object, or best-effort to end of input
// when no closing brace is found.
func scanObject(text string, start int) string {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		ch := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return text[start : i+1]
				}
			}
		}
	}

	// Unterminated object: take the remainder of the input
	return text[start:]
}
