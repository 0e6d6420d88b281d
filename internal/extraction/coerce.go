package extraction

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// labelKeys are the sub-keys probed when coercing a map to a string
var labelKeys = []string{"name", "title", "label", "description", "value", "text", "issue", "requirement"}

// CoerceString converts an arbitrary decoded JSON value to a string.
// Maps are probed for a recognizable label sub-key before being stringified
// whole; nil and empty values become the default.
func CoerceString(v any, def string) string {
	switch s := v.(type) {
	case nil:
		return def
	case string:
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			return def
		}
		return trimmed
	case map[string]any:
		for _, key := range labelKeys {
			if inner, ok := s[key]; ok {
				if str, isStr := inner.(string); isStr && strings.TrimSpace(str) != "" {
					return strings.TrimSpace(str)
				}
			}
		}
		return stringify(s)
	default:
		return stringify(v)
	}
}

// CoerceStringList converts an arbitrary decoded JSON value to a list of
// strings: lists are stringified element-wise, maps contribute their values
// in key order, scalars become a single-element list, nil becomes empty.
func CoerceStringList(v any) []string {
	switch items := v.(type) {
	case nil:
		return []string{}
	case []any:
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s := CoerceString(item, ""); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		out := make([]string, 0, len(items))
		for _, item := range items {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(items))
		for k := range items {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]string, 0, len(items))
		for _, k := range keys {
			if s := CoerceString(items[k], ""); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if trimmed := strings.TrimSpace(items); trimmed != "" {
			return []string{trimmed}
		}
		return []string{}
	default:
		return []string{stringify(v)}
	}
}

// BuildFunc synthesizes one uniform object from a raw element. The label is
// non-empty when the element came from a map key or a bare string; raw is
// nil for bare strings.
type BuildFunc func(label string, raw map[string]any) map[string]any

// CoerceToList converts a collection-valued field to a uniform list of
// objects. It accepts a list of objects, a mapping of key to object (the map
// key becomes the label when the object lacks one), a bare list of strings,
// or a single object.
func CoerceToList(v any, build BuildFunc) []map[string]any {
	switch items := v.(type) {
	case nil:
		return []map[string]any{}
	case []any:
		out := make([]map[string]any, 0, len(items))
		for _, item := range items {
			switch elem := item.(type) {
			case map[string]any:
				out = append(out, build("", elem))
			case string:
				if strings.TrimSpace(elem) != "" {
					out = append(out, build(strings.TrimSpace(elem), nil))
				}
			default:
				out = append(out, build(stringify(item), nil))
			}
		}
		return out
	case map[string]any:
		if mapOfObjects(items) {
			keys := make([]string, 0, len(items))
			for k := range items {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			out := make([]map[string]any, 0, len(items))
			for _, k := range keys {
				inner, _ := items[k].(map[string]any)
				out = append(out, build(k, inner))
			}
			return out
		}
		// A single flat object becomes a one-element list
		return []map[string]any{build("", items)}
	case string:
		if strings.TrimSpace(items) == "" {
			return []map[string]any{}
		}
		return []map[string]any{build(strings.TrimSpace(items), nil)}
	default:
		return []map[string]any{}
	}
}

// mapOfObjects reports whether every value in the map is itself an object
func mapOfObjects(m map[string]any) bool {
	if len(m) == 0 {
		return false
	}
	for _, v := range m {
		if _, ok := v.(map[string]any); !ok {
			return false
		}
	}
	return true
}

// PickValue returns the first candidate key present in the map with a
// non-empty value.
func PickValue(m map[string]any, keys ...string) (any, bool) {
	for _, key := range keys {
		v, ok := m[key]
		if !ok || isEmpty(v) {
			continue
		}
		return v, true
	}
	return nil, false
}

// FindNested searches the map for any candidate key, checking the current
// level before descending into nested maps and lists. Keys are tried in
// priority order at each level.
func FindNested(v any, keys ...string) (any, bool) {
	switch node := v.(type) {
	case map[string]any:
		if found, ok := PickValue(node, keys...); ok {
			return found, true
		}
		// Descend in sorted key order so lookups stay deterministic
		childKeys := make([]string, 0, len(node))
		for k := range node {
			childKeys = append(childKeys, k)
		}
		sort.Strings(childKeys)
		for _, k := range childKeys {
			if found, ok := FindNested(node[k], keys...); ok {
				return found, true
			}
		}
	case []any:
		for _, item := range node {
			if found, ok := FindNested(item, keys...); ok {
				return found, true
			}
		}
	}
	return nil, false
}

// isEmpty reports whether a decoded JSON value carries no usable content
func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	default:
		return false
	}
}

// stringify applies the deterministic fallback conversion for values whose
// type mismatches the schema
func stringify(v any) string {
	if data, err := json.Marshal(v); err == nil {
		return string(data)
	}
	return fmt.Sprintf("%v", v)
}
