package mcp

import "fmt"

// Arguments holds the argument object of a tools/call request. Lookup
// failures for required keys are reported as plain errors and surface in
// the tool's error envelope; they are never protocol-level failures.
type Arguments map[string]interface{}

// String returns the named required string argument.
func (a Arguments) String(key string) (string, error) {
	v, ok := a[key]
	if !ok {
		return "", fmt.Errorf("missing required argument: %s", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %s: expected string, got %T", key, v)
	}
	return s, nil
}

// StringOr returns the named string argument, or fallback when it is
// absent or not a string.
func (a Arguments) StringOr(key, fallback string) string {
	if s, ok := a[key].(string); ok {
		return s
	}
	return fallback
}

// IntOr returns the named integer argument, or fallback when it is absent
// or not a number. JSON numbers decode as float64 and are truncated.
func (a Arguments) IntOr(key string, fallback int) int {
	switch n := a[key].(type) {
	case float64:
		return int(n)
	case int:
		return n
	default:
		return fallback
	}
}

// StringSlice returns the named required list-of-strings argument.
func (a Arguments) StringSlice(key string) ([]string, error) {
	v, ok := a[key]
	if !ok {
		return nil, fmt.Errorf("missing required argument: %s", key)
	}
	switch list := v.(type) {
	case []string:
		return list, nil
	case []interface{}:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("argument %s: expected list of strings, got %T element", key, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("argument %s: expected list of strings, got %T", key, v)
	}
}
