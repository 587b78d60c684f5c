package transformer

import "strings"

// Request exposes the query parameters of the inbound request. url.Values
// satisfies it directly.
type Request interface {
	Get(key string) string
}

// RequestFunc adapts a lookup function to the Request interface.
type RequestFunc func(key string) string

// Get calls f(key).
func (f RequestFunc) Get(key string) string {
	return f(key)
}

// ParseScopes splits raw on separator and drops empty tokens, keeping order.
func ParseScopes(raw, separator string) []string {
	if raw == "" {
		return []string{}
	}

	if separator == "" {
		return []string{raw}
	}

	parts := strings.Split(raw, separator)
	scopes := make([]string, 0, len(parts))

	for _, part := range parts {
		if part != "" {
			scopes = append(scopes, part)
		}
	}

	return scopes
}
