package shopapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// APIError is returned for any non-2xx answer from the Shop API.
type APIError struct {
	Status int
	// Detail is the human-readable message found in the response body; empty when none was found.
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("shop api: status %d", e.Status)
	}
	return fmt.Sprintf("shop api: status %d: %s", e.Status, e.Detail)
}

// IsUnauthorized reports whether err is an API rejection of the bearer token.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsNotFound reports whether err is an API 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Detail returns the API-provided message carried by err, or "".
func Detail(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}

// detailExtractor pulls a message out of an error body using a compiled JMESPath expression.
type detailExtractor struct {
	search func(data any) (any, error)
}

func newDetailExtractor(path string) (*detailExtractor, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "detail"
	}
	expr, err := jmespath.Compile(path)
	if err != nil {
		return nil, fmt.Errorf("compile error detail path %q: %w", path, err)
	}
	return &detailExtractor{search: expr.Search}, nil
}

// Extract returns the message found in body, or "" when body is not JSON or holds nothing at the path.
func (d *detailExtractor) Extract(body []byte) string {
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return ""
	}
	res, err := d.search(data)
	if err != nil {
		return ""
	}
	return detailString(res)
}

// detailString flattens a JMESPath result. Validation failures arrive as a
// list of {loc, msg, type} objects; their msg fields are joined.
func detailString(v any) string {
	switch tv := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(tv)
	case []any:
		parts := make([]string, 0, len(tv))
		for _, item := range tv {
			if m, ok := item.(map[string]any); ok {
				if msg, ok := m["msg"].(string); ok {
					parts = append(parts, msg)
					continue
				}
			}
			if s := detailString(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "; ")
	default:
		b, err := json.Marshal(tv)
		if err != nil {
			return fmt.Sprintf("%v", tv)
		}
		return string(b)
	}
}
