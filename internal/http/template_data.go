package httpx

import "net/http"

// pageData is the map handed to page templates. It starts with the layout
// keys from basePageData; handlers add their own.
type pageData map[string]any

func newPage(r *http.Request, meta PageMeta) pageData {
	return basePageData(r, meta)
}

// fail sets the banner error. Blank messages are ignored.
func (d pageData) fail(msg string) pageData {
	if msg != "" {
		d["Error"] = true
		d["ErrorMessage"] = msg
	}
	return d
}

func (d pageData) notice(msg string) pageData {
	if msg != "" {
		d["Notice"] = msg
	}
	return d
}

func (d pageData) fieldErrors(errs map[string]string) pageData {
	if len(errs) > 0 {
		d["Errors"] = errs
	}
	return d
}

func (d pageData) set(key string, v any) pageData {
	d[key] = v
	return d
}

func (d pageData) merge(extra map[string]any) pageData {
	for k, v := range extra {
		d[k] = v
	}
	return d
}
