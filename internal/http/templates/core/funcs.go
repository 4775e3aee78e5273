// Package core holds the template functions every storefront page can call.
package core

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
)

// Sections renders the content template that belongs to a page. Set is
// assigned after parsing, since the parsed set needs Funcs first.
type Sections struct {
	Set  *template.Template
	Name func(page string) string
}

// Render executes the content template for page and returns it as trusted HTML.
func (s *Sections) Render(page string, data any) (template.HTML, error) {
	if s == nil || s.Set == nil {
		return "", errors.New("templates not parsed yet")
	}
	var buf bytes.Buffer
	if err := s.Set.ExecuteTemplate(&buf, s.Name(page), data); err != nil {
		return "", err
	}
	// #nosec G203 - produced by html/template, already escaped.
	return template.HTML(buf.String()), nil
}

// Funcs returns the func map for the storefront template set.
func Funcs(sections *Sections) template.FuncMap {
	return template.FuncMap{
		"dict":          dict,
		"renderSection": sections.Render,
	}
}

// dict packs alternating keys and values into a map, letting a partial take
// several arguments.
func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 == 1 {
		return nil, errors.New("dict: odd number of arguments")
	}
	out := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %d is %T, want string", i/2, kv[i])
		}
		out[k] = kv[i+1]
	}
	return out, nil
}
