//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"math"
	"strings"
	"unicode/utf8"
)

const (
	maxSweetNameLen     = 120
	maxSweetCategoryLen = 80
)

// Sweet is a product in the shop's inventory as reported by the API.
type Sweet struct {
	ID       string  `json:"id"       yaml:"id,omitempty"`
	Name     string  `json:"name"     yaml:"name"`
	Category string  `json:"category" yaml:"category"`
	Price    float64 `json:"price"    yaml:"price"`
	Quantity int     `json:"quantity" yaml:"quantity"`
}

// InStock reports whether at least one unit can be purchased.
func (s Sweet) InStock() bool { return s.Quantity > 0 }

// SweetInput carries the editable fields for creating or updating a sweet.
type SweetInput struct {
	Name     string  `json:"name"     yaml:"name"`
	Category string  `json:"category" yaml:"category"`
	Price    float64 `json:"price"    yaml:"price"`
	Quantity int     `json:"quantity" yaml:"quantity"`
}

// InputFrom returns the editable fields of s, used to prefill the edit form.
func InputFrom(s Sweet) SweetInput {
	return SweetInput{Name: s.Name, Category: s.Category, Price: s.Price, Quantity: s.Quantity}
}

// Validate trims text fields and checks value ranges.
func (in *SweetInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)

	if in.Name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(in.Name) > maxSweetNameLen {
		return errors.New("name cannot exceed 120 characters")
	}
	if in.Category == "" {
		return errors.New("category is required and cannot be empty")
	}
	if utf8.RuneCountInString(in.Category) > maxSweetCategoryLen {
		return errors.New("category cannot exceed 80 characters")
	}
	if math.IsNaN(in.Price) || math.IsInf(in.Price, 0) || in.Price < 0 {
		return errors.New("price must be >= 0")
	}
	if in.Quantity < 0 {
		return errors.New("quantity must be >= 0")
	}
	return nil
}
