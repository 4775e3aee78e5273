package testutil

import (
	"time"

	domainauth "github.com/DimpleKundu/incubyte-sweet-shop/internal/domain/auth"
	"github.com/DimpleKundu/incubyte-sweet-shop/internal/domain/model"
)

// SweetBuilder provides a fluent interface for building Sweet values in tests.
type SweetBuilder struct {
	sweet model.Sweet
}

// NewSweet creates a SweetBuilder with sensible defaults.
func NewSweet(id string) *SweetBuilder {
	return &SweetBuilder{
		sweet: model.Sweet{
			ID:       id,
			Name:     "Ladoo",
			Category: "Indian",
			Price:    10,
			Quantity: 5,
		},
	}
}

// WithName sets the sweet name.
func (b *SweetBuilder) WithName(name string) *SweetBuilder {
	b.sweet.Name = name
	return b
}

// WithCategory sets the category.
func (b *SweetBuilder) WithCategory(category string) *SweetBuilder {
	b.sweet.Category = category
	return b
}

// WithPrice sets the unit price.
func (b *SweetBuilder) WithPrice(price float64) *SweetBuilder {
	b.sweet.Price = price
	return b
}

// WithQuantity sets the stock level.
func (b *SweetBuilder) WithQuantity(q int) *SweetBuilder {
	b.sweet.Quantity = q
	return b
}

// Build returns the constructed sweet.
func (b *SweetBuilder) Build() model.Sweet {
	return b.sweet
}

// SampleSweets returns a small catalog with one out-of-stock entry.
func SampleSweets() []model.Sweet {
	return []model.Sweet{
		NewSweet("s1").WithName("Kaju Katli").WithPrice(25).WithQuantity(4).Build(),
		NewSweet("s2").WithName("Chocolate Fudge").WithCategory("Western").WithPrice(15).WithQuantity(0).Build(),
		NewSweet("s3").WithName("Rasgulla").WithCategory("Bengali").WithPrice(8).WithQuantity(12).Build(),
	}
}

// NewSession returns an unexpired session for the given role.
func NewSession(id string, role domainauth.Role) domainauth.Session {
	return domainauth.Session{
		ID:        id,
		Email:     "shopper@example.com",
		Token:     "token-" + id,
		Role:      role,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}
