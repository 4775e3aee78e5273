// Package inventory holds the typed view models for the sweet dashboard.
package inventory

import (
	"time"

	"github.com/DimpleKundu/incubyte-sweet-shop/internal/domain/model"
	"github.com/DimpleKundu/incubyte-sweet-shop/internal/http/ui/viewmodel"
	"github.com/DimpleKundu/incubyte-sweet-shop/internal/http/uiutil"
)

// SweetCard is one sweet as rendered in the grid.
type SweetCard struct {
	ID       string
	Name     string
	Category string
	Price    float64
	Quantity int
}

// CardsFrom converts sweets into grid cards, preserving order.
func CardsFrom(sweets []model.Sweet) []SweetCard {
	cards := make([]SweetCard, 0, len(sweets))
	for _, s := range sweets {
		cards = append(cards, SweetCard{
			ID:       s.ID,
			Name:     s.Name,
			Category: s.Category,
			Price:    s.Price,
			Quantity: s.Quantity,
		})
	}
	return cards
}

// PriceDisplay renders the price with the currency symbol.
func (c SweetCard) PriceDisplay() string { return uiutil.Price(c.Price) }

// StockDisplay renders the stock label ("Out of stock" at zero).
func (c SweetCard) StockDisplay() string { return uiutil.Stock(c.Quantity) }

// CanBuy reports whether the buy control is enabled.
func (c SweetCard) CanBuy() bool { return c.Quantity > 0 }

// StockBadgeClass returns the CSS modifier class for the stock badge.
func (c SweetCard) StockBadgeClass() string {
	switch {
	case c.Quantity <= 0:
		return "badge-danger"
	case c.Quantity < 5:
		return "badge-warning"
	default:
		return "badge-success"
	}
}

// Page is the typed view model passed to the dashboard template and the grid partial.
type Page struct {
	viewmodel.Layout

	Sweets        []SweetCard
	Query         string
	RestockAmount int
	FetchedAt     time.Time

	Notice       string
	Error        bool
	ErrorMessage string
}

// Empty reports whether the grid has nothing to show.
func (p *Page) Empty() bool { return len(p.Sweets) == 0 }

// Filtered reports whether a search narrowed the list.
func (p *Page) Filtered() bool { return p.Query != "" }

// FetchedAgo renders when the list was last fetched.
func (p *Page) FetchedAgo() string {
	if p.FetchedAt.IsZero() {
		return ""
	}
	return uiutil.Ago(p.FetchedAt, time.Now())
}
