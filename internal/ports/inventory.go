package ports

import (
	"context"

	"github.com/DimpleKundu/incubyte-sweet-shop/internal/domain/model"
)

// InventoryAPI is the catalog and stock side of the remote Sweet Shop API.
// Every call is authenticated with the caller's bearer token.
type InventoryAPI interface {
	ListSweets(ctx context.Context, token string) ([]model.Sweet, error)
	CreateSweet(ctx context.Context, token string, in model.SweetInput) (model.Sweet, error)
	CreateSweets(ctx context.Context, token string, in []model.SweetInput) ([]model.Sweet, error)
	UpdateSweet(ctx context.Context, token, id string, in model.SweetInput) (model.Sweet, error)
	DeleteSweet(ctx context.Context, token, id string) error
	Purchase(ctx context.Context, token, id string) error
	Restock(ctx context.Context, token, id string, amount int) error
}

// ShopAPI is the full remote API surface used by the storefront.
type ShopAPI interface {
	AccountAPI
	InventoryAPI
}

// MirrorStore keeps the per-session copy of the sweet list between requests.
type MirrorStore interface {
	Save(ctx context.Context, sessionID string, m model.Mirror) error
	Get(ctx context.Context, sessionID string) (model.Mirror, error)
	Delete(ctx context.Context, sessionID string) error
}
