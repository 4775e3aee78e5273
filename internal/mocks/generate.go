// Package mocks holds gomock doubles for the ports package. Regenerate with
// `go generate ./internal/mocks` after changing a port.
package mocks

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=shop_api_mock.go github.com/DimpleKundu/incubyte-sweet-shop/internal/ports ShopAPI
