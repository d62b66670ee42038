// internal/catalog/service.go
package catalog

import "context"

// Service defines the remote catalog operations the store depends on.
// Implementations live in internal/clients; every call is one-shot and
// fallible, with no retry or streaming semantics.
type Service interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id int64) (*Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	CreateProduct(ctx context.Context, in CreateProductInput) (*Product, error)
}
