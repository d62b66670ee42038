// internal/catalog/domain.go
package catalog

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Product represents a single catalog entry. Products are created
// server-side and are read-only once fetched; the remote service
// assigns the identifier and rating.
type Product struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Rating      *Rating         `json:"rating,omitempty"`
}

// Rating is the aggregated review score for a product.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// CreateProductInput carries the caller-supplied fields for a new
// listing. Identifier and rating are assigned by the remote service.
type CreateProductInput struct {
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
}

// ErrNotFound is returned when the requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Validate checks the input before any network call is attempted.
// Every field is required and the price must be strictly positive.
func (in CreateProductInput) Validate() error {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return errors.New("title is required")
	case strings.TrimSpace(in.Description) == "":
		return errors.New("description is required")
	case strings.TrimSpace(in.Category) == "":
		return errors.New("category is required")
	case strings.TrimSpace(in.Image) == "":
		return errors.New("image is required")
	case !in.Price.IsPositive():
		return errors.New("price must be a positive number")
	}
	return nil
}
