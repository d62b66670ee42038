// internal/catalog/store.go
package catalog

import (
	"context"
	"sync"
)

// State is an immutable snapshot of the catalog for rendering.
// Loading/Error cover the list and single-product fetch family;
// CreateLoading/CreateError belong to the create flow only, so the two
// flows never clobber each other's messages. Category fetches surface
// no error at all: category data is secondary to product data.
type State struct {
	Products        []Product
	Categories      []string
	SelectedProduct *Product
	Loading         bool
	Error           string
	CreateLoading   bool
	CreateError     string
}

// Store orchestrates catalog fetches through a Service and holds the
// resulting state. Each operation family carries a sequence number; a
// completion is applied only if no newer request of the same family has
// been issued since, so the latest request always wins regardless of
// response arrival order.
type Store struct {
	svc Service

	mu        sync.Mutex
	state     State
	listSeq   uint64
	itemSeq   uint64
	catSeq    uint64
	createSeq uint64
}

// NewStore creates a catalog store backed by the given remote service.
func NewStore(svc Service) *Store {
	return &Store{svc: svc}
}

// Snapshot returns a copy of the current state. Slices and the selected
// product are cloned so callers can never observe a partial mutation.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.state
	snap.Products = append([]Product(nil), s.state.Products...)
	snap.Categories = append([]string(nil), s.state.Categories...)
	if s.state.SelectedProduct != nil {
		p := *s.state.SelectedProduct
		snap.SelectedProduct = &p
	}
	return snap
}

// FetchProducts replaces the product list from the remote catalog.
// On failure the previous list is preserved and Error is set.
func (s *Store) FetchProducts(ctx context.Context) {
	s.mu.Lock()
	s.listSeq++
	seq := s.listSeq
	s.state.Loading = true
	s.state.Error = ""
	s.mu.Unlock()

	products, err := s.svc.ListProducts(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.listSeq {
		return // superseded by a newer fetch
	}
	s.state.Loading = false
	if err != nil {
		s.state.Error = errorMessage(err, "failed to fetch products")
		return
	}
	s.state.Products = products
}

// FetchProductByID loads a single product into SelectedProduct. On
// failure any previously selected product is left untouched until
// ClearSelectedProduct is called.
func (s *Store) FetchProductByID(ctx context.Context, id int64) {
	s.mu.Lock()
	s.itemSeq++
	seq := s.itemSeq
	s.state.Loading = true
	s.state.Error = ""
	s.mu.Unlock()

	product, err := s.svc.GetProduct(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.itemSeq {
		return
	}
	s.state.Loading = false
	if err != nil {
		s.state.Error = errorMessage(err, "failed to fetch product")
		return
	}
	s.state.SelectedProduct = product
}

// ClearSelectedProduct resets the detail view so stale data is never
// shown for a different product. Any in-flight single-product fetch is
// invalidated and its late response discarded; the loading flag is
// lowered here because the discarded completion no longer will.
func (s *Store) ClearSelectedProduct() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.itemSeq++
	s.state.Loading = false
	s.state.SelectedProduct = nil
}

// FetchCategories refreshes the category list. Failures are swallowed:
// the previous list stays and no error field is set.
func (s *Store) FetchCategories(ctx context.Context) {
	s.mu.Lock()
	s.catSeq++
	seq := s.catSeq
	s.mu.Unlock()

	categories, err := s.svc.ListCategories(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.catSeq || err != nil {
		return
	}
	s.state.Categories = categories
}

// CreateProduct submits a new listing. Input validation happens before
// any network call; on success the new product is appended to the end
// of the in-memory list without a re-fetch.
func (s *Store) CreateProduct(ctx context.Context, in CreateProductInput) {
	if err := in.Validate(); err != nil {
		s.mu.Lock()
		s.state.CreateError = err.Error()
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.createSeq++
	seq := s.createSeq
	s.state.CreateLoading = true
	s.state.CreateError = ""
	s.mu.Unlock()

	product, err := s.svc.CreateProduct(ctx, in)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.createSeq {
		return
	}
	s.state.CreateLoading = false
	if err != nil {
		s.state.CreateError = errorMessage(err, "failed to create product")
		return
	}
	s.state.Products = append(s.state.Products, *product)
}

// ClearError resets both the fetch and create error messages.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Error = ""
	s.state.CreateError = ""
}

func errorMessage(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
