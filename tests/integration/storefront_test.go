// tests/integration/storefront_test.go
package integration

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfront/internal/auth"
	"shopfront/internal/cart"
	"shopfront/internal/catalog"
	"shopfront/internal/clients"
	"shopfront/internal/fakestore"
	"shopfront/internal/session"
)

type testEnv struct {
	client      *clients.Storefront
	sessionFile string
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	srv := httptest.NewServer(fakestore.New("integration-secret", time.Hour).Router())
	t.Cleanup(srv.Close)

	return &testEnv{
		client:      clients.NewStorefront(srv.URL, srv.Client()),
		sessionFile: filepath.Join(t.TempDir(), "session.json"),
	}
}

func TestBrowseAndCheckoutFlow(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	store := catalog.NewStore(env.client)
	store.FetchProducts(ctx)
	store.FetchCategories(ctx)

	snap := store.Snapshot()
	require.Empty(t, snap.Error)
	require.NotEmpty(t, snap.Products)
	require.Contains(t, snap.Categories, "electronics")

	// Browse the cheapest electronics first.
	page := catalog.Query{Category: "electronics", Sort: catalog.SortPriceAsc, Page: 1, PerPage: 10}.Apply(snap.Products)
	require.NotEmpty(t, page.Products)

	// View a product detail, then put it in the cart twice.
	store.FetchProductByID(ctx, page.Products[0].ID)
	snap = store.Snapshot()
	require.NotNil(t, snap.SelectedProduct)

	basket := cart.New()
	basket.AddItem(*snap.SelectedProduct)
	basket.AddItem(*snap.SelectedProduct)

	items := basket.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.True(t, basket.TotalPrice().Equal(snap.SelectedProduct.Price.Mul(decimal.NewFromInt(2))))

	// Leaving the detail view clears the selection.
	store.ClearSelectedProduct()
	assert.Nil(t, store.Snapshot().SelectedProduct)
}

func TestCreateProductAppearsInCatalog(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	store := catalog.NewStore(env.client)
	store.FetchProducts(ctx)
	before := len(store.Snapshot().Products)

	store.CreateProduct(ctx, catalog.CreateProductInput{
		Title:       "Integration Widget",
		Price:       decimal.RequireFromString("49.95"),
		Description: "Created end to end",
		Category:    "electronics",
		Image:       "https://example.com/widget.jpg",
	})

	snap := store.Snapshot()
	require.Empty(t, snap.CreateError)
	require.Len(t, snap.Products, before+1)
	assert.Equal(t, "Integration Widget", snap.Products[before].Title)
}

func TestSignupSessionSurvivesRestart(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	sessions := session.NewStore(env.sessionFile)
	store := auth.NewStore(env.client, sessions)
	require.False(t, store.Snapshot().IsAuthenticated)

	store.Signup(ctx, "alice", "a@x.com", "secret1")

	snap := store.Snapshot()
	require.Empty(t, snap.Error)
	require.True(t, snap.IsAuthenticated)
	assert.Equal(t, "alice", snap.User.Username)

	// A cold start reading the same session file is authenticated.
	restarted := auth.NewStore(env.client, session.NewStore(env.sessionFile))
	snap = restarted.Snapshot()
	require.True(t, snap.IsAuthenticated)
	assert.Equal(t, "alice", snap.User.Username)

	// After logout a further cold start is anonymous again.
	restarted.Logout()
	cold := auth.NewStore(env.client, session.NewStore(env.sessionFile))
	assert.False(t, cold.Snapshot().IsAuthenticated)
}

func TestLoginWithSeededUser(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	store := auth.NewStore(env.client, session.NewStore(env.sessionFile))
	store.Login(ctx, "johnd", "m38rmF$")

	snap := store.Snapshot()
	require.Empty(t, snap.Error)
	require.True(t, snap.IsAuthenticated)

	// Identity comes from the token claims, not from echoed credentials.
	assert.Equal(t, "johnd", snap.User.Username)
	assert.Equal(t, "john@gmail.com", snap.User.Email)

	store.Login(ctx, "johnd", "wrong-password")
	snap = store.Snapshot()
	assert.Equal(t, "invalid username or password", snap.Error)
	// The failed attempt does not tear down the existing authentication.
	assert.True(t, snap.IsAuthenticated)
}
