// cmd/shopfront/main.go
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"shopfront/internal/auth"
	"shopfront/internal/cart"
	"shopfront/internal/catalog"
	"shopfront/internal/clients"
	"shopfront/internal/config"
	"shopfront/internal/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()
	ctx := context.Background()

	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "" {
		shutdown, err := setupTracing(ctx)
		if err != nil {
			slog.Error("tracing setup failed", "error", err)
			os.Exit(1)
		}
		defer shutdown(ctx)
	}

	client := clients.NewStorefront(cfg.APIBaseURL, &http.Client{Timeout: cfg.HTTPTimeout})

	catalogStore := catalog.NewStore(client)
	authStore := auth.NewStore(client, session.NewStore(cfg.SessionFile))
	basket := cart.New()

	if snap := authStore.Snapshot(); snap.IsAuthenticated {
		slog.Info("restored session", "username", snap.User.Username)
	}

	catalogStore.FetchProducts(ctx)
	catalogStore.FetchCategories(ctx)

	snap := catalogStore.Snapshot()
	if snap.Error != "" {
		slog.Error("catalog fetch failed", "error", snap.Error)
		os.Exit(1)
	}
	slog.Info("catalog loaded", "products", len(snap.Products), "categories", snap.Categories)

	page := catalog.Query{Sort: catalog.SortPriceAsc, Page: 1, PerPage: 5}.Apply(snap.Products)
	for _, p := range page.Products {
		slog.Info("product", "id", p.ID, "title", p.Title, "price", p.Price.StringFixed(2))
	}

	if len(snap.Products) > 0 {
		basket.AddItem(snap.Products[0])
		basket.AddItem(snap.Products[0])
		slog.Info("cart", "items", basket.TotalItems(), "total", basket.TotalPrice().StringFixed(2))
	}
}

// setupTracing installs an OTLP/HTTP span exporter, configured through
// the standard OTEL_EXPORTER_OTLP_* environment variables.
func setupTracing(ctx context.Context) (func(context.Context) error, error) {
	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}
