// internal/clients/storefront_client.go
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"shopfront/internal/auth"
	"shopfront/internal/catalog"
)

// ErrUnavailable is returned while the circuit breaker is open after a
// run of consecutive transport or server failures.
var ErrUnavailable = errors.New("storefront service is temporarily unavailable")

// Storefront is the HTTP JSON client for the remote storefront API. It
// implements catalog.Service and auth.Service. Every call is one-shot:
// no retries, no streaming; failures are reported to the caller as
// errors and counted by the breaker.
type Storefront struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*http.Response]
	tracer  trace.Tracer
}

var (
	_ catalog.Service = (*Storefront)(nil)
	_ auth.Service    = (*Storefront)(nil)
)

// NewStorefront creates a client for the API at baseURL. A nil
// httpClient falls back to http.DefaultClient.
func NewStorefront(baseURL string, httpClient *http.Client) *Storefront {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Storefront{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		breaker: gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
			Name:    "storefront-api",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
		tracer: otel.Tracer("shopfront/clients"),
	}
}

func (c *Storefront) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Storefront) GetProduct(ctx context.Context, id int64) (*catalog.Product, error) {
	var product catalog.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Storefront) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.do(ctx, http.MethodGet, "/products/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Storefront) CreateProduct(ctx context.Context, in catalog.CreateProductInput) (*catalog.Product, error) {
	var product catalog.Product
	if err := c.do(ctx, http.MethodPost, "/products", in, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Storefront) Login(ctx context.Context, username, password string) (string, error) {
	req := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{username, password}

	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (c *Storefront) Signup(ctx context.Context, username, email, password string) (*auth.SignupResult, error) {
	req := struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{username, email, password}

	var resp struct {
		Token string        `json:"token"`
		User  auth.Identity `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/signup", req, &resp); err != nil {
		return nil, err
	}
	return &auth.SignupResult{Identity: resp.User, Token: resp.Token}, nil
}

// do issues one JSON request and decodes the response into out. Server
// errors (5xx) and transport failures feed the circuit breaker; domain
// rejections (4xx) do not, and are mapped onto sentinel errors or the
// server-provided message.
func (c *Storefront) do(ctx context.Context, method, path string, body, out any) error {
	ctx, span := c.tracer.Start(ctx, "storefront."+method+" "+path,
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.path", path),
		))
	defer span.End()

	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			resp.Body.Close()
			return nil, fmt.Errorf("server error: status %d", resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return ErrUnavailable
		}
		return fmt.Errorf("storefront request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		err := c.rejectionError(path, resp)
		span.RecordError(err)
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		span.RecordError(err)
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// rejectionError maps a 4xx response onto the domain error the caller
// expects, falling back to the server-provided message.
func (c *Storefront) rejectionError(path string, resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusNotFound:
		if strings.HasPrefix(path, "/products/") {
			return catalog.ErrNotFound
		}
	case http.StatusUnauthorized:
		if path == "/auth/login" {
			return auth.ErrInvalidCredentials
		}
	}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return errors.New(body.Error)
	}
	return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
}
