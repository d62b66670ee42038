// internal/fakestore/server.go
package fakestore

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"shopfront/internal/auth"
	"shopfront/internal/catalog"
)

// Server is an in-process storefront API mirroring the product and auth
// endpoints the client consumes. It backs cmd/fakestore and the tests;
// all data lives in memory.
type Server struct {
	jwtSecret string
	jwtExpiry time.Duration

	mu            sync.Mutex
	products      []catalog.Product
	nextProductID int64
	users         map[string]*user
	nextUserID    int64
}

type user struct {
	identity   auth.Identity
	credential string
}

// New creates a server seeded with a small catalog and one demo user
// (username "johnd", password "m38rmF$").
func New(jwtSecret string, jwtExpiry time.Duration) *Server {
	s := &Server{
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
		users:     make(map[string]*user),
	}
	s.seed()
	return s
}

func (s *Server) seed() {
	s.products = []catalog.Product{
		{
			ID:          1,
			Title:       "Fjallraven Foldsack No. 1 Backpack",
			Price:       decimal.RequireFromString("109.95"),
			Description: "Your perfect pack for everyday use and walks in the forest.",
			Category:    "men's clothing",
			Image:       "https://fakestoreapi.com/img/81fPKd-2AYL._AC_SL1500_.jpg",
			Rating:      &catalog.Rating{Rate: 3.9, Count: 120},
		},
		{
			ID:          2,
			Title:       "Mens Casual Premium Slim Fit T-Shirt",
			Price:       decimal.RequireFromString("22.30"),
			Description: "Slim-fitting style, contrast raglan long sleeve.",
			Category:    "men's clothing",
			Image:       "https://fakestoreapi.com/img/71-3HjGNDUL._AC_SY879._SX._UX._SY._UY_.jpg",
			Rating:      &catalog.Rating{Rate: 4.1, Count: 259},
		},
		{
			ID:          3,
			Title:       "John Hardy Legends Naga Bracelet",
			Price:       decimal.RequireFromString("695.00"),
			Description: "From our Legends Collection, inspired by the mythical water dragon.",
			Category:    "jewelery",
			Image:       "https://fakestoreapi.com/img/71pWzhdJNwL._AC_UL640_QL65_ML3_.jpg",
			Rating:      &catalog.Rating{Rate: 4.6, Count: 400},
		},
		{
			ID:          4,
			Title:       "WD 2TB Elements Portable External Hard Drive",
			Price:       decimal.RequireFromString("64.00"),
			Description: "USB 3.0 and USB 2.0 compatibility, fast data transfers.",
			Category:    "electronics",
			Image:       "https://fakestoreapi.com/img/61IBBVJvSDL._AC_SY879_.jpg",
			Rating:      &catalog.Rating{Rate: 3.3, Count: 203},
		},
		{
			ID:          5,
			Title:       "DANVOUY Womens T Shirt Casual Cotton Short",
			Price:       decimal.RequireFromString("12.99"),
			Description: "Casual, short sleeve, letter print V-neck fashion tee.",
			Category:    "women's clothing",
			Image:       "https://fakestoreapi.com/img/61pHAEJ4NML._AC_UX679_.jpg",
			Rating:      &catalog.Rating{Rate: 3.6, Count: 145},
		},
	}
	s.nextProductID = 6

	credential, err := hashPassword("m38rmF$")
	if err != nil {
		panic(err)
	}
	s.users["johnd"] = &user{
		identity:   auth.Identity{ID: 1, Email: "john@gmail.com", Username: "johnd"},
		credential: credential,
	}
	s.nextUserID = 2
}

// Router builds the HTTP routes. Auth endpoints are rate limited per
// client IP.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/products", s.handleListProducts)
	r.Get("/products/categories", s.handleListCategories)
	r.Get("/products/{id}", s.handleGetProduct)
	r.Post("/products", s.handleCreateProduct)

	r.Group(func(r chi.Router) {
		r.Use(rateLimit(5, 10))
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/signup", s.handleSignup)
	})

	return r
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	products := append([]catalog.Product(nil), s.products...)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, products)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	writeError(w, http.StatusNotFound, "product not found")
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	categories := make([]string, 0, 4)
	for _, p := range s.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var in catalog.CreateProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	product := catalog.Product{
		ID:          s.nextProductID,
		Title:       in.Title,
		Price:       in.Price,
		Description: in.Description,
		Category:    in.Category,
		Image:       in.Image,
	}
	s.nextProductID++
	s.products = append(s.products, product)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, product)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	u, ok := s.users[req.Username]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	match, err := verifyPassword(req.Password, u.credential)
	if err != nil || !match {
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token, err := issueToken(u.identity, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch {
	case strings.TrimSpace(req.Username) == "":
		writeError(w, http.StatusBadRequest, "username is required")
		return
	case !strings.Contains(req.Email, "@"):
		writeError(w, http.StatusBadRequest, "email is invalid")
		return
	case len(req.Password) < 6:
		writeError(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	credential, err := hashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create account")
		return
	}

	s.mu.Lock()
	if _, exists := s.users[req.Username]; exists {
		s.mu.Unlock()
		writeError(w, http.StatusBadRequest, "username already taken")
		return
	}
	identity := auth.Identity{ID: s.nextUserID, Email: req.Email, Username: req.Username}
	s.nextUserID++
	s.users[req.Username] = &user{identity: identity, credential: credential}
	s.mu.Unlock()

	token, err := issueToken(identity, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"token": token, "user": identity})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
