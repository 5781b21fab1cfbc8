// Package server exposes a product store over the REST routes the catalog client expects.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/habedi/prodcat/catalog"
	"github.com/habedi/prodcat/db"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// Server serves the products of a repository.
type Server struct {
	repo db.ProductRepository
}

// New creates a Server backed by repo.
func New(repo db.ProductRepository) *Server {
	return &Server{repo: repo}
}

// Handler returns the routes wrapped with request-id and access-log middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", s.listProducts)
	mux.HandleFunc("POST /products", s.createProduct)
	mux.HandleFunc("GET /products/{id}", s.getProduct)
	mux.HandleFunc("PUT /products/{id}", s.updateProduct)
	mux.HandleFunc("DELETE /products/{id}", s.deleteProduct)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return withRequestID(withLogging(mux))
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", ln.Addr().String()).Msg("Catalog service listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info().Msg("Shutting down catalog service")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ctx := r.Context()

	var (
		rows []db.Product
		err  error
	)
	switch {
	case q.Has("name_like"):
		rows, err = s.repo.SearchByName(ctx, q.Get("name_like"))
	case isTrue(q.Get("available")):
		rows, err = s.repo.ListAvailable(ctx)
	case isTrue(q.Get("selected")):
		rows, err = s.repo.ListSelected(ctx)
	default:
		rows, err = s.repo.List(ctx)
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to list products")
		writeJSONError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	products := db.ToCatalogList(rows)
	products = filterFlag(products, q.Get("available"), func(p catalog.Product) bool { return p.Available })
	products = filterFlag(products, q.Get("selected"), func(p catalog.Product) bool { return p.Selected })
	writeJSON(w, http.StatusOK, products)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	row, err := s.repo.GetByID(r.Context(), id)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	if row == nil {
		writeJSONError(w, http.StatusNotFound, "not_found", fmt.Sprintf("product %d", id))
		return
	}
	writeJSON(w, http.StatusOK, row.ToCatalog())
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var d catalog.Draft
	if !decodeBody(w, r, &d) {
		return
	}
	if err := d.Validate(); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	row := db.FromCatalog(d.WithID(0))
	if err := s.repo.Create(r.Context(), &row); err != nil {
		log.Error().Err(err).Msg("Failed to create product")
		writeJSONError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, row.ToCatalog())
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var p catalog.Product
	if !decodeBody(w, r, &p) {
		return
	}
	if p.ID != 0 && p.ID != id {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "body id does not match path id")
		return
	}
	p.ID = id
	if err := p.Validate(); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	row := db.FromCatalog(p)
	if err := s.repo.Update(r.Context(), &row); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "not_found", err.Error())
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, row.ToCatalog())
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "not_found", err.Error())
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.PathValue("id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		writeJSONError(w, http.StatusBadRequest, "invalid_id", fmt.Sprintf("%q is not a product id", raw))
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	ct := r.Header.Get("Content-Type")
	if ct != "" && !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "unsupported_media_type", "expected application/json")
		return false
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	return true
}

func isTrue(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// filterFlag keeps products whose flag matches raw; an empty or unparsable raw keeps all.
func filterFlag(products []catalog.Product, raw string, flag func(catalog.Product) bool) []catalog.Product {
	want, err := strconv.ParseBool(raw)
	if err != nil {
		return products
	}
	out := products[:0]
	for _, p := range products {
		if flag(p) == want {
			out = append(out, p)
		}
	}
	return out
}
