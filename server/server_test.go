package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/habedi/prodcat/catalog"
	"github.com/habedi/prodcat/client"
	"github.com/habedi/prodcat/db"
	"github.com/habedi/prodcat/pkg/state"
	"github.com/habedi/prodcat/server"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServer(t *testing.T) (db.ProductRepository, *httptest.Server) {
	t.Helper()
	db.Path = filepath.Join(t.TempDir(), "catalog.db")
	require.NoError(t, db.InitDB())
	t.Cleanup(func() { _ = db.CloseDB() })

	repo := db.NewProductRepository(db.GetDB())
	ctx := context.Background()
	for _, p := range []db.Product{
		{Name: "Oak Chair", Price: decimal.NewFromInt(80), Quantity: 5, Available: true, Selected: true},
		{Name: "Pine Table", Price: decimal.RequireFromString("230.50"), Quantity: 0, Available: false, Selected: true},
		{Name: "Oak Shelf", Price: decimal.NewFromInt(60), Quantity: 2, Available: true, Selected: false},
	} {
		require.NoError(t, repo.Create(ctx, &p))
	}

	ts := httptest.NewServer(server.New(repo).Handler())
	t.Cleanup(ts.Close)
	return repo, ts
}

func getProducts(t *testing.T, url string) []catalog.Product {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out []catalog.Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func ids(products []catalog.Product) []int {
	out := make([]int, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestListFilters(t *testing.T) {
	_, ts := setupServer(t)

	assert.Equal(t, []int{1, 2, 3}, ids(getProducts(t, ts.URL+"/products")))
	assert.Equal(t, []int{1, 3}, ids(getProducts(t, ts.URL+"/products?available=true")))
	assert.Equal(t, []int{1, 2}, ids(getProducts(t, ts.URL+"/products?selected=true")))
	assert.Equal(t, []int{1, 3}, ids(getProducts(t, ts.URL+"/products?name_like=oak")))
	assert.Equal(t, []int{1}, ids(getProducts(t, ts.URL+"/products?name_like=oak&selected=true")))
	assert.Equal(t, []int{}, ids(getProducts(t, ts.URL+"/products?name_like=sofa")))
}

func TestRequestIDEchoed(t *testing.T) {
	_, ts := setupServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-Id", "abc-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get("X-Request-Id"))

	resp, err = http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

func TestErrorPayloads(t *testing.T) {
	_, ts := setupServer(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantError  string
	}{
		{"missing product", http.MethodGet, "/products/99", "", http.StatusNotFound, "not_found"},
		{"bad id", http.MethodGet, "/products/abc", "", http.StatusBadRequest, "invalid_id"},
		{"invalid json", http.MethodPost, "/products", "{", http.StatusBadRequest, "invalid_json"},
		{"unknown field", http.MethodPost, "/products", `{"title":"x"}`, http.StatusBadRequest, "invalid_json"},
		{"negative price", http.MethodPost, "/products", `{"name":"x","price":-1,"quantity":1}`, http.StatusBadRequest, "validation_error"},
		{"update missing", http.MethodPut, "/products/99", `{"name":"x","price":1,"quantity":1}`, http.StatusNotFound, "not_found"},
		{"mismatched id", http.MethodPut, "/products/1", `{"id":2,"name":"x","price":1,"quantity":1}`, http.StatusBadRequest, "validation_error"},
		{"delete missing", http.MethodDelete, "/products/99", "", http.StatusNotFound, "not_found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, ts.URL+tt.path, bytes.NewBufferString(tt.body))
			require.NoError(t, err)
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			var payload map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
			assert.Equal(t, tt.wantError, payload["error"])
		})
	}
}

func TestClientRoundTrip(t *testing.T) {
	repo, ts := setupServer(t)
	ctx := context.Background()
	c := client.New(ts.URL)

	created, err := c.Save(ctx, catalog.Draft{Name: "Birch Stool", Price: decimal.RequireFromString("35.10"), Quantity: 7, Available: true})
	require.NoError(t, err)
	assert.Equal(t, 4, created.ID)

	got, err := c.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("35.1")))

	toggled, err := c.Select(ctx, got)
	require.NoError(t, err)
	assert.True(t, toggled.Selected)

	require.NoError(t, c.Delete(ctx, toggled))
	row, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, row)

	_, err = c.Get(ctx, created.ID)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestControllerAgainstService(t *testing.T) {
	_, ts := setupServer(t)
	ctx := context.Background()

	ctrl := catalog.NewController(client.New(ts.URL), catalog.WithConfirmer(catalog.AlwaysConfirm))
	ctrl.ListSelected(ctx)
	ctrl.Wait()

	items, ok := state.Items(ctrl.State())
	require.True(t, ok)
	require.Len(t, items, 2)

	ctrl.Select(ctx, items[0])
	ctrl.Wait()
	assert.False(t, items[0].Selected)

	ctrl.Delete(ctx, items[1])
	ctrl.Wait()
	items, ok = state.Items(ctrl.State())
	require.True(t, ok)
	assert.Equal(t, []int{1, 3}, func() []int {
		out := make([]int, len(items))
		for i, p := range items {
			out[i] = p.ID
		}
		return out
	}())
}

func TestRunStopsOnCancel(t *testing.T) {
	db.Path = filepath.Join(t.TempDir(), "catalog.db")
	require.NoError(t, db.InitDB())
	t.Cleanup(func() { _ = db.CloseDB() })

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.New(db.NewProductRepository(db.GetDB())).Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
