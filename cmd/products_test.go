package cmd

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/habedi/prodcat/db"
	"github.com/habedi/prodcat/pkg/clierr"
	"github.com/habedi/prodcat/server"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// startService serves a seeded catalog from a temporary SQLite file.
func startService(t *testing.T) (db.ProductRepository, string) {
	t.Helper()
	gormDB, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "catalog.db")),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(&db.Product{}))
	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	repo := db.NewProductRepository(gormDB)
	for _, p := range []db.Product{
		{Name: "Oak Chair", Price: decimal.NewFromInt(80), Quantity: 5, Available: true, Selected: true},
		{Name: "Pine Table", Price: decimal.RequireFromString("230.50"), Quantity: 0, Available: false, Selected: true},
		{Name: "Oak Shelf", Price: decimal.NewFromInt(60), Quantity: 2, Available: true, Selected: false},
	} {
		require.NoError(t, repo.Create(context.Background(), &p))
	}

	ts := httptest.NewServer(server.New(repo).Handler())
	t.Cleanup(ts.Close)
	return repo, ts.URL
}

// runCLI executes the root command against url and returns stdout, stderr and the error.
func runCLI(t *testing.T, url string, args ...string) (string, string, error) {
	t.Helper()
	root := createRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml"), "--url", url}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestListCmd(t *testing.T) {
	_, url := startService(t)

	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{"all", []string{"products", "list"}, []string{"Oak Chair", "Pine Table", "Oak Shelf", "230.50"}, nil},
		{"available", []string{"products", "list", "--available"}, []string{"Oak Chair", "Oak Shelf"}, []string{"Pine Table"}},
		{"selected", []string{"products", "list", "-s"}, []string{"Oak Chair", "Pine Table"}, []string{"Oak Shelf"}},
		{"search", []string{"products", "search", "OAK"}, []string{"Oak Chair", "Oak Shelf"}, []string{"Pine Table"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runCLI(t, url, tt.args...)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, nw := range tt.notWant {
				assert.NotContains(t, out, nw)
			}
		})
	}
}

func TestDispatchCmd(t *testing.T) {
	_, url := startService(t)

	out, _, err := runCLI(t, url, "products", "dispatch", "get_available")
	require.NoError(t, err)
	assert.Contains(t, out, "Oak Shelf")
	assert.NotContains(t, out, "Pine Table")

	out, _, err = runCLI(t, url, "products", "dispatch", "SEARCH", "pine")
	require.NoError(t, err)
	assert.Contains(t, out, "Pine Table")
	assert.NotContains(t, out, "Oak Chair")

	_, _, err = runCLI(t, url, "products", "dispatch", "REFRESH")
	assert.True(t, clierr.IsType(err, clierr.Validation))

	_, _, err = runCLI(t, url, "products", "dispatch", "DELETE", "1")
	assert.True(t, clierr.IsType(err, clierr.Validation))
}

func TestListCmd_EmptyResult(t *testing.T) {
	_, url := startService(t)
	out, _, err := runCLI(t, url, "products", "search", "sofa")
	require.NoError(t, err)
	assert.Contains(t, out, "No products found.")
}

func TestListCmd_ConflictingFlags(t *testing.T) {
	_, url := startService(t)
	_, _, err := runCLI(t, url, "products", "list", "-a", "-s")
	assert.True(t, clierr.IsType(err, clierr.Validation))
}

func TestListCmd_ServiceDown(t *testing.T) {
	_, _, err := runCLI(t, "http://127.0.0.1:1", "products", "list")
	require.Error(t, err)
	assert.True(t, clierr.IsType(err, clierr.Gateway))
}

func TestSelectCmd_TogglesSelection(t *testing.T) {
	repo, url := startService(t)

	out, _, err := runCLI(t, url, "products", "select", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Product 1 (Oak Chair) is now deselected.")

	row, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, row.Selected)

	out, _, err = runCLI(t, url, "products", "select", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "is now selected.")
}

func TestSelectCmd_Errors(t *testing.T) {
	_, url := startService(t)

	_, _, err := runCLI(t, url, "products", "select", "abc")
	assert.True(t, clierr.IsType(err, clierr.Validation))

	_, _, err = runCLI(t, url, "products", "select", "99")
	assert.True(t, clierr.IsType(err, clierr.NotFound))
}

func TestDeleteCmd_WithYes(t *testing.T) {
	repo, url := startService(t)

	out, _, err := runCLI(t, url, "products", "delete", "2", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Product 2 (Pine Table) deleted.")
	table := out[strings.Index(out, "\n")+1:]
	assert.Contains(t, table, "Oak Chair")
	assert.NotContains(t, table, "Pine Table")

	row, err := repo.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestDeleteCmd_DeclinedWithoutTerminal(t *testing.T) {
	repo, url := startService(t)

	_, _, err := runCLI(t, url, "products", "delete", "2")
	require.Error(t, err)
	assert.True(t, clierr.IsType(err, clierr.Declined))

	row, err := repo.GetByID(context.Background(), 2)
	require.NoError(t, err)
	require.NotNil(t, row)
}

func TestAddCmd(t *testing.T) {
	repo, url := startService(t)

	out, _, err := runCLI(t, url, "products", "add", "--name", "Birch Desk", "--price", "149.99", "-q", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Product 4 (Birch Desk) added.")

	row, err := repo.GetByID(context.Background(), 4)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.True(t, row.Price.Equal(decimal.RequireFromString("149.99")))
	assert.True(t, row.Available)
	assert.True(t, row.Selected)
}

func TestAddCmd_Invalid(t *testing.T) {
	_, url := startService(t)

	_, _, err := runCLI(t, url, "products", "add", "--name", "Desk", "--price", "ten")
	assert.True(t, clierr.IsType(err, clierr.Validation))

	_, _, err = runCLI(t, url, "products", "add", "--name", "Desk", "--price=-1")
	assert.True(t, clierr.IsType(err, clierr.Validation))

	_, _, err = runCLI(t, url, "products", "add", "--price", "1")
	assert.Error(t, err)
}

func TestEditCmd_ChangesOnlyGivenFields(t *testing.T) {
	repo, url := startService(t)

	out, _, err := runCLI(t, url, "products", "edit", "3", "--quantity", "9", "--available=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Product 3 (Oak Shelf) updated.")

	row, err := repo.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Oak Shelf", row.Name)
	assert.Equal(t, 9, row.Quantity)
	assert.False(t, row.Available)
	assert.True(t, row.Price.Equal(decimal.NewFromInt(60)))
}

func TestParseProductID(t *testing.T) {
	id, err := parseProductID("42")
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	for _, bad := range []string{"", "0", "-3", "x1"} {
		_, err := parseProductID(bad)
		assert.True(t, clierr.IsType(err, clierr.Validation), "input %q", bad)
	}
}

func TestEditCmd_ServiceDown(t *testing.T) {
	_, _, err := runCLI(t, "http://127.0.0.1:1", "products", "edit", "1", "-q", "1")
	require.Error(t, err)
	assert.True(t, clierr.IsType(err, clierr.Gateway))
}
