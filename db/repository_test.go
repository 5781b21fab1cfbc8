package db_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/habedi/prodcat/catalog"
	"github.com/habedi/prodcat/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) db.ProductRepository {
	t.Helper()
	temp := t.TempDir()
	db.Path = filepath.Join(temp, "catalog.db")
	require.NoError(t, db.InitDB())
	t.Cleanup(func() { _ = db.CloseDB() })
	return db.NewProductRepository(db.GetDB())
}

func seed(t *testing.T, repo db.ProductRepository) {
	t.Helper()
	ctx := context.Background()
	for _, p := range []db.Product{
		{Name: "Red Chair", Price: decimal.RequireFromString("49.90"), Quantity: 4, Available: true, Selected: false},
		{Name: "Blue Table", Price: decimal.NewFromInt(120), Quantity: 0, Available: false, Selected: true},
		{Name: "red lamp", Price: decimal.RequireFromString("15.25"), Quantity: 9, Available: true, Selected: true},
	} {
		require.NoError(t, repo.Create(ctx, &p))
		require.NotZero(t, p.ID)
	}
}

func names(products []db.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func TestProductRepositoryFilters(t *testing.T) {
	repo := newTestRepo(t)
	seed(t, repo)
	ctx := context.Background()

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Red Chair", "Blue Table", "red lamp"}, names(all))

	available, err := repo.ListAvailable(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Red Chair", "red lamp"}, names(available))

	selected, err := repo.ListSelected(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Blue Table", "red lamp"}, names(selected))

	found, err := repo.SearchByName(ctx, "RED")
	require.NoError(t, err)
	assert.Equal(t, []string{"Red Chair", "red lamp"}, names(found))

	everything, err := repo.SearchByName(ctx, "")
	require.NoError(t, err)
	assert.Len(t, everything, 3)

	none, err := repo.SearchByName(ctx, "sofa")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSearchByName_WildcardsMatchLiterally(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	for _, name := range []string{"Desk 50% off", "Desk 500", "Lamp_Mini", "LampXMini", `Shelf A\B`} {
		require.NoError(t, repo.Create(ctx, &db.Product{Name: name, Price: decimal.NewFromInt(1)}))
	}

	tests := []struct {
		keyword string
		want    []string
	}{
		{"50%", []string{"Desk 50% off"}},
		{"p_m", []string{"Lamp_Mini"}},
		{`a\b`, []string{`Shelf A\B`}},
	}
	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			found, err := repo.SearchByName(ctx, tt.keyword)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(found))
		})
	}
}

func TestProductRepositoryKeepsExactPrice(t *testing.T) {
	repo := newTestRepo(t)
	seed(t, repo)

	p, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "49.9", p.Price.String())
	assert.True(t, p.Price.Equal(decimal.RequireFromString("49.90")))
}

func TestProductRepositoryUpdateAndDelete(t *testing.T) {
	repo := newTestRepo(t)
	seed(t, repo)
	ctx := context.Background()

	p, err := repo.GetByID(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, p)

	p.Selected = false
	p.Quantity = 7
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.False(t, got.Selected)
	assert.Equal(t, 7, got.Quantity)

	missing := db.Product{ID: 404, Name: "Ghost"}
	assert.ErrorIs(t, repo.Update(ctx, &missing), catalog.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, 2))
	gone, err := repo.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, gone)
	assert.ErrorIs(t, repo.Delete(ctx, 2), catalog.ErrNotFound)
}

func TestProductRepositoryClear(t *testing.T) {
	repo := newTestRepo(t)
	seed(t, repo)
	ctx := context.Background()

	require.NoError(t, repo.Clear(ctx))
	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 0)
}

func TestProductConversion(t *testing.T) {
	cp := catalog.Product{ID: 3, Name: "Pen", Price: decimal.NewFromInt(2), Quantity: 1, Available: true}
	row := db.FromCatalog(cp)
	assert.Equal(t, cp, row.ToCatalog())
	assert.Equal(t, []catalog.Product{cp}, db.ToCatalogList([]db.Product{row}))
	assert.NotNil(t, db.ToCatalogList(nil))
}
