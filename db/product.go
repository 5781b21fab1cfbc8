package db

import (
	"github.com/habedi/prodcat/catalog"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry as stored by the reference service.
type Product struct {
	ID        int             `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string          `gorm:"index;not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:text;not null" json:"price"` // Stored as text to keep the exact value
	Quantity  int             `gorm:"not null" json:"quantity"`
	Available bool            `json:"available"`
	Selected  bool            `json:"selected"`
}

// ToCatalog converts the stored row into the catalog model.
func (p Product) ToCatalog() catalog.Product {
	return catalog.Product{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  p.Quantity,
		Available: p.Available,
		Selected:  p.Selected,
	}
}

// FromCatalog converts a catalog product into a row.
func FromCatalog(p catalog.Product) Product {
	return Product{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  p.Quantity,
		Available: p.Available,
		Selected:  p.Selected,
	}
}

// ToCatalogList converts rows into catalog products, keeping the order.
func ToCatalogList(rows []Product) []catalog.Product {
	out := make([]catalog.Product, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ToCatalog())
	}
	return out
}
