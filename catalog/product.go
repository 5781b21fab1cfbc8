package catalog

import (
	"errors"
	"fmt"

	"github.com/habedi/prodcat/pkg/validation"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound       = errors.New("product not found")
	ErrInvalidProduct = errors.New("invalid product")
)

// Product is one catalog entry as served by the catalog service.
type Product struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Available bool            `json:"available"`
	Selected  bool            `json:"selected"`
}

// Validate checks a persisted product before it is sent for update.
func (p Product) Validate() error {
	if err := validation.ValidateProductID(p.ID); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProduct, err)
	}
	return p.Draft().Validate()
}

// Draft returns the editable fields of p.
func (p Product) Draft() Draft {
	return Draft{
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  p.Quantity,
		Available: p.Available,
		Selected:  p.Selected,
	}
}

// Draft holds the fields of a product that has not been created yet.
type Draft struct {
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Available bool            `json:"available"`
	Selected  bool            `json:"selected"`
}

// NewDraft returns the defaults of the add form.
func NewDraft() Draft {
	return Draft{Price: decimal.Zero, Available: true, Selected: true}
}

// Validate requires a name and non-negative price and quantity.
func (d Draft) Validate() error {
	if err := errors.Join(
		validation.ValidateProductName(d.Name),
		validation.ValidatePrice(d.Price),
		validation.ValidateQuantity(d.Quantity),
	); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProduct, err)
	}
	return nil
}

// WithID turns the draft into a product carrying id.
func (d Draft) WithID(id int) Product {
	return Product{
		ID:        id,
		Name:      d.Name,
		Price:     d.Price,
		Quantity:  d.Quantity,
		Available: d.Available,
		Selected:  d.Selected,
	}
}
