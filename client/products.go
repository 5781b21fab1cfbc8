package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/habedi/prodcat/catalog"
)

func (c *Client) collectionURL(query url.Values) string {
	u := c.baseURL + productsPath
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) itemURL(id int) string {
	return c.baseURL + productsPath + "/" + strconv.Itoa(id)
}

func (c *Client) list(ctx context.Context, query url.Values) ([]catalog.Product, error) {
	products := []catalog.Product{}
	if err := c.do(ctx, http.MethodGet, c.collectionURL(query), nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListAll fetches every product.
func (c *Client) ListAll(ctx context.Context) ([]catalog.Product, error) {
	return c.list(ctx, nil)
}

// ListAvailable fetches products with available=true.
func (c *Client) ListAvailable(ctx context.Context) ([]catalog.Product, error) {
	return c.list(ctx, url.Values{"available": {"true"}})
}

// ListSelected fetches products with selected=true.
func (c *Client) ListSelected(ctx context.Context) ([]catalog.Product, error) {
	return c.list(ctx, url.Values{"selected": {"true"}})
}

// Search fetches products whose name contains keyword. The keyword is sent as is, even when empty.
func (c *Client) Search(ctx context.Context, keyword string) ([]catalog.Product, error) {
	return c.list(ctx, url.Values{"name_like": {keyword}})
}

// Get fetches one product.
func (c *Client) Get(ctx context.Context, id int) (catalog.Product, error) {
	var p catalog.Product
	if err := c.do(ctx, http.MethodGet, c.itemURL(id), nil, &p); err != nil {
		return catalog.Product{}, err
	}
	return p, nil
}

// Select flips the selected flag of p and returns the product as stored by the service.
func (c *Client) Select(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	p.Selected = !p.Selected
	return c.Update(ctx, p)
}

// Update replaces the stored product with p.
func (c *Client) Update(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	if p.ID <= 0 {
		return catalog.Product{}, fmt.Errorf("%w: missing id", catalog.ErrInvalidProduct)
	}
	var out catalog.Product
	if err := c.do(ctx, http.MethodPut, c.itemURL(p.ID), p, &out); err != nil {
		return catalog.Product{}, err
	}
	return out, nil
}

// Save creates a product from d.
func (c *Client) Save(ctx context.Context, d catalog.Draft) (catalog.Product, error) {
	var out catalog.Product
	if err := c.do(ctx, http.MethodPost, c.collectionURL(nil), d, &out); err != nil {
		return catalog.Product{}, err
	}
	return out, nil
}

// Delete removes p from the service.
func (c *Client) Delete(ctx context.Context, p catalog.Product) error {
	if p.ID <= 0 {
		return fmt.Errorf("%w: missing id", catalog.ErrInvalidProduct)
	}
	return c.do(ctx, http.MethodDelete, c.itemURL(p.ID), nil, nil)
}
