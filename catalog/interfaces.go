package catalog

import (
	"context"
	"strconv"

	"github.com/rs/zerolog/log"
)

// Gateway performs CRUD calls against the remote catalog service.
type Gateway interface {
	ListAll(ctx context.Context) ([]Product, error)
	ListAvailable(ctx context.Context) ([]Product, error)
	ListSelected(ctx context.Context) ([]Product, error)
	Search(ctx context.Context, keyword string) ([]Product, error)
	// Select toggles the selection flag and returns the server-confirmed product.
	Select(ctx context.Context, p Product) (Product, error)
	Delete(ctx context.Context, p Product) error
	Save(ctx context.Context, d Draft) (Product, error)
	Get(ctx context.Context, id int) (Product, error)
	Update(ctx context.Context, p Product) (Product, error)
}

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, message string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(ctx context.Context, message string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, message string) bool { return f(ctx, message) }

var (
	AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, string) bool { return true })
	NeverConfirm  Confirmer = ConfirmFunc(func(context.Context, string) bool { return false })
)

// Navigator changes the current route of the application.
type Navigator interface {
	Navigate(path string) error
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(path string) error

func (f NavigatorFunc) Navigate(path string) error { return f(path) }

// Routes used by the product screens.
const (
	RouteProducts    = "/products"
	RouteNewProduct  = "/newProduct"
	RouteEditProduct = "/editProduct/{id}"
)

// EditProductPath returns the edit route for the product with the given ID.
func EditProductPath(id int) string {
	return "/editProduct/" + strconv.Itoa(id)
}

// DeleteConfirmation is the question shown before a product is deleted.
const DeleteConfirmation = "Are you sure?"

var discardNavigator = NavigatorFunc(func(path string) error {
	log.Warn().Str("path", path).Msg("No navigator configured, ignoring route change")
	return nil
})
