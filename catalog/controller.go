// Package catalog holds the product screen's orchestration: the controller that owns the
// displayed product list, the action events that drive it and the interfaces it consumes.
package catalog

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/habedi/prodcat/pkg/bus"
	"github.com/habedi/prodcat/pkg/state"
	"github.com/rs/zerolog/log"
)

// ListState is the observable state of the displayed product list.
type ListState = state.State[*Product]

// Option configures a Controller.
type Option func(*Controller)

// WithConfirmer sets the capability asked before a delete. The default declines.
func WithConfirmer(c Confirmer) Option {
	return func(ctl *Controller) {
		ctl.confirmer = c
	}
}

// WithNavigator sets the route changer used by New, Edit and the form operations.
func WithNavigator(n Navigator) Option {
	return func(ctl *Controller) {
		ctl.navigator = n
	}
}

// WithStaleResults disables the request-id guard: the last fetch to complete wins,
// even when a newer fetch was issued after it.
func WithStaleResults(allow bool) Option {
	return func(ctl *Controller) {
		ctl.allowStale = allow
	}
}

type listObserver struct {
	id uint64
	fn func(ListState)
}

type itemObserver struct {
	id uint64
	fn func(id int, s ListState)
}

// Controller owns the product list currently shown and maps actions to gateway calls.
//
// List operations return immediately after the state has moved to Loading; the gateway call
// runs on its own goroutine. Only the newest fetch may settle the list state unless
// WithStaleResults(true) is given. Observers run one at a time in emission order.
type Controller struct {
	gateway    Gateway
	confirmer  Confirmer
	navigator  Navigator
	allowStale bool

	mu            sync.Mutex
	current       ListState
	latest        uint64
	items         map[int]ListState
	observers     []listObserver
	itemObservers []itemObserver
	nextObserver  uint64

	// emitMu orders notifications so Loading for a fetch is always seen before its result.
	emitMu   sync.Mutex
	inflight sync.WaitGroup
}

// NewController creates a Controller that reads and writes through gw.
func NewController(gw Gateway, opts ...Option) *Controller {
	c := &Controller{
		gateway:   gw,
		confirmer: NeverConfirm,
		navigator: discardNavigator,
		items:     make(map[int]ListState),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current list state; nil before the first fetch.
func (c *Controller) State() ListState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// ItemState returns the state of the last select or delete issued for the product with id.
func (c *Controller) ItemState(id int) ListState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items[id]
}

// Snapshot returns a copy of p taken under the lock Select patches it with.
// Readers on other goroutines use it instead of dereferencing a listed product.
func (c *Controller) Snapshot(p *Product) Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return *p
}

// Observe registers fn to receive every list state transition.
// fn must not call list operations synchronously.
func (c *Controller) Observe(fn func(ListState)) (cancel func()) {
	c.mu.Lock()
	c.nextObserver++
	id := c.nextObserver
	c.observers = append(c.observers, listObserver{id: id, fn: fn})
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.observers = slices.DeleteFunc(c.observers, func(o listObserver) bool { return o.id == id })
	}
}

// ObserveItems registers fn to receive per-product select and delete outcomes.
func (c *Controller) ObserveItems(fn func(id int, s ListState)) (cancel func()) {
	c.mu.Lock()
	c.nextObserver++
	id := c.nextObserver
	c.itemObservers = append(c.itemObservers, itemObserver{id: id, fn: fn})
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.itemObservers = slices.DeleteFunc(c.itemObservers, func(o itemObserver) bool { return o.id == id })
	}
}

// Wait blocks until every gateway call issued so far has settled.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

// Attach subscribes the controller to b so published events are dispatched.
func (c *Controller) Attach(ctx context.Context, b *bus.Bus[ActionEvent]) (detach func()) {
	return b.Subscribe(func(ev ActionEvent) {
		if err := c.Dispatch(ctx, ev); err != nil {
			log.Error().Err(err).Str("action", ev.String()).Msg("Failed to dispatch action")
		}
	})
}

// ListAll shows every product.
func (c *Controller) ListAll(ctx context.Context) {
	c.fetch(ctx, "list-all", c.gateway.ListAll)
}

// ListAvailable shows the products flagged as available.
func (c *Controller) ListAvailable(ctx context.Context) {
	c.fetch(ctx, "list-available", c.gateway.ListAvailable)
}

// ListSelected shows the products flagged as selected.
func (c *Controller) ListSelected(ctx context.Context) {
	c.fetch(ctx, "list-selected", c.gateway.ListSelected)
}

// Search shows the products matching keyword. The empty keyword is passed through unchanged.
func (c *Controller) Search(ctx context.Context, keyword string) {
	c.fetch(ctx, "search", func(ctx context.Context) ([]Product, error) {
		return c.gateway.Search(ctx, keyword)
	})
}

func (c *Controller) fetch(ctx context.Context, op string, call func(context.Context) ([]Product, error)) {
	var id uint64
	c.transition(func() (ListState, bool) {
		c.latest++
		id = c.latest
		return state.NewLoading[*Product](), true
	})
	log.Debug().Str("operation", op).Uint64("request", id).Msg("Fetching products")

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()

		products, err := call(ctx)
		var next ListState
		if err != nil {
			log.Error().Err(err).Str("operation", op).Uint64("request", id).Msg("Failed to fetch products")
			next = state.NewFailed[*Product](err.Error())
		} else {
			next = state.NewLoaded(toPointers(products))
		}

		applied := c.transition(func() (ListState, bool) {
			if !c.allowStale && id != c.latest {
				return nil, false
			}
			return next, true
		})
		if !applied {
			log.Debug().Str("operation", op).Uint64("request", id).Msg("Discarded stale result")
		}
	}()
}

// transition runs update under the state lock and, when it applies, notifies list observers.
func (c *Controller) transition(update func() (ListState, bool)) bool {
	c.emitMu.Lock()
	defer c.emitMu.Unlock()

	c.mu.Lock()
	next, ok := update()
	if !ok {
		c.mu.Unlock()
		return false
	}
	c.current = next
	observers := slices.Clone(c.observers)
	c.mu.Unlock()

	for _, o := range observers {
		o.fn(next)
	}
	return true
}

func (c *Controller) setItem(id int, s ListState) {
	c.emitMu.Lock()
	defer c.emitMu.Unlock()

	c.mu.Lock()
	c.items[id] = s
	observers := slices.Clone(c.itemObservers)
	c.mu.Unlock()

	for _, o := range observers {
		o.fn(id, s)
	}
}

// Select toggles the selection flag of p on the server and, on success, patches p in place
// with the confirmed value. The outcome is reported through ItemState and ObserveItems.
func (c *Controller) Select(ctx context.Context, p *Product) {
	c.setItem(p.ID, state.NewLoading[*Product]())

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()

		confirmed, err := c.gateway.Select(ctx, c.Snapshot(p))
		if err != nil {
			log.Error().Err(err).Int("id", p.ID).Msg("Failed to select product")
			c.setItem(p.ID, state.NewFailed[*Product](err.Error()))
			return
		}

		c.mu.Lock()
		p.Selected = confirmed.Selected
		c.mu.Unlock()
		c.setItem(p.ID, state.NewLoaded([]*Product{p}))
	}()
}

// Delete removes p after the confirmer approves and then reloads the full list.
// A declined confirmation makes no gateway call.
func (c *Controller) Delete(ctx context.Context, p *Product) {
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()

		if !c.confirmer.Confirm(ctx, DeleteConfirmation) {
			log.Info().Int("id", p.ID).Msg("Delete declined")
			return
		}

		c.setItem(p.ID, state.NewLoading[*Product]())
		if err := c.gateway.Delete(ctx, c.Snapshot(p)); err != nil {
			log.Error().Err(err).Int("id", p.ID).Msg("Failed to delete product")
			c.setItem(p.ID, state.NewFailed[*Product](err.Error()))
			return
		}

		log.Info().Int("id", p.ID).Msg("Product deleted")
		c.setItem(p.ID, state.NewLoaded[*Product](nil))
		c.ListAll(ctx)
	}()
}

// New opens the add form.
func (c *Controller) New() error {
	return c.navigator.Navigate(RouteNewProduct)
}

// Edit opens the edit form of p.
func (c *Controller) Edit(p *Product) error {
	return c.navigator.Navigate(EditProductPath(p.ID))
}

// Add creates a product from d and returns to the product list.
func (c *Controller) Add(ctx context.Context, d Draft) (Product, error) {
	if err := d.Validate(); err != nil {
		return Product{}, err
	}
	created, err := c.gateway.Save(ctx, d)
	if err != nil {
		return Product{}, fmt.Errorf("failed to save product: %w", err)
	}
	log.Info().Int("id", created.ID).Str("name", created.Name).Msg("Product created")
	return created, c.navigator.Navigate(RouteProducts)
}

// Load fetches one product to prefill the edit form.
func (c *Controller) Load(ctx context.Context, id int) (Product, error) {
	p, err := c.gateway.Get(ctx, id)
	if err != nil {
		return Product{}, fmt.Errorf("failed to load product %d: %w", id, err)
	}
	return p, nil
}

// Update saves the edited product and returns to the product list.
func (c *Controller) Update(ctx context.Context, p Product) (Product, error) {
	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	updated, err := c.gateway.Update(ctx, p)
	if err != nil {
		return Product{}, fmt.Errorf("failed to update product %d: %w", p.ID, err)
	}
	log.Info().Int("id", updated.ID).Msg("Product updated")
	return updated, c.navigator.Navigate(RouteProducts)
}

func toPointers(products []Product) []*Product {
	out := make([]*Product, len(products))
	for i := range products {
		p := products[i]
		out[i] = &p
	}
	return out
}
