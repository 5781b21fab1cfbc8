package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/habedi/prodcat/catalog"
	"github.com/habedi/prodcat/client"
	"github.com/habedi/prodcat/config"
	"github.com/habedi/prodcat/pkg/bus"
	"github.com/habedi/prodcat/pkg/clierr"
	"github.com/habedi/prodcat/pkg/state"
	"github.com/habedi/prodcat/pkg/validation"
	"github.com/spf13/cobra"
)

// Set by the root command's persistent flags.
var (
	configPath  string
	baseURLFlag string
)

// loadConfig reads the config file and environment, then applies --url.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, clierr.New(clierr.Validation, err.Error(), err)
	}
	if baseURLFlag != "" {
		cfg.BaseURL = baseURLFlag
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, clierr.New(clierr.Validation, "invalid configuration: "+err.Error(), err)
	}
	return cfg, nil
}

func newGateway(cfg config.Config) *client.Client {
	return client.New(cfg.BaseURL,
		client.WithTimeout(cfg.Timeout),
		client.WithRateLimit(cfg.RequestsPerSecond, cfg.Burst),
	)
}

// session wires one command invocation: a gateway, a bus and the controller listening on it.
type session struct {
	ctx    context.Context
	gw     catalog.Gateway
	bus    *bus.Bus[catalog.ActionEvent]
	ctrl   *catalog.Controller
	out    io.Writer
	errOut io.Writer
	detach func()
}

func openSession(cmd *cobra.Command, confirmer catalog.Confirmer) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	gw := newGateway(cfg)
	b := bus.New[catalog.ActionEvent]()

	// Forms return to the list once saved, which on a terminal means printing it again.
	router := catalog.NewRouter()
	router.Handle(catalog.RouteProducts, func(map[string]string) error {
		b.Publish(catalog.GetAllEvent())
		return nil
	})

	ctrl := catalog.NewController(gw,
		catalog.WithConfirmer(confirmer),
		catalog.WithNavigator(router),
	)

	s := &session{
		ctx:    ctx,
		gw:     gw,
		bus:    b,
		ctrl:   ctrl,
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
	}
	s.detach = ctrl.Attach(ctx, b)
	return s, nil
}

func (s *session) Close() {
	s.ctrl.Wait()
	s.detach()
}

// withSpinner runs fn, shows a spinner while the list is loading and waits for every
// gateway call fn caused.
func (s *session) withSpinner(fn func()) {
	sp := newSpinner(s.errOut, "Loading products...")
	cancel := s.ctrl.Observe(func(st catalog.ListState) {
		if state.KindOf(st) == state.KindLoading {
			sp.Start()
			return
		}
		sp.Stop()
	})
	defer cancel()

	fn()
	s.ctrl.Wait()
	sp.Stop()
}

func (s *session) publishAndWait(ev catalog.ActionEvent) {
	s.withSpinner(func() { s.bus.Publish(ev) })
}

// renderList prints the current list state.
func (s *session) renderList() error {
	return renderState(s.out, s.errOut, s.ctrl.State())
}

// loadProduct fetches the product with the id given as a command argument.
func (s *session) loadProduct(arg string) (*catalog.Product, error) {
	id, err := parseProductID(arg)
	if err != nil {
		return nil, err
	}
	p, err := s.ctrl.Load(s.ctx, id)
	if err != nil {
		return nil, gatewayError(err)
	}
	return &p, nil
}

func parseProductID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err == nil {
		err = validation.ValidateProductID(id)
	}
	if err != nil {
		return 0, clierr.New(clierr.Validation, fmt.Sprintf("invalid product ID %q: it must be a positive integer", arg), err)
	}
	return id, nil
}

// gatewayError turns a gateway failure into a CLI error.
func gatewayError(err error) error {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return clierr.New(clierr.NotFound, "product not found", err)
	case errors.Is(err, catalog.ErrInvalidProduct):
		return clierr.New(clierr.Validation, err.Error(), err)
	default:
		return clierr.New(clierr.Gateway, err.Error(), err)
	}
}
