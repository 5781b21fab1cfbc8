package catalog

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// ErrUnknownRoute is returned by Router.Navigate when no route matches.
var ErrUnknownRoute = errors.New("unknown route")

// RouteHandler is invoked with the parameters captured from the path.
type RouteHandler func(params map[string]string) error

type route struct {
	pattern  string
	segments []string
	handler  RouteHandler
}

// Router is a Navigator that dispatches paths to registered handlers.
// Patterns are slash separated; a segment written as {name} captures one path segment.
type Router struct {
	mu     sync.RWMutex
	routes []route
}

// NewRouter creates an empty Router.
func NewRouter() *Router {
	return &Router{}
}

// Handle registers handler for pattern. Routes are matched in registration order.
func (r *Router) Handle(pattern string, handler RouteHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route{
		pattern:  pattern,
		segments: splitPath(pattern),
		handler:  handler,
	})
}

// Navigate runs the handler of the first route matching path.
func (r *Router) Navigate(path string) error {
	r.mu.RLock()
	routes := make([]route, len(r.routes))
	copy(routes, r.routes)
	r.mu.RUnlock()

	parts := splitPath(path)
	for _, rt := range routes {
		params, ok := match(rt.segments, parts)
		if !ok {
			continue
		}
		log.Debug().Str("path", path).Str("route", rt.pattern).Msg("Navigating")
		return rt.handler(params)
	}
	return fmt.Errorf("%w: %s", ErrUnknownRoute, path)
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func match(pattern, parts []string) (map[string]string, bool) {
	if len(pattern) != len(parts) {
		return nil, false
	}
	params := make(map[string]string)
	for i, seg := range pattern {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			if parts[i] == "" {
				return nil, false
			}
			params[seg[1:len(seg)-1]] = parts[i]
			continue
		}
		if seg != parts[i] {
			return nil, false
		}
	}
	return params, true
}
