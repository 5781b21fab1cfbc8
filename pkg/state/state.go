// Package state models the lifecycle of one asynchronous fetch as a closed sum type.
//
// A State is exactly one of Loading, Loaded or Failed. A nil State is the idle state that
// precedes the first fetch. Values are never mutated; a transition produces a new value.
package state

import "slices"

// Kind identifies the active variant of a State.
type Kind int

const (
	KindIdle Kind = iota
	KindLoading
	KindLoaded
	KindFailed
)

func (k Kind) String() string {
	switch k {
	case KindIdle:
		return "idle"
	case KindLoading:
		return "loading"
	case KindLoaded:
		return "loaded"
	case KindFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is implemented only by Loading, Loaded and Failed.
// The unexported method mentions T so the element type can be inferred from a State value.
type State[T any] interface {
	Kind() Kind
	sealed(T)
}

// Loading marks a fetch in flight.
type Loading[T any] struct{}

// Loaded carries the items of a successful fetch in the order the source returned them.
type Loaded[T any] struct {
	Items []T
}

// Failed carries a human-readable description of a failed fetch.
type Failed[T any] struct {
	Message string
}

func (Loading[T]) Kind() Kind { return KindLoading }
func (Loaded[T]) Kind() Kind  { return KindLoaded }
func (Failed[T]) Kind() Kind  { return KindFailed }

func (Loading[T]) sealed(T) {}
func (Loaded[T]) sealed(T)  {}
func (Failed[T]) sealed(T)  {}

// NewLoading returns the Loading variant.
func NewLoading[T any]() State[T] { return Loading[T]{} }

// NewLoaded returns the Loaded variant holding a copy of items.
func NewLoaded[T any](items []T) State[T] {
	if items == nil {
		items = []T{}
	}
	return Loaded[T]{Items: slices.Clone(items)}
}

// NewFailed returns the Failed variant.
func NewFailed[T any](message string) State[T] { return Failed[T]{Message: message} }

// KindOf reports the variant of s, treating nil as idle.
func KindOf[T any](s State[T]) Kind {
	if s == nil {
		return KindIdle
	}
	return s.Kind()
}

// Match calls the handler for the active variant of s and returns its result.
// Every handler must be non-nil so that no case can be left unhandled.
func Match[T, R any](
	s State[T],
	idle func() R,
	loading func() R,
	loaded func(items []T) R,
	failed func(message string) R,
) R {
	switch v := s.(type) {
	case nil:
		return idle()
	case Loading[T]:
		return loading()
	case Loaded[T]:
		return loaded(v.Items)
	case Failed[T]:
		return failed(v.Message)
	default:
		// Unreachable: the interface is sealed.
		return idle()
	}
}

// Items returns the payload of a Loaded state.
func Items[T any](s State[T]) ([]T, bool) {
	if v, ok := s.(Loaded[T]); ok {
		return v.Items, true
	}
	return nil, false
}

// Message returns the payload of a Failed state.
func Message[T any](s State[T]) (string, bool) {
	if v, ok := s.(Failed[T]); ok {
		return v.Message, true
	}
	return "", false
}
