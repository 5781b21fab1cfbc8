package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedEvent is returned when an event payload does not match its type.
var ErrMalformedEvent = errors.New("malformed action event")

// ActionType names a catalog operation that can be requested over the bus.
type ActionType string

const (
	ActionGetAll       ActionType = "GET_ALL"
	ActionGetAvailable ActionType = "GET_AVAILABLE"
	ActionGetSelected  ActionType = "GET_SELECTED"
	ActionSearch       ActionType = "SEARCH"
	ActionNew          ActionType = "NEW"
	ActionEdit         ActionType = "EDIT"
	ActionSelect       ActionType = "SELECT"
	ActionDelete       ActionType = "DELETE"
)

// ActionTypes returns the closed set of action types.
func ActionTypes() []ActionType {
	return []ActionType{
		ActionGetAll, ActionGetAvailable, ActionGetSelected, ActionSearch,
		ActionNew, ActionEdit, ActionSelect, ActionDelete,
	}
}

// ParseActionType parses the wire form of an action type, ignoring case.
func ParseActionType(s string) (ActionType, error) {
	want := ActionType(strings.ToUpper(strings.TrimSpace(s)))
	for _, t := range ActionTypes() {
		if t == want {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown action type: %q", s)
}

// Known reports whether t belongs to the enumeration.
func (t ActionType) Known() bool {
	for _, k := range ActionTypes() {
		if k == t {
			return true
		}
	}
	return false
}

// ActionEvent asks the controller to perform an operation.
// Payload is a string for Search, a *Product for Edit, Select and Delete, and nil otherwise.
type ActionEvent struct {
	Type    ActionType
	Payload any
}

func GetAllEvent() ActionEvent       { return ActionEvent{Type: ActionGetAll} }
func GetAvailableEvent() ActionEvent { return ActionEvent{Type: ActionGetAvailable} }
func GetSelectedEvent() ActionEvent  { return ActionEvent{Type: ActionGetSelected} }
func NewProductEvent() ActionEvent   { return ActionEvent{Type: ActionNew} }

func SearchEvent(keyword string) ActionEvent { return ActionEvent{Type: ActionSearch, Payload: keyword} }
func EditEvent(p *Product) ActionEvent       { return ActionEvent{Type: ActionEdit, Payload: p} }
func SelectEvent(p *Product) ActionEvent     { return ActionEvent{Type: ActionSelect, Payload: p} }
func DeleteEvent(p *Product) ActionEvent     { return ActionEvent{Type: ActionDelete, Payload: p} }

// Validate checks that the payload has the shape required by the type.
// Events of unknown type are not validated.
func (e ActionEvent) Validate() error {
	switch e.Type {
	case ActionGetAll, ActionGetAvailable, ActionGetSelected, ActionNew:
		if e.Payload != nil {
			return fmt.Errorf("%w: %s takes no payload, got %T", ErrMalformedEvent, e.Type, e.Payload)
		}
	case ActionSearch:
		if _, ok := e.Payload.(string); !ok {
			return fmt.Errorf("%w: %s needs a string keyword, got %T", ErrMalformedEvent, e.Type, e.Payload)
		}
	case ActionEdit, ActionSelect, ActionDelete:
		p, ok := e.Payload.(*Product)
		if !ok || p == nil {
			return fmt.Errorf("%w: %s needs a *Product, got %T", ErrMalformedEvent, e.Type, e.Payload)
		}
	}
	return nil
}

func (e ActionEvent) String() string {
	switch v := e.Payload.(type) {
	case nil:
		return string(e.Type)
	case string:
		return fmt.Sprintf("%s(%q)", e.Type, v)
	case *Product:
		if v == nil {
			return fmt.Sprintf("%s(<nil>)", e.Type)
		}
		return fmt.Sprintf("%s(#%d)", e.Type, v.ID)
	default:
		return fmt.Sprintf("%s(%T)", e.Type, v)
	}
}
