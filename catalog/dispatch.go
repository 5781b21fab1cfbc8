package catalog

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Dispatch runs the operation mapped to ev.Type exactly once.
// A malformed payload is rejected with ErrMalformedEvent; an unknown type is ignored.
func (c *Controller) Dispatch(ctx context.Context, ev ActionEvent) error {
	if !ev.Type.Known() {
		log.Debug().Str("action", string(ev.Type)).Msg("Ignoring unknown action")
		return nil
	}
	if err := ev.Validate(); err != nil {
		return err
	}

	switch ev.Type {
	case ActionGetAll:
		c.ListAll(ctx)
	case ActionGetAvailable:
		c.ListAvailable(ctx)
	case ActionGetSelected:
		c.ListSelected(ctx)
	case ActionSearch:
		c.Search(ctx, ev.Payload.(string))
	case ActionNew:
		return c.New()
	case ActionEdit:
		return c.Edit(ev.Payload.(*Product))
	case ActionSelect:
		c.Select(ctx, ev.Payload.(*Product))
	case ActionDelete:
		c.Delete(ctx, ev.Payload.(*Product))
	}
	return nil
}
