package gui

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

// dialogConfirmer asks with a modal dialog and blocks until it is answered.
type dialogConfirmer struct {
	win fyne.Window
}

func (c dialogConfirmer) Confirm(ctx context.Context, message string) bool {
	answer := make(chan bool, 1)
	runOnMain(func() {
		dialog.ShowConfirm("Delete product", message, func(ok bool) { answer <- ok }, c.win)
	})
	select {
	case <-ctx.Done():
		return false
	case ok := <-answer:
		return ok
	}
}
