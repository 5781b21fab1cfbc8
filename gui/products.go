package gui

import (
	"context"
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/habedi/prodcat/catalog"
	"github.com/habedi/prodcat/pkg/bus"
	"github.com/habedi/prodcat/pkg/state"
	"github.com/rs/zerolog/log"
)

// ProductsView shows the product list and turns user gestures into action events.
// Its widgets are only touched on the main Fyne thread.
type ProductsView struct {
	win    fyne.Window
	bus    *bus.Bus[catalog.ActionEvent]
	ctrl   *catalog.Controller
	ctx    context.Context
	cancel context.CancelFunc
	stop   []func()

	items    []*catalog.Product
	status   *widget.Label
	progress *widget.ProgressBarInfinite
	search   *widget.Entry
	list     *widget.List
	content  fyne.CanvasObject
}

// NewProductsView wires a controller for gw to b and builds the list UI.
// A nil confirmer asks with a dialog on win.
func NewProductsView(win fyne.Window, gw catalog.Gateway, b *bus.Bus[catalog.ActionEvent], confirmer catalog.Confirmer) *ProductsView {
	if confirmer == nil {
		confirmer = dialogConfirmer{win: win}
	}
	ctx, cancel := context.WithCancel(context.Background())
	v := &ProductsView{win: win, bus: b, ctx: ctx, cancel: cancel}

	v.ctrl = catalog.NewController(gw,
		catalog.WithConfirmer(confirmer),
		catalog.WithNavigator(v.router()),
	)
	v.stop = append(v.stop,
		v.ctrl.Attach(ctx, b),
		v.ctrl.Observe(func(st catalog.ListState) {
			runOnMain(func() { v.render(st) })
		}),
		v.ctrl.ObserveItems(func(id int, st catalog.ListState) {
			runOnMain(func() { v.renderItem(id, st) })
		}),
	)

	v.build()
	v.render(v.ctrl.State())
	return v
}

// router maps the navigation targets of the controller onto this window.
func (v *ProductsView) router() *catalog.Router {
	r := catalog.NewRouter()
	r.Handle(catalog.RouteProducts, func(map[string]string) error {
		v.bus.Publish(catalog.GetAllEvent())
		return nil
	})
	r.Handle(catalog.RouteNewProduct, func(map[string]string) error {
		runOnMain(v.showAddForm)
		return nil
	})
	r.Handle(catalog.RouteEditProduct, func(params map[string]string) error {
		id, err := strconv.Atoi(params["id"])
		if err != nil {
			return fmt.Errorf("invalid product id %q: %w", params["id"], err)
		}
		go v.openEditForm(id)
		return nil
	})
	return r
}

func (v *ProductsView) build() {
	v.status = widget.NewLabel("")
	v.progress = widget.NewProgressBarInfinite()
	v.progress.Hide()

	v.search = widget.NewEntry()
	v.search.SetPlaceHolder("Search products by name...")
	v.search.OnSubmitted = func(s string) {
		v.bus.Publish(catalog.SearchEvent(s))
	}
	searchBtn := widget.NewButtonWithIcon("Search", theme.SearchIcon(), func() {
		v.bus.Publish(catalog.SearchEvent(v.search.Text))
	})

	toolbar := container.NewHBox(
		widget.NewButtonWithIcon("All", theme.ListIcon(), func() { v.bus.Publish(catalog.GetAllEvent()) }),
		widget.NewButtonWithIcon("Available", theme.ConfirmIcon(), func() { v.bus.Publish(catalog.GetAvailableEvent()) }),
		widget.NewButtonWithIcon("Selected", theme.CheckButtonCheckedIcon(), func() { v.bus.Publish(catalog.GetSelectedEvent()) }),
		widget.NewButtonWithIcon("New", theme.ContentAddIcon(), func() { v.bus.Publish(catalog.NewProductEvent()) }),
	)

	v.list = widget.NewList(
		func() int { return len(v.items) },
		newProductRow,
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(v.items) {
				return
			}
			v.bindRow(obj, v.items[id])
		},
	)

	v.content = container.NewBorder(
		container.NewVBox(
			toolbar,
			container.NewBorder(nil, nil, nil, searchBtn, v.search),
			widget.NewSeparator(),
		),
		container.NewVBox(v.progress, v.status),
		nil, nil,
		v.list,
	)
}

// Content returns the root canvas object of the view.
func (v *ProductsView) Content() fyne.CanvasObject {
	return v.content
}

// Close detaches the view from the bus and cancels calls still in flight.
func (v *ProductsView) Close() {
	for _, stop := range v.stop {
		stop()
	}
	v.cancel()
	v.ctrl.Wait()
}

func (v *ProductsView) render(st catalog.ListState) {
	state.Match(st,
		func() struct{} {
			v.items = nil
			v.progress.Hide()
			v.status.SetText("Press All to load the products.")
			return struct{}{}
		},
		func() struct{} {
			v.progress.Show()
			v.status.SetText("Loading products...")
			return struct{}{}
		},
		func(items []*catalog.Product) struct{} {
			v.items = items
			v.progress.Hide()
			if len(items) == 0 {
				v.status.SetText("No products found.")
			} else {
				v.status.SetText(fmt.Sprintf("%d products", len(items)))
			}
			return struct{}{}
		},
		func(message string) struct{} {
			v.items = nil
			v.progress.Hide()
			v.status.SetText("Failed to load products: " + message)
			return struct{}{}
		},
	)
	v.list.Refresh()
}

func (v *ProductsView) renderItem(id int, st catalog.ListState) {
	if msg, failed := state.Message(st); failed {
		showErrorDialog(v.win, fmt.Sprintf("Product %d could not be updated", id), fmt.Errorf("%s", msg))
	}
	for i, p := range v.items {
		if p.ID == id {
			v.list.RefreshItem(i)
			return
		}
	}
}

func (v *ProductsView) openEditForm(id int) {
	p, err := v.ctrl.Load(v.ctx, id)
	if err != nil {
		log.Error().Err(err).Int("id", id).Msg("Failed to open the edit form")
		showErrorDialog(v.win, "Failed to load the product", err)
		return
	}
	runOnMain(func() { v.showEditForm(p) })
}

// productRow is the template of one list entry.
type productRow struct {
	widget.BaseWidget
	name, details      *widget.Label
	selectBtn, editBtn *widget.Button
	deleteBtn          *widget.Button
}

func newProductRow() fyne.CanvasObject {
	r := &productRow{
		name:      widget.NewLabelWithStyle("Product name", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		details:   widget.NewLabel("Price, quantity"),
		selectBtn: widget.NewButtonWithIcon("", theme.CheckButtonIcon(), nil),
		editBtn:   widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), nil),
		deleteBtn: widget.NewButtonWithIcon("", theme.DeleteIcon(), nil),
	}
	r.deleteBtn.Importance = widget.DangerImportance
	r.ExtendBaseWidget(r)
	return r
}

func (r *productRow) CreateRenderer() fyne.WidgetRenderer {
	buttons := container.NewHBox(r.selectBtn, r.editBtn, r.deleteBtn)
	return widget.NewSimpleRenderer(container.NewBorder(nil, nil, nil, buttons, container.NewHBox(r.name, r.details)))
}

func (v *ProductsView) bindRow(obj fyne.CanvasObject, p *catalog.Product) {
	r := obj.(*productRow)
	snap := v.ctrl.Snapshot(p)
	r.name.SetText(snap.Name)
	r.details.SetText(fmt.Sprintf("%s  qty %d  %s", snap.Price.StringFixed(2), snap.Quantity, availability(snap)))

	if snap.Selected {
		r.selectBtn.SetIcon(theme.CheckButtonCheckedIcon())
	} else {
		r.selectBtn.SetIcon(theme.CheckButtonIcon())
	}
	if item := v.ctrl.ItemState(snap.ID); state.KindOf(item) == state.KindLoading {
		r.selectBtn.Disable()
		r.deleteBtn.Disable()
	} else {
		r.selectBtn.Enable()
		r.deleteBtn.Enable()
	}

	r.selectBtn.OnTapped = func() { v.bus.Publish(catalog.SelectEvent(p)) }
	r.editBtn.OnTapped = func() { v.bus.Publish(catalog.EditEvent(p)) }
	r.deleteBtn.OnTapped = func() { v.bus.Publish(catalog.DeleteEvent(p)) }
}

func availability(p catalog.Product) string {
	if p.Available {
		return "available"
	}
	return "unavailable"
}
