package gui

import (
	"errors"
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/data/validation"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/habedi/prodcat/catalog"
	pvalidation "github.com/habedi/prodcat/pkg/validation"
	"github.com/shopspring/decimal"
)

// productForm holds the widgets shared by the add and edit dialogs.
type productForm struct {
	name      *widget.Entry
	price     *widget.Entry
	quantity  *widget.Entry
	available *widget.Check
	selected  *widget.Check
}

func newProductForm(d catalog.Draft) *productForm {
	f := &productForm{
		name:      widget.NewEntry(),
		price:     widget.NewEntry(),
		quantity:  widget.NewEntry(),
		available: widget.NewCheck("", nil),
		selected:  widget.NewCheck("", nil),
	}
	f.name.SetPlaceHolder("Product name")
	f.name.Validator = pvalidation.ValidateProductName
	f.price.SetPlaceHolder("0.00")
	f.price.Validator = func(s string) error {
		p, err := decimal.NewFromString(s)
		if err != nil {
			return errors.New("must be a number such as 19.99")
		}
		return pvalidation.ValidatePrice(p)
	}
	f.quantity.Validator = validation.NewRegexp(`^\d+$`, "Must be a whole number")

	f.name.SetText(d.Name)
	f.price.SetText(d.Price.StringFixed(2))
	f.quantity.SetText(strconv.Itoa(d.Quantity))
	f.available.SetChecked(d.Available)
	f.selected.SetChecked(d.Selected)
	return f
}

func (f *productForm) items() []*widget.FormItem {
	return []*widget.FormItem{
		{Text: "Name", Widget: f.name},
		{Text: "Price", Widget: f.price},
		{Text: "Quantity", Widget: f.quantity},
		{Text: "Available", Widget: f.available},
		{Text: "Selected", Widget: f.selected},
	}
}

// draft reads the entered values.
func (f *productForm) draft() (catalog.Draft, error) {
	price, err := decimal.NewFromString(f.price.Text)
	if err != nil {
		return catalog.Draft{}, fmt.Errorf("%w: invalid price %q", catalog.ErrInvalidProduct, f.price.Text)
	}
	qty, err := strconv.Atoi(f.quantity.Text)
	if err != nil {
		return catalog.Draft{}, fmt.Errorf("%w: invalid quantity %q", catalog.ErrInvalidProduct, f.quantity.Text)
	}
	d := catalog.Draft{
		Name:      f.name.Text,
		Price:     price,
		Quantity:  qty,
		Available: f.available.Checked,
		Selected:  f.selected.Checked,
	}
	return d, d.Validate()
}

func (v *ProductsView) showAddForm() {
	f := newProductForm(catalog.NewDraft())
	v.showForm("New product", "Add", f, func(d catalog.Draft) error {
		_, err := v.ctrl.Add(v.ctx, d)
		return err
	})
}

func (v *ProductsView) showEditForm(p catalog.Product) {
	f := newProductForm(p.Draft())
	v.showForm(fmt.Sprintf("Edit product #%d", p.ID), "Save", f, func(d catalog.Draft) error {
		_, err := v.ctrl.Update(v.ctx, d.WithID(p.ID))
		return err
	})
}

// showForm opens f in a dialog and submits it off the main thread.
func (v *ProductsView) showForm(title, confirm string, f *productForm, submit func(catalog.Draft) error) {
	dlg := dialog.NewForm(title, confirm, "Cancel", f.items(), func(ok bool) {
		if !ok {
			return
		}
		d, err := f.draft()
		if err != nil {
			showErrorDialog(v.win, "The product is not valid", err)
			return
		}
		go func() {
			if err := submit(d); err != nil {
				showErrorDialog(v.win, "Failed to save the product", err)
			}
		}()
	}, v.win)
	dlg.Resize(fyne.NewSize(420, 320))
	dlg.Show()
}
