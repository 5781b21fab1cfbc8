package cmd

import (
	"fmt"

	"github.com/habedi/prodcat/catalog"
	"github.com/habedi/prodcat/pkg/clierr"
	"github.com/habedi/prodcat/pkg/state"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// productsCmd groups the commands that work on the remote catalog.
func productsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List, search and manage products",
	}

	cmd.AddCommand(
		listCmd(),
		searchCmd(),
		selectCmd(),
		deleteCmd(),
		addCmd(),
		editCmd(),
		importCmd(),
		exportCmd(),
		dispatchCmd(),
	)

	return cmd
}

func listCmd() *cobra.Command {
	var availableOnly, selectedOnly bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the products in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if availableOnly && selectedOnly {
				return clierr.New(clierr.Validation, "only one of --available or --selected can be given", nil)
			}
			ev := catalog.GetAllEvent()
			switch {
			case availableOnly:
				ev = catalog.GetAvailableEvent()
			case selectedOnly:
				ev = catalog.GetSelectedEvent()
			}
			return runListing(cmd, ev)
		},
	}
	cmd.Flags().BoolVarP(&availableOnly, "available", "a", false, "Show only available products")
	cmd.Flags().BoolVarP(&selectedOnly, "selected", "s", false, "Show only selected products")
	return cmd
}

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search [keyword]",
		Short: "Search products by name; search is case-insensitive and matches part of the name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListing(cmd, catalog.SearchEvent(args[0]))
		},
	}
}

func runListing(cmd *cobra.Command, ev catalog.ActionEvent) error {
	s, err := openSession(cmd, catalog.NeverConfirm)
	if err != nil {
		return err
	}
	defer s.Close()

	log.Info().Str("action", ev.String()).Msg("Listing products")
	s.publishAndWait(ev)
	return s.renderList()
}

// dispatchCmd publishes a listing action by its wire name, the way the views do.
func dispatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "dispatch [action] [keyword]",
		Short:  "Publish a listing action by name, for example GET_AVAILABLE or SEARCH oak",
		Hidden: true,
		Args:   cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			action, err := catalog.ParseActionType(args[0])
			if err != nil {
				return clierr.New(clierr.Validation, err.Error(), err)
			}
			var ev catalog.ActionEvent
			switch action {
			case catalog.ActionGetAll:
				ev = catalog.GetAllEvent()
			case catalog.ActionGetAvailable:
				ev = catalog.GetAvailableEvent()
			case catalog.ActionGetSelected:
				ev = catalog.GetSelectedEvent()
			case catalog.ActionSearch:
				keyword := ""
				if len(args) == 2 {
					keyword = args[1]
				}
				ev = catalog.SearchEvent(keyword)
			default:
				return clierr.New(clierr.Validation, fmt.Sprintf("%s needs a product, use the select, delete, add or edit commands", action), nil)
			}
			return runListing(cmd, ev)
		},
	}
}

func selectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select [productID]",
		Short: "Toggle the selected flag of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, catalog.NeverConfirm)
			if err != nil {
				return err
			}
			defer s.Close()

			p, err := s.loadProduct(args[0])
			if err != nil {
				return err
			}
			s.bus.Publish(catalog.SelectEvent(p))
			s.ctrl.Wait()

			if msg, failed := state.Message(s.ctrl.ItemState(p.ID)); failed {
				errorColor.Fprintln(s.errOut, "Failed to update product:", msg)
				return clierr.New(clierr.Gateway, "failed to update product: "+msg, nil)
			}
			word := "deselected"
			if s.ctrl.Snapshot(p).Selected {
				word = "selected"
			}
			cmd.Printf("Product %d (%s) is now %s.\n", p.ID, p.Name, word)
			return nil
		},
	}
}

func deleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete [productID]",
		Short: "Delete a product after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, newTerminalConfirmer(yes, cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			defer s.Close()

			p, err := s.loadProduct(args[0])
			if err != nil {
				return err
			}

			s.publishAndWait(catalog.DeleteEvent(p))

			item := s.ctrl.ItemState(p.ID)
			if item == nil {
				return clierr.New(clierr.Declined, "Delete cancelled.", nil)
			}
			if msg, failed := state.Message(item); failed {
				errorColor.Fprintln(s.errOut, "Failed to delete product:", msg)
				return clierr.New(clierr.Gateway, "failed to delete product: "+msg, nil)
			}
			cmd.Printf("Product %d (%s) deleted.\n", p.ID, p.Name)
			return s.renderList()
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking for confirmation")
	return cmd
}

// productFlags holds the form fields shared by add and edit.
type productFlags struct {
	name      string
	price     string
	quantity  int
	available bool
	selected  bool
}

func (f *productFlags) register(cmd *cobra.Command, defaults catalog.Draft) {
	cmd.Flags().StringVarP(&f.name, "name", "n", defaults.Name, "Product name")
	cmd.Flags().StringVarP(&f.price, "price", "p", defaults.Price.String(), "Product price, for example 19.99")
	cmd.Flags().IntVarP(&f.quantity, "quantity", "q", defaults.Quantity, "Quantity in stock")
	cmd.Flags().BoolVar(&f.available, "available", defaults.Available, "Whether the product is available")
	cmd.Flags().BoolVar(&f.selected, "selected", defaults.Selected, "Whether the product is selected")
}

// apply copies the flags the user changed onto d.
func (f *productFlags) apply(cmd *cobra.Command, d *catalog.Draft) error {
	changed := cmd.Flags().Changed
	if changed("name") {
		d.Name = f.name
	}
	if changed("price") {
		price, err := decimal.NewFromString(f.price)
		if err != nil {
			return clierr.New(clierr.Validation, fmt.Sprintf("invalid price %q", f.price), err)
		}
		d.Price = price
	}
	if changed("quantity") {
		d.Quantity = f.quantity
	}
	if changed("available") {
		d.Available = f.available
	}
	if changed("selected") {
		d.Selected = f.selected
	}
	return nil
}

func addCmd() *cobra.Command {
	var flags productFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product to the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := catalog.NewDraft()
			if err := flags.apply(cmd, &d); err != nil {
				return err
			}

			s, err := openSession(cmd, catalog.NeverConfirm)
			if err != nil {
				return err
			}
			defer s.Close()

			var created catalog.Product
			s.withSpinner(func() { created, err = s.ctrl.Add(s.ctx, d) })
			if err != nil {
				return gatewayError(err)
			}

			cmd.Printf("Product %d (%s) added.\n", created.ID, created.Name)
			return s.renderList()
		},
	}
	flags.register(cmd, catalog.NewDraft())
	if err := cmd.MarkFlagRequired("name"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'name' flag as required")
	}
	return cmd
}

func editCmd() *cobra.Command {
	var flags productFlags
	cmd := &cobra.Command{
		Use:   "edit [productID]",
		Short: "Change the fields of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, catalog.NeverConfirm)
			if err != nil {
				return err
			}
			defer s.Close()

			p, err := s.loadProduct(args[0])
			if err != nil {
				return err
			}
			d := p.Draft()
			if err := flags.apply(cmd, &d); err != nil {
				return err
			}

			var updated catalog.Product
			s.withSpinner(func() { updated, err = s.ctrl.Update(s.ctx, d.WithID(p.ID)) })
			if err != nil {
				return gatewayError(err)
			}
			cmd.Printf("Product %d (%s) updated.\n", updated.ID, updated.Name)
			return s.renderList()
		},
	}
	flags.register(cmd, catalog.Draft{Price: decimal.Zero})
	return cmd
}
