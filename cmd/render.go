package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/habedi/prodcat/catalog"
	"github.com/habedi/prodcat/pkg/clierr"
	"github.com/habedi/prodcat/pkg/state"
	"github.com/olekukonko/tablewriter"
	"github.com/schollz/progressbar/v3"
)

var errorColor = color.New(color.FgRed, color.Bold)

// renderState prints a loaded list as a table and a failure in red.
func renderState(out, errOut io.Writer, st catalog.ListState) error {
	return state.Match(st,
		func() error {
			fmt.Fprintln(out, "No products loaded.")
			return nil
		},
		func() error {
			fmt.Fprintln(out, "Still loading products...")
			return nil
		},
		func(items []*catalog.Product) error {
			if len(items) == 0 {
				fmt.Fprintln(out, "No products found.")
				return nil
			}
			renderTable(out, items)
			return nil
		},
		func(message string) error {
			errorColor.Fprintln(errOut, "Failed to load products:", message)
			return clierr.New(clierr.Gateway, "failed to load products: "+message, nil)
		},
	)
}

func renderTable(out io.Writer, items []*catalog.Product) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"ID", "Name", "Price", "Quantity", "Available", "Selected"})
	table.SetColMinWidth(1, 30)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetRowLine(false)

	for _, p := range items {
		table.Append([]string{
			strconv.Itoa(p.ID),
			strings.ReplaceAll(p.Name, "\n", " "),
			formatPrice(p),
			strconv.Itoa(p.Quantity),
			yesNo(p.Available),
			yesNo(p.Selected),
		})
	}
	table.Render()
}

func formatPrice(p *catalog.Product) string {
	return p.Price.StringFixed(2)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// spinner animates an indeterminate progress bar until stopped. Start and Stop may be
// called any number of times.
type spinner struct {
	w           io.Writer
	description string

	mu   sync.Mutex
	bar  *progressbar.ProgressBar
	stop chan struct{}
	done chan struct{}
}

func newSpinner(w io.Writer, description string) *spinner {
	return &spinner{w: w, description: description}
}

func (s *spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bar != nil {
		return
	}
	s.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(s.w),
		progressbar.OptionSetDescription(s.description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go func(bar *progressbar.ProgressBar, stop, done chan struct{}) {
		defer close(done)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}(s.bar, s.stop, s.done)
}

func (s *spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bar == nil {
		return
	}
	close(s.stop)
	<-s.done
	_ = s.bar.Finish()
	s.bar = nil
}
