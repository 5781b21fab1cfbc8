package cmd

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/habedi/prodcat/catalog"
	"github.com/habedi/prodcat/pkg/clierr"
	"github.com/habedi/prodcat/pkg/hasher"
	"github.com/habedi/prodcat/pkg/pool"
	"github.com/habedi/prodcat/pkg/state"
	"github.com/habedi/prodcat/pkg/validation"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// importCmd creates every product of a JSON file in the catalog.
func importCmd() *cobra.Command {
	var numThreads int
	cmd := &cobra.Command{
		Use:   "import [file.json]",
		Short: "Add the products listed in a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.ValidateThreadCount(numThreads); err != nil {
				return clierr.New(clierr.Validation, err.Error(), err)
			}
			drafts, err := readDrafts(args[0])
			if err != nil {
				return err
			}
			if len(drafts) == 0 {
				cmd.Println("No products found in the file.")
				return nil
			}

			s, err := openSession(cmd, catalog.NeverConfirm)
			if err != nil {
				return err
			}
			defer s.Close()

			bar := progressbar.NewOptions(len(drafts),
				progressbar.OptionSetWriter(s.errOut),
				progressbar.OptionSetDescription("Importing products..."),
				progressbar.OptionSetWidth(20),
				progressbar.OptionShowCount(),
				progressbar.OptionShowIts(),
				progressbar.OptionClearOnFinish(),
			)
			errs := pool.Run(s.ctx, drafts, numThreads, func(ctx context.Context, d catalog.Draft) error {
				_, err := s.gw.Save(ctx, d)
				return err
			}, pool.WithProgress(func(int) { _ = bar.Add(1) }))
			_ = bar.Finish()

			for _, err := range errs {
				log.Error().Err(err).Msg("Failed to import product")
				errorColor.Fprintln(s.errOut, "Failed:", err)
			}
			cmd.Printf("Imported %d of %d products.\n", len(drafts)-len(errs), len(drafts))
			if len(errs) > 0 {
				return clierr.New(clierr.Gateway, fmt.Sprintf("%d products could not be imported", len(errs)), errors.Join(errs...))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&numThreads, "threads", "t", 5, "Number of worker threads to use for importing [1-20]")
	return cmd
}

// readDrafts parses a JSON array of products and validates each one.
func readDrafts(path string) ([]catalog.Draft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, clierr.New(clierr.Validation, fmt.Sprintf("cannot read %s", path), err)
	}
	var drafts []catalog.Draft
	if err := json.Unmarshal(data, &drafts); err != nil {
		return nil, clierr.New(clierr.Validation, fmt.Sprintf("%s is not a JSON array of products", path), err)
	}
	for i, d := range drafts {
		if err := d.Validate(); err != nil {
			return nil, clierr.New(clierr.Validation, fmt.Sprintf("product %d in %s: %v", i+1, path, err), err)
		}
	}
	return drafts, nil
}

// exportCmd writes the catalog to a file in JSON or CSV format.
func exportCmd() *cobra.Command {
	exportDir := ""
	exportFormat := ""
	checksum := ""

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the products to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if exportDir == "" {
				return clierr.New(clierr.Validation, "export directory is required", nil)
			}
			if err := validation.ValidateExportFormat(exportFormat); err != nil {
				return clierr.New(clierr.Validation, err.Error(), err)
			}
			if checksum != "" && !hasher.IsValid(checksum) {
				return clierr.New(clierr.Validation, fmt.Sprintf("unsupported checksum algorithm %q, use one of %v", checksum, hasher.Algorithms), nil)
			}

			s, err := openSession(cmd, catalog.NeverConfirm)
			if err != nil {
				return err
			}
			defer s.Close()

			s.publishAndWait(catalog.GetAllEvent())
			items, ok := state.Items(s.ctrl.State())
			if !ok {
				return s.renderList()
			}

			path, err := exportProducts(exportDir, exportFormat, items, time.Now())
			if err != nil {
				log.Error().Err(err).Msg("Failed to export the products.")
				return clierr.New(clierr.Internal, "failed to export the products", err)
			}
			cmd.Printf("Exported %d products to %s\n", len(items), path)

			if checksum != "" {
				sumPath, err := hasher.WriteSidecar(path, checksum)
				if err != nil {
					log.Error().Err(err).Str("path", path).Msg("Failed to write the checksum file.")
					return clierr.New(clierr.Internal, "failed to write the checksum file", err)
				}
				cmd.Printf("Checksum written to %s\n", sumPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&exportDir, "dir", "d", "", "Directory to export the file (required)")
	cmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Export format: json or csv")
	cmd.Flags().StringVarP(&checksum, "checksum", "c", "", "Also write a checksum file: md5, sha1, sha256 or sha512")

	return cmd
}

// exportProducts writes items to a timestamped file in dir and returns its path.
func exportProducts(dir, format string, items []*catalog.Product, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("prodcat_products_%s.%s", now.Format("20060102_150405"), format))

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	switch format {
	case "json":
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		err = enc.Encode(items)
	case "csv":
		err = writeCSV(f, items)
	}
	if err != nil {
		return "", err
	}
	return path, f.Close()
}

func writeCSV(f *os.File, items []*catalog.Product) error {
	w := csv.NewWriter(f)
	if err := w.Write([]string{"id", "name", "price", "quantity", "available", "selected"}); err != nil {
		return err
	}
	for _, p := range items {
		if err := w.Write([]string{
			strconv.Itoa(p.ID),
			p.Name,
			p.Price.String(),
			strconv.Itoa(p.Quantity),
			strconv.FormatBool(p.Available),
			strconv.FormatBool(p.Selected),
		}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
