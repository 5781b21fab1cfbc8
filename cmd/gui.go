//go:build !headless

package cmd

import (
	"github.com/habedi/prodcat/gui"
	"github.com/spf13/cobra"
)

func guiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gui",
		Short: "Start the Prodcat GUI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			gui.Run(version, cfg.BaseURL, newGateway(cfg))
			return nil
		},
	}
	return cmd
}
