//go:build headless

package cmd

import (
	"github.com/spf13/cobra"
)

func guiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gui",
		Short: "Start the Prodcat GUI (not available in headless build)",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("Error: GUI is not available in this build.")
			cmd.Println("This is a headless (CLI-only) version of Prodcat.")
			cmd.Println("Build from source without the 'headless' tag to use the GUI.")
		},
	}
	return cmd
}
