package cmd

import (
	"context"
	"errors"

	"github.com/habedi/prodcat/pkg/clierr"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Execute runs the root command with ctx and returns the process exit code.
func Execute(ctx context.Context) int {
	rootCmd := createRootCmd()
	rootCmd.PersistentFlags().BoolP("help", "h", false, "Show help for a command")

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return reportError(rootCmd, err)
	}
	return 0
}

// reportError prints err for the user and returns the process exit code.
func reportError(cmd *cobra.Command, err error) int {
	var ce *clierr.Error
	if errors.As(err, &ce) {
		if ce.Type == clierr.Declined {
			cmd.PrintErrln(ce.Message)
			return ce.ExitCode()
		}
		log.Error().Err(err).Str("type", string(ce.Type)).Msg("Command execution failed.")
		cmd.PrintErrln("Error:", ce.Message)
		return ce.ExitCode()
	}
	log.Error().Err(err).Msg("Command execution failed.")
	cmd.PrintErrln("Error:", err)
	return 1
}

func createRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "prodcat",
		Short:         "Browse and manage a product catalog",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (default $HOME/.prodcat/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&baseURLFlag, "url", "u", "", "Base URL of the catalog service")

	rootCmd.AddCommand(
		productsCmd(),
		serveCmd(),
		versionCmd(),
		guiCmd(),
	)

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	rootCmd.SetHelpCommand(&cobra.Command{
		Use:    "no-help",
		Hidden: true,
	})

	return rootCmd
}
