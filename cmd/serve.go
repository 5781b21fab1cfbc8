package cmd

import (
	"context"

	"github.com/habedi/prodcat/config"
	"github.com/habedi/prodcat/db"
	"github.com/habedi/prodcat/pkg/clierr"
	"github.com/habedi/prodcat/server"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// serveCmd runs the catalog service on top of the local SQLite database.
func serveCmd() *cobra.Command {
	var addr, dbPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the product catalog over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.ListenAddr
			}
			if err := configureDBPath(dbPath, cfg); err != nil {
				return clierr.New(clierr.Internal, "failed to locate the database", err)
			}

			if err := db.InitDB(); err != nil {
				return clierr.New(clierr.Internal, "failed to open the database", err)
			}
			defer db.Shutdown()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			srv := server.New(db.NewProductRepository(db.GetDB()))
			cmd.Printf("Serving products from %s on %s\n", db.Path, addr)
			if err := srv.Run(ctx, addr); err != nil {
				return clierr.New(clierr.Internal, "server stopped: "+err.Error(), err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Address to listen on (default from config, :3000)")
	cmd.Flags().StringVar(&dbPath, "db", "", "Path to the SQLite database file")
	return cmd
}

// configureDBPath sets db.Path from the environment, then the config file, then the --db flag.
func configureDBPath(flag string, cfg config.Config) error {
	if err := db.ConfigurePath(); err != nil {
		return err
	}
	switch {
	case flag != "":
		db.Path = flag
	case cfg.DBPath != "":
		db.Path = cfg.DBPath
	}
	log.Debug().Str("path", db.Path).Msg("Resolved database path")
	return nil
}
