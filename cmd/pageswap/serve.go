package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jackielii/pageswap"
	"github.com/jackielii/pageswap/server"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the shell and its fragments",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("host") {
			cfg.Server.Host = serveHost
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		srv := server.New(pageswap.DefaultRoutes(),
			server.WithLogger(logger),
			server.WithTitleFormat(pageswap.SiteTitle(cfg.Site.Name)),
		)
		return srv.ListenAndServe(ctx, cfg.Server.Addr())
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "interface to bind (overrides server.host)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (overrides server.port)")
}
