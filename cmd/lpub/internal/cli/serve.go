package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"lpubmeta/internal/logger"
	"lpubmeta/internal/server"
)

func (app *App) addServeCommand(rootCmd *cobra.Command) {
	serveCmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve the interpreter and model registry over HTTP",
		Long: `Start an HTTP server with the endpoints
  GET  /api/health
  POST /api/parse
  POST /api/load
  GET  /api/models
  GET  /api/models/:name
  POST /api/count
  GET  /api/snapshot
An optional file is loaded as the served document.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := app.newRegistry()
			if len(args) == 1 {
				loaded, err := app.loadDocument(args[0])
				if err != nil {
					return err
				}
				reg = loaded
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			addr := app.Config.ServeAddr
			logger.Info("Serving", "addr", addr, "models", len(reg.SubFileOrder()))
			return server.Serve(ctx, server.New(server.NewHandler(reg)), addr)
		},
	}
	serveCmd.Flags().String("addr", "", "Listen address [default: 127.0.0.1:8088]")
	rootCmd.AddCommand(serveCmd)
}

