package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/Zachkp/folio/internal/mail"
	"github.com/Zachkp/folio/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve portfolio pages over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer func() { _ = a.logger.Sync() }()

		sender, err := mail.New(a.cfg.Mail, a.logger)
		if err != nil {
			return err
		}

		srv, err := server.New(a.cfg, a.site, sender, a.logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a.logger.Info("starting folio",
			zap.String("api_base_url", a.cfg.APIBaseURL),
			zap.String("default_username", a.cfg.DefaultUsername),
		)
		return srv.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
