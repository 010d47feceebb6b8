package cmd

import (
	"fmt"

	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/logging"
	"github.com/Zachkp/folio/internal/page"
	"github.com/Zachkp/folio/internal/section"
	"github.com/Zachkp/folio/internal/site"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string

	// fs backs shell reads and render output; tests swap in a MemMapFs.
	fs afero.Fs = afero.NewOsFs()
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Server-rendered personal portfolio pages",
	Long: `Folio fetches a profile's about, resume, portfolio, blog and contact
sections from the portfolio API and renders them into the page shell,
either live over HTTP or as a one-off static export.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "folio.yml", "config file path")
}

// app bundles what every subcommand builds from the configuration.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	site   *site.Site
}

func loadApp() (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	shell, err := page.ReadShell(fs, cfg.ShellPath)
	if err != nil {
		return nil, err
	}
	// Fail fast on a shell that does not parse.
	if _, err := page.New(shell); err != nil {
		return nil, err
	}

	client := content.NewClient(cfg.APIBaseURL, logger, content.WithSecret(cfg.APISecret))
	loader := section.NewLoader(client, logger, cfg.DefaultUsername, section.Defaults(cfg.PortfolioCategoryID))

	return &app{cfg: cfg, logger: logger, site: site.New(shell, loader)}, nil
}
