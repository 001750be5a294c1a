package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/browser"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	recordshandlers "github.com/premiummedi/labreport/pkg/handlers/records"
	reportshandlers "github.com/premiummedi/labreport/pkg/handlers/reports"
	"github.com/premiummedi/labreport/pkg/server"
	"github.com/premiummedi/labreport/pkg/services/catalog"
	"github.com/premiummedi/labreport/pkg/services/config"
	"github.com/premiummedi/labreport/pkg/services/report"
	"github.com/premiummedi/labreport/pkg/store/patientdb"
	"github.com/premiummedi/labreport/pkg/web"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the lab report web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the labreport.yaml config file (default is ./labreport.yaml when present)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cat, err := catalog.NewCatalog()
	if err != nil {
		return fmt.Errorf("failed to load reference templates: %w", err)
	}

	store, err := patientdb.NewStore(patientdb.Settings{
		DBPath:  cfg.DBPath(),
		DocsDir: cfg.DocsDir(),
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create patient store: %w", err)
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		return fmt.Errorf("failed to create page renderer: %w", err)
	}

	clinic := cfg.DomainClinic()
	service := report.NewService(report.Dependencies{
		Catalog:     cat,
		Store:       store,
		Clinic:      clinic,
		PDFFontPath: cfg.PDFFontPath,
	})

	api := server.NewWebAPI(logger, server.Config{
		Addr: cfg.Addr,
		Dependencies: server.Dependencies{
			Reports: reportshandlers.NewHandler(service, renderer, clinic),
			Records: recordshandlers.NewHandler(store, cat, renderer, clinic),
		},
	})

	if cfg.OpenBrowser {
		go func() {
			time.Sleep(1500 * time.Millisecond)
			if err := browser.OpenURL("http://" + cfg.Addr); err != nil {
				logger.Warn().Err(err).Msg("failed to open browser")
			}
		}()
	}

	return api.Start()
}
