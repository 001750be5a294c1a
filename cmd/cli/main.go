package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/premiummedi/labreport/pkg/runtime/terminal"
	"github.com/premiummedi/labreport/pkg/services/catalog"
	"github.com/premiummedi/labreport/pkg/services/config"
	"github.com/premiummedi/labreport/pkg/services/report"
	"github.com/premiummedi/labreport/pkg/store/patientdb"
)

func main() {
	cli, err := newCLI()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newCLI() (*terminal.CLI, error) {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load("")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cat, err := catalog.NewCatalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load reference templates: %w", err)
	}

	store, err := patientdb.NewStore(patientdb.Settings{
		DBPath:  cfg.DBPath(),
		DocsDir: cfg.DocsDir(),
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create patient store: %w", err)
	}

	service := report.NewService(report.Dependencies{
		Catalog:     cat,
		Store:       store,
		Clinic:      cfg.DomainClinic(),
		PDFFontPath: cfg.PDFFontPath,
	})

	return terminal.NewCLI(terminal.Options{
		Service: service,
		Store:   store,
		Output:  os.Stdout,
	}), nil
}
