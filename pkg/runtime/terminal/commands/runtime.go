package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/de-tools/fg-sync/pkg/models/domain"
	"github.com/de-tools/fg-sync/pkg/runtime/terminal/export"
	"github.com/de-tools/fg-sync/pkg/services/config"
	"github.com/de-tools/fg-sync/pkg/services/pipeline"
	"github.com/de-tools/fg-sync/pkg/services/publish"
	"github.com/de-tools/fg-sync/pkg/store/xlsx"
)

const exportTimeLayout = "20060102_150405"

type Connector func(cfg domain.SourceConfig) (pipeline.Source, error)

type SheetsConnector func(cfg domain.SheetsConfig) publish.Opener

// Runtime holds the root flags and the connectors shared by every pipeline
// command.
type Runtime struct {
	ConfigFile   string
	EnvFiles     []string
	ProfilesFile string
	Profile      string
	ExportDir    string
	DryRun       bool

	Registry pipeline.Registry
	Reporter *export.Reporter
	Connect  Connector
	Sheets   SheetsConnector
	Now      func() time.Time
}

// RunPipelines loads the configuration once and runs the named pipelines in
// order. A fatal error in one pipeline does not stop the others; all fatal
// errors are returned joined.
func (rt *Runtime) RunPipelines(ctx context.Context, names []string) error {
	logger := zerolog.Ctx(ctx)

	cfg, err := config.Load(ctx, config.Options{
		ConfigFile:   rt.ConfigFile,
		EnvFiles:     rt.EnvFiles,
		ProfilesFile: rt.ProfilesFile,
		Profile:      rt.Profile,
		ExportDir:    rt.ExportDir,
		DryRun:       rt.DryRun,
	})
	if err != nil {
		return err
	}

	src, err := rt.Connect(cfg.Source)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", cfg.Source.URL, err)
	}
	if closer, ok := src.(io.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				logger.Warn().Err(err).Msg("failed to close source connection")
			}
		}()
	}

	deps := pipeline.Dependencies{
		Config: *cfg,
		Source: src,
		Now:    rt.Now,
	}
	if !cfg.Export.DryRun {
		deps.Publisher = publish.NewPublisher(rt.Sheets(cfg.Sheets))
	}
	if cfg.Export.Dir != "" {
		deps.Exporter = xlsxExporter(cfg.Export.Dir)
	}

	logger.Info().
		Str("source", cfg.Source.String()).
		Strs("pipelines", names).
		Bool("dry_run", cfg.Export.DryRun).
		Msg("starting sync")

	var errs []error
	for _, name := range names {
		p, err := rt.Registry.Create(name, deps)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		report, err := p.Run(ctx)
		if err != nil {
			logger.Error().Err(err).Str("pipeline", name).Msg("pipeline failed")
			errs = append(errs, err)
			continue
		}
		if err := rt.Reporter.Handle(report); err != nil {
			errs = append(errs, fmt.Errorf("failed to print %s report: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

func xlsxExporter(dir string) pipeline.ExporterFactory {
	return func(name string, at time.Time) pipeline.Exporter {
		file := fmt.Sprintf("%s_%s.xlsx", name, at.Format(exportTimeLayout))
		return xlsx.NewWriter(filepath.Join(dir, file))
	}
}
