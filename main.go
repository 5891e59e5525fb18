package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"boxoffice-tracker/config"
	"boxoffice-tracker/models"
	"boxoffice-tracker/render"
	"boxoffice-tracker/services"
	"boxoffice-tracker/storage"
	"boxoffice-tracker/utils"
)

const reportTitle = "Movie Revenue Tracker - Regional Analysis"

func main() {
	logger := utils.NewLogger()
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Invalid configuration: %v", err)
		os.Exit(1)
	}
	logger.SetLevel(utils.ParseLevel(cfg.LogLevel))

	// The only positional argument is the input path.
	if len(os.Args) > 1 {
		cfg.DataPath = os.Args[1]
	}

	ctx := context.Background()

	logger.Info("=== Movie Revenue Tracker starting ===")
	logger.Info("Config: source: %s | top-n: %d by %s | region: %s",
		cfg.Source, cfg.TopN, cfg.Metric(), cfg.Region)

	loader := services.NewLoader(logger, storage.NewCSVReader(), map[string]services.TableReader{
		".csv":  storage.NewCSVReader(),
		".tsv":  storage.NewTSVReader(),
		".xlsx": storage.NewXLSXReader(),
	})

	ds, err := loadDataset(ctx, cfg, loader, logger)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrFileNotFound):
			logger.Error("Dataset file '%s' not found!", cfg.DataPath)
		case errors.Is(err, models.ErrEmptyDataset):
			logger.Error("Dataset is empty!")
		default:
			logger.Error("Error loading data: %v", err)
		}
		os.Exit(1)
	}
	logger.Info("Loaded dataset: %d movies", ds.Len())

	opts := services.Options(ds)
	logger.Debug("Filter options: %d genres, %d languages, years %d-%d",
		len(opts.Genres), len(opts.Languages), opts.YearMin, opts.YearMax)

	filtered, err := services.Filter(ds, cfg.Criteria())
	if err != nil {
		logger.Error("Filter failed: %v", err)
		os.Exit(1)
	}
	logger.Info("Filtered dataset: %d of %d movies", filtered.Len(), ds.Len())

	insightSvc := services.NewInsightService(logger)
	report, err := insightSvc.Generate(filtered, cfg.TopN, cfg.Metric())
	if err != nil && !services.IsNoMatch(err) {
		logger.Error("Aggregation failed: %v", err)
		os.Exit(1)
	}
	insightSvc.Print(os.Stdout, report)

	if err := services.RequireMatches(filtered); err != nil {
		logger.Warn("%v; nothing to export", err)
		return
	}

	export(ctx, cfg, filtered, report, logger)
	fmt.Printf("  Done. %d movies analysed from %s\n\n", filtered.Len(), ds.Source)
}

func loadDataset(ctx context.Context, cfg *config.Config, loader *services.Loader, logger *utils.Logger) (*models.Dataset, error) {
	if cfg.Source == "postgres" {
		src, err := storage.NewPostgresSource(ctx, cfg.DSN(), cfg.PostgresTable, &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		})
		if err != nil {
			return nil, &models.LoadError{Path: "postgres:" + cfg.PostgresTable, Err: err}
		}
		defer src.Close()

		table, err := src.Fetch(ctx)
		if err != nil {
			if errors.Is(err, models.ErrEmptyDataset) {
				return nil, err
			}
			return nil, &models.LoadError{Path: "postgres:" + cfg.PostgresTable, Err: err}
		}
		return loader.FromTable(table)
	}

	cache := services.NewDatasetCache(loader, logger)
	return cache.Get(cfg.DataPath)
}

func export(ctx context.Context, cfg *config.Config, ds *models.Dataset, report *models.InsightReport, logger *utils.Logger) {
	writers := []struct {
		path string
		w    storage.DatasetWriter
	}{
		{cfg.CSVOutputPath, storage.NewCSVWriter()},
		{cfg.XLSXOutputPath, storage.NewXLSXWriter()},
	}
	for _, out := range writers {
		if out.path == "" {
			continue
		}
		if err := out.w.WriteDataset(out.path, ds); err != nil {
			logger.Error("[export] %v", err)
			continue
		}
		logger.Info("[export] %d movies saved to %s", ds.Len(), out.path)
	}

	if cfg.HTMLOutputPath == "" && cfg.PDFOutputPath == "" {
		return
	}

	html, err := render.HTML(reportTitle, ds, report)
	if err != nil {
		logger.Error("[export] %v", err)
		return
	}
	if cfg.HTMLOutputPath != "" {
		if err := writeFile(cfg.HTMLOutputPath, html); err != nil {
			logger.Error("[export] write html: %v", err)
		} else {
			logger.Info("[export] HTML report saved to %s", cfg.HTMLOutputPath)
		}
	}
	if cfg.PDFOutputPath != "" {
		pdf := render.NewPDFRenderer(cfg.ChromeBin, logger)
		if err := pdf.Render(ctx, html, cfg.PDFOutputPath); err != nil {
			logger.Error("[export] %v", err)
		}
	}
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
