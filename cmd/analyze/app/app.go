package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/airborne-labs/aerocoef/internal/aero"
	"github.com/airborne-labs/aerocoef/internal/channels"
	"github.com/airborne-labs/aerocoef/internal/flightdata"
	"github.com/airborne-labs/aerocoef/internal/pipeline"
	"github.com/airborne-labs/aerocoef/internal/storage"
)

func Run(ctx context.Context, config *Config, logger *slog.Logger) error {
	var store *storage.Store
	if config.DBPath != "" {
		if _, err := os.Stat(config.DBPath); err != nil && os.IsNotExist(err) {
			return fmt.Errorf("database file '%s' does not exist: %w", config.DBPath, err)
		}
		store = storage.New(config.DBPath)
		defer store.Close()
	}

	dataset, err := loadDataset(ctx, config, store)
	if err != nil {
		return err
	}

	params := config.Analysis.Aircraft
	opts := pipeline.Options{
		Mode:              pipeline.VelocityMode(config.Analysis.Mode),
		Flight:            config.Analysis.Flight,
		Stationary:        config.Analysis.Stationary,
		DriftSuppression:  config.Analysis.Drift.Enabled,
		DriftThreshold:    config.Analysis.Drift.Threshold,
		DriftTimeConstant: config.Analysis.Drift.TimeConstant,
		MinSpeed:          config.Analysis.MinSpeed,
		CutoffHz:          config.Analysis.SmoothingCutoffHz,
		SampleRateHz:      config.Analysis.SampleRate,
	}
	if config.Verbose {
		opts.Observer = func(stage string) {
			logger.Info("pipeline stage", slog.String("stage", stage))
		}
	}

	result, err := pipeline.Run(dataset, params, opts)
	if err != nil {
		return err
	}

	for _, role := range result.Unresolved {
		logger.Warn("channel unresolved, values degraded to zero", slog.String("role", string(role)))
	}

	logSummary(logger, config, result)

	if config.OutputFile != "" {
		if err := export(config, result.Series); err != nil {
			return err
		}
		logger.Info("series exported",
			slog.String("destination", config.OutputFile),
			slog.String("format", config.Format))
	}

	if config.Save {
		optionsJSON, err := json.Marshal(config.Analysis)
		if err != nil {
			return fmt.Errorf("marshaling run options: %w", err)
		}
		runID, err := store.CreateRun(ctx, config.SessionID, config.Analysis.Mode, json.RawMessage(optionsJSON), result.SampleRateHz)
		if err != nil {
			return fmt.Errorf("creating run: %w", err)
		}
		if err = store.StoreCoefficients(ctx, runID, result.Series); err != nil {
			return fmt.Errorf("storing coefficients: %w", err)
		}
		logger.Info("run stored", slog.Int64("run", runID), slog.Int64("session", config.SessionID))
	}

	return nil
}

// loadDataset reads samples either from a recording CSV or from a stored
// session.
func loadDataset(ctx context.Context, config *Config, store *storage.Store) (*flightdata.Dataset, error) {
	if config.InputFile != "" {
		in, err := os.Open(config.InputFile)
		if err != nil {
			return nil, fmt.Errorf("opening recording: %w", err)
		}
		defer in.Close()

		header, rows, err := flightdata.ReadCSV(in)
		if err != nil {
			return nil, fmt.Errorf("parsing recording: %w", err)
		}

		timeKey := config.TimeColumn
		if timeKey == "" {
			key, ok := channels.Resolve(header).Key(channels.Time)
			if !ok {
				return nil, fmt.Errorf("no timestamp column found in %v; use -time-column", header)
			}
			timeKey = key
		}

		unit := flightdata.TimeUnit(config.TimeUnit)
		if config.TimeUnit == TimeUnitAuto {
			unit = flightdata.GuessTimeUnit(rows[0][timeKey])
		}
		return flightdata.NewDataset(rows, timeKey, unit), nil
	}

	dataset, err := store.LoadDataset(ctx, config.SessionID)
	if err != nil {
		return nil, fmt.Errorf("loading session %d: %w", config.SessionID, err)
	}
	return dataset, nil
}

func logSummary(logger *slog.Logger, config *Config, result *pipeline.Result) {
	rate, rateSuffix := humanize.ComputeSI(result.SampleRateHz)

	logger.Info("analysis finished",
		slog.String("mode", config.Analysis.Mode),
		slog.Group("window",
			slog.Int("start", result.Flight.Start),
			slog.Int("end", result.Flight.End),
			slog.String("samples", humanize.Comma(int64(len(result.Series)))),
			slog.String("sampleRate", fmt.Sprintf("%0.1f %sHz", rate, rateSuffix)),
		),
		slog.Group("cl", statAttrs(result.Summary.CL)...),
		slog.Group("cd", statAttrs(result.Summary.CD)...),
		slog.Group("velocity", statAttrs(result.Summary.Velocity)...),
	)
}

func statAttrs(s aero.ColumnStats) []any {
	return []any{
		slog.String("mean", fmt.Sprintf("%0.4f", s.Mean)),
		slog.String("stdDev", fmt.Sprintf("%0.4f", s.StdDev)),
		slog.String("min", fmt.Sprintf("%0.4f", s.Min)),
		slog.String("max", fmt.Sprintf("%0.4f", s.Max)),
	}
}
