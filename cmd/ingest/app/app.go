package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/airborne-labs/aerocoef/internal/channels"
	"github.com/airborne-labs/aerocoef/internal/flightdata"
	"github.com/airborne-labs/aerocoef/internal/storage"
)

func Run(ctx context.Context, config *Config, logger *slog.Logger) error {
	in, err := os.Open(config.InputFile)
	if err != nil {
		return fmt.Errorf("opening recording: %w", err)
	}
	defer in.Close()

	header, rows, err := flightdata.ReadCSV(in)
	if err != nil {
		return fmt.Errorf("parsing recording: %w", err)
	}

	binding := channels.Resolve(header)
	timeKey := config.TimeColumn
	if timeKey == "" {
		key, ok := binding.Key(channels.Time)
		if !ok {
			return fmt.Errorf("no timestamp column found in %v; use -time-column", header)
		}
		timeKey = key
	}

	unit := flightdata.TimeUnit(config.TimeUnit)
	if config.TimeUnit == TimeUnitAuto {
		unit = flightdata.GuessTimeUnit(rows[0][timeKey])
		logger.Warn("guessed timestamp unit from magnitude, pass -time-unit to be explicit",
			slog.String("unit", string(unit)))
	}

	dataset := flightdata.NewDataset(rows, timeKey, unit)
	if dataset.Len() == 0 {
		return fmt.Errorf("recording has no rows with a %q value", timeKey)
	}

	if config.Verbose {
		for _, role := range binding.Unresolved() {
			logger.Info("channel not present in recording", slog.String("role", string(role)))
		}
	}

	params, err := loadAircraft(config.Aircraft)
	if err != nil {
		return err
	}

	store := storage.New(config.DBPath)
	defer store.Close()

	sessionID, err := store.CreateSession(ctx, config.Name, config.InputFile, params)
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}
	if err = store.StoreSamples(ctx, sessionID, dataset.Samples); err != nil {
		return fmt.Errorf("storing samples: %w", err)
	}

	rate, rateSuffix := humanize.ComputeSI(dataset.SampleRate())
	logger.Info("recording ingested",
		slog.Int64("session", sessionID),
		slog.Group("recording",
			slog.String("rows", humanize.Comma(int64(dataset.Len()))),
			slog.String("duration", fmt.Sprintf("%0.1fs", dataset.Duration())),
			slog.String("sampleRate", fmt.Sprintf("%0.1f %sHz", rate, rateSuffix)),
		))
	return nil
}

// loadAircraft reads optional aircraft parameters to attach to the session.
// Returns nil when no file is given.
func loadAircraft(path string) (*flightdata.AircraftParameters, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading aircraft parameters: %w", err)
	}

	var params flightdata.AircraftParameters
	if err := yaml.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("parsing aircraft parameters: %w", err)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &params, nil
}
