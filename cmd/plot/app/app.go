package app

import (
	"context"
	"fmt"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/airborne-labs/aerocoef/internal/aero"
	"github.com/airborne-labs/aerocoef/internal/storage"
)

func Run(ctx context.Context, config *Config, logger *slog.Logger) error {
	if _, err := os.Stat(config.DBPath); err != nil && os.IsNotExist(err) {
		return fmt.Errorf("database file '%s' does not exist: %w", config.DBPath, err)
	}

	store := storage.New(config.DBPath)
	defer store.Close()

	series, err := store.LoadSeries(ctx, config.RunID)
	if err != nil {
		return err
	}
	if len(series) == 0 {
		return fmt.Errorf("run %d has no coefficient records", config.RunID)
	}

	logger.Info("coefficient series loaded",
		slog.Int64("run", config.RunID),
		slog.String("samples", humanize.Comma(int64(len(series)))))

	renderer, err := NewChartRenderer(RenderConfig{
		Width:       config.Width,
		Height:      config.Height,
		FontFile:    config.FontFile,
		Annotations: !config.NoAnnotations,
	})
	if err != nil {
		return fmt.Errorf("creating chart renderer: %w", err)
	}

	logger.Info("rendering chart",
		slog.Group("image",
			slog.String("destination", config.OutputFile),
			slog.String("format", string(config.Format)),
			slog.Int("width", config.Width),
			slog.Int("height", config.Height),
		))

	img, err := renderer.Render(series, aero.Summarize(series))
	if err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}

	out, err := os.Create(config.OutputFile)
	if err != nil {
		return err
	}
	defer out.Close()

	switch config.Format {
	case ImagePNG:
		err = png.Encode(out, img)

	case ImageJPEG:
		err = jpeg.Encode(out, img, &jpeg.Options{
			Quality: 98,
		})
	}
	return err
}
