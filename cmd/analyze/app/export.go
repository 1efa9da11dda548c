package app

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/airborne-labs/aerocoef/internal/aero"
)

// csvHeader is the stable export schema consumed by downstream tooling.
var csvHeader = []string{"Time(s)", "CL", "CD", "Velocity(m/s)", "DynamicPressure(Pa)"}

func export(config *Config, series aero.Series) error {
	switch config.Format {
	case FormatCSV:
		if err := exportCSV(config.OutputFile, series); err != nil {
			return fmt.Errorf("writing csv: %w", err)
		}
	case FormatParquet:
		if err := exportParquet(config.OutputFile, series); err != nil {
			return fmt.Errorf("writing parquet: %w", err)
		}
	}
	return nil
}

func exportCSV(path string, series aero.Series) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer closeWithError(out, &err)

	w := csv.NewWriter(out)
	if err = w.Write(csvHeader); err != nil {
		return err
	}

	record := make([]string, len(csvHeader))
	for _, c := range series {
		record[0] = strconv.FormatFloat(c.Timestamp, 'f', 3, 64)
		record[1] = strconv.FormatFloat(c.CL, 'f', 4, 64)
		record[2] = strconv.FormatFloat(c.CD, 'f', 4, 64)
		record[3] = strconv.FormatFloat(c.Velocity, 'f', 3, 64)
		record[4] = strconv.FormatFloat(c.DynamicPressure, 'f', 2, 64)
		if err = w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

type coefficientParquetRow struct {
	TimeS           float64 `parquet:"name=time_s, type=DOUBLE"`
	CL              float64 `parquet:"name=cl, type=DOUBLE"`
	CD              float64 `parquet:"name=cd, type=DOUBLE"`
	VelocityMPS     float64 `parquet:"name=velocity_mps, type=DOUBLE"`
	DynamicPressure float64 `parquet:"name=dynamic_pressure_pa, type=DOUBLE"`
}

func exportParquet(path string, series aero.Series) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}

	pw, err := writer.NewParquetWriter(fw, new(coefficientParquetRow), 4)
	if err != nil {
		_ = fw.Close()
		return err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, c := range series {
		row := coefficientParquetRow{
			TimeS:           c.Timestamp,
			CL:              c.CL,
			CD:              c.CD,
			VelocityMPS:     c.Velocity,
			DynamicPressure: c.DynamicPressure,
		}
		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()
			_ = fw.Close()
			return err
		}
	}

	if err := pw.WriteStop(); err != nil {
		_ = fw.Close()
		return err
	}
	return fw.Close()
}

func closeWithError(cl interface{ Close() error }, err *error) {
	if cErr := cl.Close(); cErr != nil && *err == nil {
		*err = cErr
	}
}
