package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/airborne-labs/aerocoef/internal/flightdata"
	"github.com/airborne-labs/aerocoef/internal/window"
)

const (
	FormatCSV     = "csv"
	FormatParquet = "parquet"

	TimeUnitSeconds      = "s"
	TimeUnitMilliseconds = "ms"
	TimeUnitAuto         = "auto"
)

// AnalysisConfig is the YAML analysis configuration: aircraft parameters,
// segment bounds and pipeline options.
type AnalysisConfig struct {
	Aircraft flightdata.AircraftParameters `yaml:"aircraft"`

	// Mode is the velocity estimation strategy: raw, orientation or pressure.
	Mode string `yaml:"mode"`

	Flight     window.Spec  `yaml:"flight"`
	Stationary *window.Spec `yaml:"stationary"`

	Drift struct {
		Enabled      bool    `yaml:"enabled"`
		Threshold    float64 `yaml:"threshold"`
		TimeConstant float64 `yaml:"timeConstant"`
	} `yaml:"drift"`

	// MinSpeed gates force decomposition, m/s.
	MinSpeed float64 `yaml:"minSpeed"`

	// SmoothingCutoffHz enables CL/CD low-pass smoothing when positive.
	SmoothingCutoffHz float64 `yaml:"smoothingCutoffHz"`
	// SampleRate overrides the estimated recording rate, Hz.
	SampleRate float64 `yaml:"sampleRate"`
}

type Config struct {
	ConfigFile string
	InputFile  string
	DBPath     string
	SessionID  int64
	OutputFile string
	Format     string
	Save       bool
	TimeUnit   string
	TimeColumn string
	Verbose    bool

	Analysis AnalysisConfig
}

var validFormats = map[string]struct{}{
	FormatCSV:     {},
	FormatParquet: {},
}

var validTimeUnits = map[string]struct{}{
	TimeUnitSeconds:      {},
	TimeUnitMilliseconds: {},
	TimeUnitAuto:         {},
}

func NewConfig() *Config {
	return &Config{
		Format:   FormatCSV,
		TimeUnit: TimeUnitSeconds,
	}
}

func NewConfigFromCLI() (*Config, error) {
	c := NewConfig()

	var format, timeUnit string
	flag.StringVar(&c.ConfigFile, "c", "", "Path to the analysis configuration file")
	flag.StringVar(&c.InputFile, "i", "", "Path to a recording CSV file")
	flag.StringVar(&c.DBPath, "db", "", "Path to an existing session database file")
	flag.Int64Var(&c.SessionID, "s", 0, "Session ID to analyze (with -db)")
	flag.StringVar(&c.OutputFile, "o", "", "Path to the output file (extension added per format)")
	flag.StringVar(&format, "format", FormatCSV, "Output format. [csv, parquet]")
	flag.BoolVar(&c.Save, "save", false, "Store the run and its coefficients in the session database")
	flag.StringVar(&timeUnit, "time-unit", TimeUnitSeconds, "Unit of the CSV timestamp column. [s, ms, auto]")
	flag.StringVar(&c.TimeColumn, "time-column", "", "Override the auto-resolved timestamp column name")
	flag.BoolVar(&c.Verbose, "verbose", false, "Enable more verbose output")
	flag.Parse()

	format = strings.ToLower(format)
	timeUnit = strings.ToLower(timeUnit)

	var err error
	switch {
	case c.ConfigFile == "":
		err = errors.New("analysis configuration file is required")
	case c.InputFile == "" && (c.DBPath == "" || c.SessionID <= 0):
		err = errors.New("either -i or both -db and -s are required")
	case c.InputFile != "" && c.DBPath != "":
		err = errors.New("-i and -db are mutually exclusive")
	case c.Save && c.DBPath == "":
		err = errors.New("-save requires -db")
	default:
		if _, ok := validFormats[format]; !ok {
			err = fmt.Errorf("invalid output format: %s", format)
		} else if _, ok = validTimeUnits[timeUnit]; !ok {
			err = fmt.Errorf("invalid time unit: %s", timeUnit)
		}
	}

	if err != nil {
		flag.Usage()
		return nil, err
	}

	if err = loadAnalysisConfig(c.ConfigFile, &c.Analysis); err != nil {
		return nil, err
	}

	c.Format = format
	c.TimeUnit = timeUnit
	if c.OutputFile != "" && !strings.HasSuffix(c.OutputFile, "."+c.Format) {
		c.OutputFile = fmt.Sprintf("%s.%s", c.OutputFile, c.Format)
	}
	return c, nil
}

func loadAnalysisConfig(path string, into *AnalysisConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading analysis configuration: %w", err)
	}
	if err := yaml.Unmarshal(data, into); err != nil {
		return fmt.Errorf("parsing analysis configuration: %w", err)
	}
	if into.Mode == "" {
		into.Mode = "raw"
	}
	return nil
}
