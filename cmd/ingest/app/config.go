package app

import (
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	TimeUnitSeconds      = "s"
	TimeUnitMilliseconds = "ms"
	TimeUnitAuto         = "auto"
)

type Config struct {
	InputFile  string
	DBPath     string
	Name       string
	TimeUnit   string
	TimeColumn string
	Aircraft   string // Optional aircraft parameters YAML
	Verbose    bool
}

var validTimeUnits = map[string]struct{}{
	TimeUnitSeconds:      {},
	TimeUnitMilliseconds: {},
	TimeUnitAuto:         {},
}

func NewConfig() *Config {
	return &Config{
		TimeUnit: TimeUnitSeconds,
	}
}

func NewConfigFromCLI() (*Config, error) {
	c := NewConfig()

	var timeUnit string
	flag.StringVar(&c.InputFile, "i", "", "Path to the recording CSV file")
	flag.StringVar(&c.DBPath, "db", "", "Path to the session database file")
	flag.StringVar(&c.Name, "name", "", "Session label (defaults to the recording file name)")
	flag.StringVar(&timeUnit, "time-unit", TimeUnitSeconds, "Unit of the timestamp column. [s, ms, auto]")
	flag.StringVar(&c.TimeColumn, "time-column", "", "Override the auto-resolved timestamp column name")
	flag.StringVar(&c.Aircraft, "aircraft", "", "Path to an aircraft parameters YAML file to attach to the session")
	flag.BoolVar(&c.Verbose, "verbose", false, "Enable more verbose output")
	flag.Parse()

	timeUnit = strings.ToLower(timeUnit)

	var err error
	if c.InputFile == "" {
		err = errors.New("input file is required")
	} else if c.DBPath == "" {
		err = errors.New("db path is required")
	} else if _, ok := validTimeUnits[timeUnit]; !ok {
		err = fmt.Errorf("invalid time unit: %s", timeUnit)
	}

	if err != nil {
		flag.Usage()
		return nil, err
	}

	c.TimeUnit = timeUnit
	if c.Name == "" {
		c.Name = strings.TrimSuffix(filepath.Base(c.InputFile), filepath.Ext(c.InputFile))
	}
	return c, nil
}
