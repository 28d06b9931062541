package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/domonda/go-rowview"
	"github.com/domonda/go-rowview/csvtable"
)

// Flags holds the persistent command line flags.
type Flags struct {
	Input  string
	Driver string
	DSN    string
	Query  string
	Config string
	Offset int
	Count  int
	Format string
}

func newFlags() *Flags {
	return &Flags{Driver: "duckdb", Count: -1, Format: "csv"}
}

// Config is read from the YAML file passed with --config.
type Config struct {
	// NeededColumns are added to the loaded batch
	// if it does not have them already.
	NeededColumns []rowview.NeededColumn `yaml:"needed_columns"`

	// CSV disables format detection if set.
	CSV *csvtable.Format `yaml:"csv"`

	// RawExcelCells reads Excel cells without number formatting.
	RawExcelCells bool `yaml:"raw_excel_cells"`
}

func loadConfig(path string) (*Config, error) {
	config := new(Config)
	if path == "" {
		return config, nil
	}
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(bytes, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if config.CSV != nil {
		if err := config.CSV.Validate(); err != nil {
			return nil, fmt.Errorf("invalid csv in config %s: %w", path, err)
		}
	}
	return config, nil
}
