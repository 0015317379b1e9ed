// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

// MethanohuntConfig holds tool-wide defaults. Any value here can be
// overridden per run with a CLI flag.
type MethanohuntConfig struct {
	// Database is the default classifier database path used when --database
	// is not given.
	Database string `yaml:"database" validate:"required"`

	Output  OutputConfig  `yaml:"output"`
	Run     RunConfig     `yaml:"run"`
	Logging LoggingConfig `yaml:"logging"`
}

// OutputConfig controls how the summary table is written.
type OutputConfig struct {
	// Precision is the number of decimal places in TSV cells.
	Precision int `yaml:"precision" validate:"min=0,max=6"`

	// Chart enables HTML chart generation next to the output TSV.
	Chart bool `yaml:"chart"`
}

// RunConfig controls pipeline execution.
type RunConfig struct {
	// Concurrency bounds parallel profile-file processing.
	Concurrency int `yaml:"concurrency" validate:"min=1"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`

	// Dir enables JSON file logging when non-empty. Supports "~" expansion.
	Dir string `yaml:"dir"`
}

// DefaultConfig returns the configuration written on first run.
func DefaultConfig() MethanohuntConfig {
	return MethanohuntConfig{
		Database: "methanohunt_db.tsv",
		Output: OutputConfig{
			Precision: 2,
			Chart:     true,
		},
		Run: RunConfig{
			Concurrency: 4,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
