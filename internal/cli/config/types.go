// Package config resolves the settings for a single acro run.
//
// Every setting can come from a command-line flag, an environment
// variable, an optional YAML config file or a built-in default, in that
// order of precedence. Column numbers are 1-based wherever a user types
// them and 0-based once resolved.
package config

import (
	"fmt"

	"github.com/leapstack-labs/acro/internal/cli/output"
	"github.com/leapstack-labs/acro/internal/lookup"
	"github.com/leapstack-labs/acro/internal/source"
)

// Default configuration values.
const (
	DefaultAcroColumn       = 1
	DefaultDefinitionColumn = 2
	DefaultDelimiter        = string(source.DefaultDelimiter)
	DefaultOutput           = string(output.FormatText)
)

// Environment variables read during resolution.
const (
	EnvFile             = "ACRO_FILE"
	EnvAcroColumn       = "ACRO_COLUMN"
	EnvDefinitionColumn = "DEFINITION_COLUMN"
	EnvHeader           = "ACRO_HEADER"
	EnvColor            = "ACRO_COLOR"
	EnvDelimiter        = "ACRO_DELIMITER"
	EnvOutput           = "ACRO_OUTPUT"
	EnvConfig           = "ACRO_CONFIG"
)

// Config holds the resolved settings for one run. It is not modified after Load.
type Config struct {
	Acronym          string
	File             string
	AcroColumn       int
	DefinitionColumn int
	Header           bool
	Color            bool
	Delimiter        rune
	Output           output.Format

	// ConfigFile is the YAML file that was read, if any.
	ConfigFile string
}

// Columns returns the zero-based columns used to extract entries.
func (c *Config) Columns() lookup.Columns {
	return lookup.Columns{Acronym: c.AcroColumn, Definition: c.DefinitionColumn}
}

// SourceOptions returns the options used to open the input.
func (c *Config) SourceOptions() source.Options {
	return source.Options{Delimiter: c.Delimiter, Header: c.Header}
}

// fileConfig mirrors the keys shared by flags, environment and config file.
// Columns are still 1-based here.
type fileConfig struct {
	File       string `koanf:"file"`
	Acro       int    `koanf:"acro"`
	Definition int    `koanf:"definition"`
	Header     bool   `koanf:"header"`
	Color      bool   `koanf:"color"`
	Delimiter  string `koanf:"delimiter"`
	Output     string `koanf:"output"`
}

// ArgumentError reports a missing or invalid command-line argument. It is
// the only error that ends a run with a non-zero exit code.
type ArgumentError struct {
	Name    string
	Message string
}

func (e *ArgumentError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("invalid argument %q: %s", e.Name, e.Message)
	}
	return e.Message
}
