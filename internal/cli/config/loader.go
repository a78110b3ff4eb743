package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/acro/internal/cli/output"
	"github.com/leapstack-labs/acro/internal/source"
)

// loggerKey is used to store logger in context.
type loggerKey struct{}

// MissingFileWarning is printed when neither the flag nor the environment names an input.
const MissingFileWarning = "File should be specified in argument -f or in env variable " + EnvFile

// envKeys maps the environment variables acro reads to config keys.
var envKeys = map[string]string{
	EnvFile:             "file",
	EnvAcroColumn:       "acro",
	EnvDefinitionColumn: "definition",
	EnvHeader:           "header",
	EnvColor:            "color",
	EnvDelimiter:        "delimiter",
	EnvOutput:           "output",
}

// flagKeys lists the flags that take part in resolution.
var flagKeys = map[string]bool{
	"file":       true,
	"acro":       true,
	"definition": true,
	"header":     true,
	"color":      true,
	"delimiter":  true,
	"output":     true,
}

// Load resolves the configuration for acronym.
// Precedence (highest to lowest): flags > env vars > config file > defaults
//
// Only flags marked as changed are used. Environment values that do not
// parse are ignored so the next tier applies. A warning is written to
// stderr when no input file can be resolved; that is not an error.
func Load(ctx context.Context, acronym string, flags *pflag.FlagSet, stderr io.Writer) (*Config, error) {
	if acronym == "" {
		return nil, &ArgumentError{Message: "the required argument <ACRONYM> was not provided"}
	}
	if stderr == nil {
		stderr = io.Discard
	}
	logger := GetLogger(ctx)

	// Create a new koanf instance to avoid global state issues
	k := koanf.New(".")

	// 1. Load defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"acro":       DefaultAcroColumn,
		"definition": DefaultDefinitionColumn,
		"header":     false,
		"color":      false,
		"delimiter":  DefaultDelimiter,
		"output":     DefaultOutput,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Optional config file
	configFile := findConfigFile(flags)
	if configFile != "" {
		fk, err := loadConfigFile(configFile)
		if err != nil {
			return nil, err
		}
		if err := k.Merge(fk); err != nil {
			return nil, fmt.Errorf("failed to merge config file %s: %w", configFile, err)
		}
		logger.Debug("loaded config file", slog.String("path", configFile))
	}

	// 3. Environment variables
	if err := k.Load(env.ProviderWithValue("", ".", func(name, value string) (string, interface{}) {
		key, val, ok := envValue(name, value)
		if !ok && key != "" {
			logger.Debug("ignoring invalid environment variable",
				slog.String("name", name), slog.String("value", value))
		}
		if !ok {
			return "", nil
		}
		return key, val
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags (highest priority)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed || !flagKeys[f.Name] {
				return "", nil
			}
			return f.Name, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var raw fileConfig
	if err := k.Unmarshal("", &raw); err != nil {
		return nil, &ArgumentError{Message: fmt.Sprintf("unable to decode config: %v", err)}
	}

	if !k.Exists("file") {
		_, _ = fmt.Fprintln(stderr, MissingFileWarning)
	}

	cfg, err := resolve(acronym, raw)
	if err != nil {
		return nil, err
	}
	cfg.ConfigFile = configFile

	logger.Debug("resolved config",
		slog.String("file", cfg.File),
		slog.Int("acro_column", cfg.AcroColumn),
		slog.Int("definition_column", cfg.DefinitionColumn),
		slog.Bool("header", cfg.Header),
		slog.Bool("color", cfg.Color),
		slog.String("output", string(cfg.Output)))

	return cfg, nil
}

// resolve validates the merged values and converts columns to 0-based.
func resolve(acronym string, raw fileConfig) (*Config, error) {
	if raw.Acro < 1 {
		return nil, &ArgumentError{Name: "acro", Message: "column numbers start at 1"}
	}
	if raw.Definition < 1 {
		return nil, &ArgumentError{Name: "definition", Message: "column numbers start at 1"}
	}
	delim, err := parseDelimiter(raw.Delimiter)
	if err != nil {
		return nil, &ArgumentError{Name: "delimiter", Message: err.Error()}
	}
	format, err := output.ParseFormat(raw.Output)
	if err != nil {
		return nil, &ArgumentError{Name: "output", Message: err.Error()}
	}

	return &Config{
		Acronym:          acronym,
		File:             raw.File,
		AcroColumn:       raw.Acro - 1,
		DefinitionColumn: raw.Definition - 1,
		Header:           raw.Header,
		Color:            raw.Color,
		Delimiter:        delim,
		Output:           format,
	}, nil
}

// envValue converts one environment variable into a config key and value.
// It returns an empty key for variables acro does not read, and ok=false
// for values that do not parse, in which case the variable counts as unset.
func envValue(name, value string) (key string, val interface{}, ok bool) {
	key, known := envKeys[name]
	if !known {
		return "", nil, false
	}

	switch key {
	case "acro", "definition":
		n, valid := parseColumn(value)
		if !valid {
			return key, nil, false
		}
		return key, n, true
	case "header", "color":
		// Presence is enough; the value is ignored.
		return key, true, true
	case "delimiter":
		if _, err := parseDelimiter(value); err != nil {
			return key, nil, false
		}
	case "output":
		if _, err := output.ParseFormat(value); err != nil {
			return key, nil, false
		}
	}
	return key, value, true
}

// parseColumn parses a 1-based column number.
func parseColumn(s string) (int, bool) {
	n, err := strconv.ParseUint(s, 10, 31)
	if err != nil || n == 0 {
		return 0, false
	}
	return int(n), true
}

// findConfigFile returns the config file named by --config or ACRO_CONFIG.
func findConfigFile(flags *pflag.FlagSet) string {
	if flags != nil && flags.Changed("config") {
		if v, _ := flags.GetString("config"); v != "" {
			return v
		}
	}
	return os.Getenv(EnvConfig)
}

// loadConfigFile reads a YAML config file. A relative "file" entry is
// resolved against the config file's directory.
func loadConfigFile(path string) (*koanf.Koanf, error) {
	fk := koanf.New(".")
	if err := fk.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, &ArgumentError{Name: "config", Message: fmt.Sprintf("error reading config file %s: %v", path, err)}
	}

	if fk.Exists("file") {
		if p := fk.String("file"); p != "" && p != source.Stdin {
			if err := fk.Set("file", resolvePathRelativeTo(p, filepath.Dir(path))); err != nil {
				return nil, fmt.Errorf("failed to set file path: %w", err)
			}
		}
	}
	return fk, nil
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
			return l
		}
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}
