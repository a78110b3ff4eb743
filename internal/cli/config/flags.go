package config

import (
	"github.com/spf13/pflag"
)

// RegisterFlags defines the resolution flags on fs. Defaults shown in help
// are informational; Load only reads flags the user changed.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP("file", "f", "", "the csv file with the acronyms and definitions, \"-\" for stdin (env "+EnvFile+")")
	fs.UintP("acro", "a", DefaultAcroColumn, "the column with the acronyms (env "+EnvAcroColumn+")")
	fs.UintP("definition", "d", DefaultDefinitionColumn, "the column with the definitions (env "+EnvDefinitionColumn+")")
	fs.BoolP("header", "H", false, "flag if there is a header line (env "+EnvHeader+")")
	fs.BoolP("color", "c", false, "enables color output (env "+EnvColor+")")
	fs.String("delimiter", DefaultDelimiter, "field delimiter (env "+EnvDelimiter+")")
	fs.StringP("output", "o", DefaultOutput, "output format: text|table|markdown|json (env "+EnvOutput+")")
	fs.String("config", "", "YAML config file (env "+EnvConfig+")")
}
