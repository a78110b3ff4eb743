package config

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// parseDelimiter validates a field delimiter. It must be a single
// character that the record reader can split on.
func parseDelimiter(s string) (rune, error) {
	if s == "" {
		return 0, errors.New("delimiter must not be empty")
	}
	if s == `\t` || s == "tab" {
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	switch {
	case r == utf8.RuneError:
		return 0, fmt.Errorf("delimiter %q is not valid UTF-8", s)
	case r == '"' || r == '\r' || r == '\n':
		return 0, fmt.Errorf("delimiter %q cannot be used to split fields", s)
	}
	return r, nil
}
