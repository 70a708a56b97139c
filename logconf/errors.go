package logconf

import (
	"fmt"
	"io/fs"
	"strings"
)

// ConfigNotFoundError is returned by ResolvePath and New when the logging
// document cannot be found in any of the searched locations.
type ConfigNotFoundError struct {
	// Name is the configured file name.
	Name string

	// Tried lists every path checked, in order.
	Tried []string
}

func (e *ConfigNotFoundError) Error() string {
	return fmt.Sprintf(
		"logconf: %s does not exist, tried [%s]. Please provide a fully qualified path for the file if it's not inside the search directory",
		e.Name,
		strings.Join(e.Tried, ", "),
	)
}

// Unwrap returns fs.ErrNotExist.
func (e *ConfigNotFoundError) Unwrap() error {
	return fs.ErrNotExist
}

// LoggerNotFoundError is returned when the requested logger is not declared
// in the logging document.
type LoggerNotFoundError struct {
	Name     string
	Declared []string
}

func (e *LoggerNotFoundError) Error() string {
	return fmt.Sprintf(
		"logconf: logger %q is not declared, declared loggers: [%s]",
		e.Name,
		strings.Join(e.Declared, ", "),
	)
}
