// Package configbp parses yaml configuration files.
package configbp

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"github.com/reddit/automate.go/internal/limitopen"
	"github.com/reddit/automate.go/log"
)

// ConfigPathEnv is the environment variable consulted by DefaultConfigPath.
const ConfigPathEnv = "AUTOMATE_CONFIG_PATH"

// Size limits applied when opening configuration files.
const (
	SoftLimit int64 = 1 << 20
	HardLimit int64 = 10 << 20
)

// DefaultConfigPath returns the config file path from the environment,
// or an empty string when it's not set.
func DefaultConfigPath() string {
	return os.Getenv(ConfigPathEnv)
}

// ExpandEnv substitutes $VAR and ${VAR} with values from the environment.
//
// ${VAR:-default} substitutes default when VAR is unset or empty.
func ExpandEnv(s string) string {
	return os.Expand(s, func(key string) string {
		name, def, hasDefault := strings.Cut(key, ":-")
		if v := os.Getenv(name); v != "" || !hasDefault {
			return v
		}
		return def
	})
}

// ParseStrictFile parses the yaml file at path into ptr, see ParseStrictYAML.
//
// Files above SoftLimit are logged, files above HardLimit are rejected.
func ParseStrictFile(path string, ptr interface{}) error {
	switch ext := filepath.Ext(path); strings.ToLower(ext) {
	case ".yaml", ".yml":
	default:
		return fmt.Errorf("configbp: unsupported config extension %q of %q", ext, path)
	}

	f, err := limitopen.OpenWithLimit(path, SoftLimit, HardLimit)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := ParseStrictYAML(f, ptr); err != nil {
		return fmt.Errorf("configbp: %s: %w", path, err)
	}
	return nil
}

// ParseStrictYAML parses yaml read from reader into ptr,
// typically a pointer to a struct.
//
// Environment variables are substituted first (see ExpandEnv),
// and unknown fields are errors.
// When the global logger is at debug level the substituted document is
// logged.
func ParseStrictYAML(reader io.Reader, ptr interface{}) error {
	raw, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("reading yaml: %w", err)
	}
	expanded := ExpandEnv(string(raw))
	debug := log.With().Desugar().Core().Enabled(zap.DebugLevel)

	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.SetStrict(true)
	if err := dec.Decode(ptr); err != nil {
		if debug {
			log.Debugf("Configuration failed to decode into %T: %v\n%s", ptr, err, expanded)
		}
		return fmt.Errorf("parsing yaml into %T: %w", ptr, err)
	}
	if debug {
		log.Debugf("Parsed configuration as %T:\n%s", ptr, expanded)
	}
	return nil
}
