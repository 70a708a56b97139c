package logconf

import (
	"go.uber.org/zap"

	"github.com/reddit/automate.go/log"
)

// Config is the confuration struct for the logconf package.
//
// Can be deserialized from YAML.
type Config struct {
	// File is the logging document, see Options.ConfigFile.
	File string `yaml:"file"`

	// Level is the default level, see Options.Level.
	Level log.Level `yaml:"level"`

	// Logger is the name of the logger to activate. Default is root.
	Logger string `yaml:"logger"`

	LogFilePrefix string `yaml:"logFilePrefix"`
	LogFileDir    string `yaml:"logFileDir"`
	SearchDir     string `yaml:"searchDir"`

	// Sentry, when set, initializes sentry before the logger is activated so
	// sentry handlers have somewhere to report to.
	Sentry *log.SentryConfig `yaml:"sentry"`
}

// InitFromConfig creates a Configurator from cfg and activates cfg.Logger.
//
// Closing the Configurator also flushes sentry when cfg.Sentry is set.
func InitFromConfig(cfg Config) (*Configurator, *zap.SugaredLogger, error) {
	c, err := New(Options{
		ConfigFile:    cfg.File,
		Level:         cfg.Level,
		LogFilePrefix: cfg.LogFilePrefix,
		LogFileDir:    cfg.LogFileDir,
		SearchDir:     cfg.SearchDir,
	})
	if err != nil {
		return nil, nil, err
	}
	if cfg.Sentry != nil {
		closer, err := log.InitSentry(*cfg.Sentry)
		if err != nil {
			return nil, nil, err
		}
		c.closers.Add(closer)
	}
	logger, err := c.GetLogger(cfg.Logger)
	if err != nil {
		c.Close()
		return nil, nil, err
	}
	return c, logger, nil
}
