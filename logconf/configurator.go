package logconf

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/juju/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/reddit/automate.go/batchcloser"
	"github.com/reddit/automate.go/configbp"
	"github.com/reddit/automate.go/errorsbp"
	"github.com/reddit/automate.go/log"
)

const promNamespace = "logconf"

var parseFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: promNamespace,
	Name:      "parse_failure_total",
	Help:      "Total number of logging documents that failed to parse and fell back to the default configuration",
})

// activateMu serializes swaps of the global logger.
var activateMu sync.Mutex

// Options configures New.
//
// All fields are optional.
type Options struct {
	// ConfigFile is the logging document to look for.
	// Default is DefaultConfigFile.
	ConfigFile string

	// Level is used by the fallback configuration,
	// and by loggers and handlers in the document without a level.
	// Default is log.DebugLevel.
	Level log.Level

	// LogFilePrefix replaces the program name in the derived log file name.
	LogFilePrefix string

	// LogFileDir is the directory of the derived log file name.
	// Default is the current working directory.
	LogFileDir string

	// SearchDir is the first directory ConfigFile is looked up in.
	// Default is the directory of the running executable.
	SearchDir string

	// ProgramName is used to derive the log file name when LogFilePrefix is
	// empty. Default is ProgramName().
	ProgramName string

	// Clock provides the timestamp of the log file name.
	// Default is clock.WallClock.
	Clock clock.Clock

	// Cache holds the parsed document. Default is DefaultCache.
	Cache *Cache

	// Stdout and Stderr are written to by console handlers and the fallback
	// configuration. Default to os.Stdout and os.Stderr.
	Stdout io.Writer
	Stderr io.Writer

	// ParseFailureLogger reports a document that failed to parse.
	// Default logs a warning to the fallback logger.
	ParseFailureLogger log.Wrapper
}

// Configurator applies a logging Document to the global logger.
//
// It moves through three phases:
// New resolves the document path and loads the document (parsing it at most
// once per Cache), derives the log file name,
// and GetLogger activates the part of the document the requested logger
// needs.
//
// When the document cannot be parsed, the Configurator degrades to the
// fallback configuration: a single console core on stderr at Options.Level.
type Configurator struct {
	level    log.Level
	cache    *Cache
	path     string
	doc      *Document
	logFile  string
	sinks    sinks
	fallback *zap.Logger
	closers  batchcloser.BatchCloser

	mu      sync.Mutex
	files   batchcloser.BatchCloser
	applied *Document
}

// New creates a Configurator.
//
// A missing document is the only error New returns,
// as a *ConfigNotFoundError.
// A document that cannot be parsed or fails Validate is logged,
// counted in logconf_parse_failure_total,
// and replaced by the fallback configuration.
func New(opts Options) (*Configurator, error) {
	if opts.ConfigFile == "" {
		opts.ConfigFile = DefaultConfigFile
	}
	if opts.Level == "" {
		opts.Level = log.DebugLevel
	}
	if opts.SearchDir == "" {
		opts.SearchDir = ExecutableDir()
	}
	if opts.ProgramName == "" {
		opts.ProgramName = ProgramName()
	}
	if opts.Clock == nil {
		opts.Clock = clock.WallClock
	}
	if opts.Cache == nil {
		opts.Cache = DefaultCache
	}

	c := &Configurator{
		level: opts.Level,
		cache: opts.Cache,
		sinks: sinks{
			stdout: writeSyncer(opts.Stdout, os.Stdout),
			stderr: writeSyncer(opts.Stderr, os.Stderr),
		},
	}
	c.fallback = zap.New(
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(log.NewConsoleEncoderConfig()),
			c.sinks.stderr,
			levelEnabler(opts.Level, opts.Level),
		),
		zap.AddCaller(),
	)

	path, err := ResolvePath(opts.SearchDir, opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	c.path = path

	doc, err := c.cache.Load(path, parseDocument)
	if err != nil {
		activate(c.fallback)
		msg := fmt.Sprintf(
			"logconf: error loading logging configuration %q, using default configs: %v",
			path,
			err,
		)
		if opts.ParseFailureLogger != nil {
			log.PrometheusCounterWrapper(opts.ParseFailureLogger, parseFailures)(msg)
		} else {
			parseFailures.Inc()
			c.fallback.Warn(msg)
		}
		return c, nil
	}

	c.logFile = LogFileName(opts.LogFilePrefix, opts.LogFileDir, opts.ProgramName, opts.Clock.Now())
	for name, h := range doc.Handlers {
		if h.Class == FileClass {
			h.Filename = c.logFile
			doc.Handlers[name] = h
		}
	}
	c.doc = doc
	return c, nil
}

func parseDocument(path string) (*Document, error) {
	doc := new(Document)
	if err := configbp.ParseStrictFile(path, doc); err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

func writeSyncer(w io.Writer, fallback *os.File) zapcore.WriteSyncer {
	if w == nil {
		return zapcore.Lock(fallback)
	}
	return zapcore.Lock(zapcore.AddSync(w))
}

func activate(l *zap.Logger) {
	activateMu.Lock()
	defer activateMu.Unlock()
	log.ReplaceGlobal(l.WithOptions(zap.AddCallerSkip(1)))
}

// Path returns the resolved path of the logging document.
func (c *Configurator) Path() string {
	return c.path
}

// LogFile returns the derived log file name,
// or an empty string when the fallback configuration is in use.
func (c *Configurator) LogFile() string {
	return c.logFile
}

// Fallback reports whether the fallback configuration is in use.
func (c *Configurator) Fallback() bool {
	return c.doc == nil
}

// Document returns a copy of the document with the derived log file name
// assigned, or nil when the fallback configuration is in use.
func (c *Configurator) Document() *Document {
	return c.doc.Clone()
}

// Applied returns a copy of the document last applied by GetLogger,
// or nil if GetLogger was not called successfully yet.
func (c *Configurator) Applied() *Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applied.Clone()
}

// GetLogger applies the part of the document the named logger needs to the
// global logger, and returns the named logger.
//
// An empty name means RootLoggerName.
//
// The document is pruned first (see Document.Prune): only the requested
// logger and the handlers it references are kept.
// When the fallback configuration is in use, the fallback logger is returned.
func (c *Configurator) GetLogger(name string) (*zap.SugaredLogger, error) {
	if name == "" {
		name = RootLoggerName
	}
	if c.doc == nil {
		return named(c.fallback, name).Sugar(), nil
	}

	pruned, err := c.doc.Prune(name)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	files := batchcloser.New()
	core, err := build(pruned, name, c.level, c.sinks, files)
	if err != nil {
		var batch errorsbp.Batch
		batch.Add(err, files.Close())
		return nil, batch.Compile()
	}

	logger := zap.New(core, zap.AddCaller())
	activate(logger)
	c.applied = pruned

	// The previous file writers are no longer reachable from the global
	// logger.
	previous := c.files
	c.files = *files
	if err := previous.Close(); err != nil {
		log.Warnw("logconf: failed to close previous log files", "err", err)
	}
	return named(logger, name).Sugar(), nil
}

func named(l *zap.Logger, name string) *zap.Logger {
	if name == RootLoggerName {
		return l
	}
	return l.Named(name)
}

// Close closes the log files opened by GetLogger,
// and anything else attached to the Configurator by InitFromConfig.
//
// Loggers returned by GetLogger should not be used after Close.
func (c *Configurator) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var batch errorsbp.Batch
	batch.Add(c.files.Close(), c.closers.Close())
	return batch.Compile()
}
