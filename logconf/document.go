package logconf

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mohae/deepcopy"

	"github.com/reddit/automate.go/configbp"
	"github.com/reddit/automate.go/errorsbp"
	"github.com/reddit/automate.go/log"
)

// RootLoggerName is the name of the logger defined by the top-level root
// section of a Document, or by loggers.root.
const RootLoggerName = "root"

// HandlerClass selects the sink a Handler writes to.
type HandlerClass string

// Supported handler classes.
const (
	ConsoleClass HandlerClass = "console"
	FileClass    HandlerClass = "file"
	SentryClass  HandlerClass = "sentry"
)

// Format selects the zap encoder of a Formatter.
type Format string

// Supported formats.
const (
	ConsoleFormat Format = "console"
	JSONFormat    Format = "json"
)

// Console handler streams.
const (
	StdoutStream = "stdout"
	StderrStream = "stderr"
)

// ErrRootInLoggers is reported by Document.Validate when the root logger is
// declared both as the top-level root section and under loggers.
var ErrRootInLoggers = errors.New(`logconf: "root" is declared both as the top-level root section and under loggers`)

// ErrEmptyDocument is returned when a parsed document declares no handlers and
// no loggers.
var ErrEmptyDocument = errors.New("logconf: logging document is empty")

// Formatter configures how entries are encoded.
type Formatter struct {
	// Format is either console (default) or json.
	Format Format `yaml:"format"`

	// DateFmt is a go time layout used to encode timestamps.
	// Empty means the default encoder of the format.
	DateFmt string `yaml:"datefmt"`
}

// Handler is a logging output sink.
type Handler struct {
	Class     HandlerClass `yaml:"class"`
	Level     log.Level    `yaml:"level"`
	Formatter string       `yaml:"formatter"`

	// Stream is used by console handlers, stdout or stderr (default).
	Stream string `yaml:"stream"`

	// The following are used by file handlers.
	//
	// Filename is overwritten by Configurator with the derived log file name.
	Filename    string               `yaml:"filename"`
	MaxBytes    configbp.Int64String `yaml:"maxBytes"`
	BackupCount int                  `yaml:"backupCount"`
	MaxAgeDays  int                  `yaml:"maxAgeDays"`
	Compress    bool                 `yaml:"compress"`
}

// LoggerSection configures a named logger.
type LoggerSection struct {
	Level    log.Level `yaml:"level"`
	Handlers []string  `yaml:"handlers"`

	// Propagate makes the logger also write to the handlers of the root
	// section.
	Propagate bool `yaml:"propagate"`
}

// Document is a logging configuration document.
//
// Example:
//
//	version: 1
//	formatters:
//	  simple:
//	    format: console
//	handlers:
//	  console:
//	    class: console
//	    formatter: simple
//	    stream: stdout
//	  file_handler:
//	    class: file
//	    level: info
//	    maxBytes: "10485760"
//	    backupCount: 20
//	loggers:
//	  standard:
//	    level: debug
//	    handlers: [console, file_handler]
//	root:
//	  level: debug
//	  handlers: [console]
type Document struct {
	Version                int  `yaml:"version"`
	DisableExistingLoggers bool `yaml:"disable_existing_loggers"`

	Formatters map[string]Formatter     `yaml:"formatters"`
	Handlers   map[string]Handler       `yaml:"handlers"`
	Loggers    map[string]LoggerSection `yaml:"loggers"`
	Root       *LoggerSection           `yaml:"root"`
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	return deepcopy.Copy(d).(*Document)
}

// IsEmpty reports whether the document declares nothing to log to.
func (d *Document) IsEmpty() bool {
	return d == nil || (len(d.Handlers) == 0 && len(d.Loggers) == 0 && d.Root == nil)
}

// Logger returns the section of the named logger.
//
// RootLoggerName resolves to the top-level root section,
// or to loggers.root when there is no top-level root section.
func (d *Document) Logger(name string) (LoggerSection, bool) {
	if name == RootLoggerName && d.Root != nil {
		return *d.Root, true
	}
	section, ok := d.Loggers[name]
	return section, ok
}

func (d *Document) rootHandlers() []string {
	if root, ok := d.Logger(RootLoggerName); ok {
		return root.Handlers
	}
	return nil
}

// LoggerNames returns the sorted names of all declared loggers,
// including RootLoggerName when the root logger exists.
func (d *Document) LoggerNames() []string {
	names := make([]string, 0, len(d.Loggers)+1)
	for name := range d.Loggers {
		names = append(names, name)
	}
	if _, ok := d.Loggers[RootLoggerName]; d.Root != nil && !ok {
		names = append(names, RootLoggerName)
	}
	sort.Strings(names)
	return names
}

// Validate checks the references and enum values of the document.
//
// All problems found are returned together as an errorsbp.Batch.
func (d *Document) Validate() error {
	var batch errorsbp.Batch
	if d.Version != 0 && d.Version != 1 {
		batch.Add(fmt.Errorf("logconf: unsupported version %d", d.Version))
	}
	for name, f := range d.Formatters {
		switch f.Format {
		case "", ConsoleFormat, JSONFormat:
		default:
			batch.AddPrefix("formatters."+name, fmt.Errorf("unknown format %q", f.Format))
		}
	}
	for name, h := range d.Handlers {
		batch.AddPrefix("handlers."+name, d.validateHandler(h))
	}
	for name, section := range d.Loggers {
		if name == RootLoggerName && d.Root != nil {
			batch.Add(ErrRootInLoggers)
			continue
		}
		batch.AddPrefix("loggers."+name, d.validateSection(section))
	}
	if d.Root != nil {
		batch.AddPrefix(RootLoggerName, d.validateSection(*d.Root))
	}
	return batch.Compile()
}

func (d *Document) validateHandler(h Handler) error {
	var batch errorsbp.Batch
	switch h.Class {
	case ConsoleClass:
		switch h.Stream {
		case "", StdoutStream, StderrStream:
		default:
			batch.Add(fmt.Errorf("unknown stream %q", h.Stream))
		}
	case FileClass:
		if h.MaxBytes < 0 {
			batch.Add(fmt.Errorf("negative maxBytes %d", h.MaxBytes))
		}
		if h.BackupCount < 0 {
			batch.Add(fmt.Errorf("negative backupCount %d", h.BackupCount))
		}
	case SentryClass:
	default:
		batch.Add(fmt.Errorf("unknown class %q", h.Class))
	}
	if h.Level != "" && !h.Level.Valid() {
		batch.Add(fmt.Errorf("unknown level %q", h.Level))
	}
	if h.Formatter != "" {
		if _, ok := d.Formatters[h.Formatter]; !ok {
			batch.Add(fmt.Errorf("unknown formatter %q", h.Formatter))
		}
	}
	return batch.Compile()
}

func (d *Document) validateSection(section LoggerSection) error {
	var batch errorsbp.Batch
	if section.Level != "" && !section.Level.Valid() {
		batch.Add(fmt.Errorf("unknown level %q", section.Level))
	}
	for _, name := range section.Handlers {
		if _, ok := d.Handlers[name]; !ok {
			batch.Add(fmt.Errorf("unknown handler %q", name))
		}
	}
	return batch.Compile()
}

// Prune returns a copy of the document scoped to the named logger.
//
// Handlers not referenced by the logger are removed, and so is every other
// logger: the loggers section keeps only name, and the root section is
// dropped unless name is RootLoggerName.
// A root logger read from loggers.root is moved to the top-level root
// section.
// When the logger propagates, root's handlers are merged into its handler
// list before root is dropped.
//
// The receiver is never modified.
func (d *Document) Prune(name string) (*Document, error) {
	section, ok := d.Logger(name)
	if !ok {
		return nil, &LoggerNotFoundError{
			Name:     name,
			Declared: d.LoggerNames(),
		}
	}

	pruned := d.Clone()
	handlers := append([]string(nil), section.Handlers...)
	if name != RootLoggerName && section.Propagate {
		handlers = mergeNames(handlers, d.rootHandlers())
		section.Propagate = false
	}
	section.Handlers = handlers

	keep := make(map[string]bool, len(handlers))
	for _, h := range handlers {
		keep[h] = true
	}
	for h := range pruned.Handlers {
		if !keep[h] {
			delete(pruned.Handlers, h)
		}
	}

	if name == RootLoggerName {
		pruned.Loggers = nil
		pruned.Root = &section
	} else {
		pruned.Loggers = map[string]LoggerSection{
			name: section,
		}
		pruned.Root = nil
	}
	return pruned, nil
}

func mergeNames(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	merged := make([]string, 0, len(a)+len(b))
	for _, names := range [][]string{a, b} {
		for _, name := range names {
			if !seen[name] {
				seen[name] = true
				merged = append(merged, name)
			}
		}
	}
	return merged
}
