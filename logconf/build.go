package logconf

import (
	"fmt"

	"github.com/juju/lumberjack/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/reddit/automate.go/batchcloser"
	"github.com/reddit/automate.go/log"
)

const megabyte = 1 << 20

// sinks carries the writers console handlers use.
type sinks struct {
	stdout zapcore.WriteSyncer
	stderr zapcore.WriteSyncer
}

// build creates the zap core of the named logger of a pruned document,
// and adds the file writers it creates to files.
//
// defaultLevel applies to the logger and handlers without a level.
func build(doc *Document, name string, defaultLevel log.Level, s sinks, files *batchcloser.BatchCloser) (zapcore.Core, error) {
	section, ok := doc.Logger(name)
	if !ok {
		return nil, &LoggerNotFoundError{
			Name:     name,
			Declared: doc.LoggerNames(),
		}
	}
	loggerLevel := levelOr(section.Level, defaultLevel)

	cores := make([]zapcore.Core, 0, len(section.Handlers))
	for _, handlerName := range section.Handlers {
		h, ok := doc.Handlers[handlerName]
		if !ok {
			return nil, fmt.Errorf("logconf: logger %q references unknown handler %q", name, handlerName)
		}
		enabler := levelEnabler(loggerLevel, levelOr(h.Level, defaultLevel))

		switch h.Class {
		case SentryClass:
			cores = append(cores, log.SentryCore(enabler))
		case ConsoleClass:
			ws := s.stderr
			if h.Stream == StdoutStream {
				ws = s.stdout
			}
			cores = append(cores, zapcore.NewCore(encoder(doc.Formatters[h.Formatter]), ws, enabler))
		case FileClass:
			if h.Filename == "" {
				return nil, fmt.Errorf("logconf: file handler %q has no filename", handlerName)
			}
			lj := &lumberjack.Logger{
				Filename:   h.Filename,
				MaxSize:    maxSizeMB(int64(h.MaxBytes)),
				MaxBackups: h.BackupCount,
				MaxAge:     h.MaxAgeDays,
				Compress:   h.Compress,
				LocalTime:  true,
			}
			files.Add(batchcloser.Wrap(h.Filename, lj.Close))
			cores = append(cores, zapcore.NewCore(encoder(doc.Formatters[h.Formatter]), zapcore.AddSync(lj), enabler))
		default:
			return nil, fmt.Errorf("logconf: handler %q has unknown class %q", handlerName, h.Class)
		}
	}
	return zapcore.NewTee(cores...), nil
}

func levelOr(l, fallback log.Level) log.Level {
	if l == "" {
		return fallback
	}
	return l
}

func levelEnabler(loggerLevel, handlerLevel log.Level) zapcore.LevelEnabler {
	threshold := loggerLevel.ToZapLevel()
	if hl := handlerLevel.ToZapLevel(); hl > threshold {
		threshold = hl
	}
	return zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= threshold && threshold != log.ZapNopLevel
	})
}

func encoder(f Formatter) zapcore.Encoder {
	if f.Format == JSONFormat {
		cfg := log.NewJSONEncoderConfig()
		if f.DateFmt != "" {
			cfg.EncodeTime = zapcore.TimeEncoderOfLayout(f.DateFmt)
		}
		return zapcore.NewJSONEncoder(cfg)
	}
	cfg := log.NewConsoleEncoderConfig()
	if f.DateFmt != "" {
		cfg.EncodeTime = log.LayoutTimeEncoder(f.DateFmt)
	}
	return zapcore.NewConsoleEncoder(cfg)
}

// maxSizeMB rounds maxBytes up to whole megabytes.
// Zero keeps lumberjack's default of 100 megabytes.
func maxSizeMB(maxBytes int64) int {
	if maxBytes <= 0 {
		return 0
	}
	return int((maxBytes + megabyte - 1) / megabyte)
}
