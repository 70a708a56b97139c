package log

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Wrapper is a logging function for components that only report the
// occasional message, so the caller decides where it goes.
type Wrapper func(msg string)

// NopWrapper discards the message.
func NopWrapper(msg string) {}

// Log calls w, doing nothing when w is nil.
func (w Wrapper) Log(msg string) {
	if w != nil {
		w(msg)
	}
}

// ZapWrapper logs to the global logger at logLevel.
//
// Unknown levels log at info, ZapNopLevel discards.
func ZapWrapper(logLevel zapcore.Level) Wrapper {
	return func(msg string) {
		logAt(globalLogger, logLevel, msg)
	}
}

// ContextWrapper logs to C(ctx) at logLevel, keeping the pairs attached to
// ctx.
func ContextWrapper(ctx context.Context, logLevel zapcore.Level) Wrapper {
	return func(msg string) {
		logAt(C(ctx), logLevel, msg)
	}
}

func logAt(logger *zap.SugaredLogger, logLevel zapcore.Level, msg string) {
	switch logLevel {
	case ZapNopLevel:
	case zapcore.DebugLevel:
		logger.Debug(msg)
	case zapcore.WarnLevel:
		logger.Warn(msg)
	case zapcore.ErrorLevel:
		logger.Error(msg)
	case zapcore.PanicLevel:
		logger.Panic(msg)
	case zapcore.FatalLevel:
		logger.Fatal(msg)
	default:
		logger.Info(msg)
	}
}

// DefaultWrapper logs to the global logger at info level.
var DefaultWrapper = ZapWrapper(zapcore.InfoLevel)

// PrometheusCounterWrapper increases counter then passes the message to
// delegate, DefaultWrapper when nil.
func PrometheusCounterWrapper(delegate Wrapper, counter prometheus.Counter) Wrapper {
	if delegate == nil {
		delegate = DefaultWrapper
	}
	return func(msg string) {
		counter.Inc()
		delegate(msg)
	}
}
