package log

import (
	"time"

	"go.uber.org/zap/zapcore"
)

// RFC3339Nano is the time layout of TimeEncoder.
const RFC3339Nano = "ts=2006-01-02T15:04:05.000000Z"

// FullCallerEncoder encodes the caller as caller=/full/path/to/file.go:line.
func FullCallerEncoder(caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("caller=" + caller.String())
}

// ShortCallerEncoder encodes the caller as caller=package/file.go:line.
func ShortCallerEncoder(caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("caller=" + caller.TrimmedPath())
}

// TimeEncoder encodes the time in UTC as ts=<RFC3339 with microseconds>.
func TimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.UTC().Format(RFC3339Nano))
}

// LayoutTimeEncoder returns a console time encoder using a custom go time
// layout, in local time, keeping the ts= prefix of TimeEncoder.
func LayoutTimeEncoder(layout string) zapcore.TimeEncoder {
	return func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString("ts=" + t.Local().Format(layout))
	}
}

// NameEncoder encodes the logger name as logger=name.
func NameEncoder(name string, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("logger=" + name)
}

// CapitalLevelEncoder encodes the level as level=LEVEL.
func CapitalLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("level=" + l.CapitalString())
}

// JSONTimeEncoder encodes the time in UTC RFC3339Nano with no prefix,
// for the JSON format.
func JSONTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.UTC().Format(time.RFC3339Nano))
}
