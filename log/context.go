package log

import (
	"context"

	"go.uber.org/zap"
)

type contextKeyType struct{}

var contextKey contextKeyType

// AttachArgs are the pairs Attach adds to the logger of a context.
type AttachArgs struct {
	AdditionalPairs map[string]interface{}
}

// Attach returns a context carrying C(ctx) with args added.
func Attach(ctx context.Context, args AttachArgs) context.Context {
	logger := C(ctx)
	if len(args.AdditionalPairs) > 0 {
		kv := make([]interface{}, 0, len(args.AdditionalPairs)*2)
		for k, v := range args.AdditionalPairs {
			kv = append(kv, k, v)
		}
		logger = logger.With(kv...)
	}
	return AttachLogger(ctx, logger)
}

// AttachLogger returns a context carrying logger.
func AttachLogger(ctx context.Context, logger *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, contextKey, logger)
}

// C returns the logger attached to ctx, or the global logger.
//
//	log.C(ctx).Errorw("Failed to fetch secret", "err", err)
//
// The returned logger is never nil.
func C(ctx context.Context) *zap.SugaredLogger {
	if logger, ok := ctx.Value(contextKey).(*zap.SugaredLogger); ok && logger != nil {
		return logger
	}
	return globalLogger
}
