// Package log provides a wrapped zap logger interface for the other packages
// in this module to use, and also a simple Wrapper type for components that
// only need to report a message.
//
// For zap logger related features,
// we provide both a global logger which can be used by top level functions,
// and a way to attach logger with additional info to context object and
// reuse.
// When you need to use the zap logger and you have a context object,
// you should use the logger attached to the context, like:
//
//	log.C(ctx).Errorw("Something went wrong!", "err", err)
//
// But if you don't have a context object,
// instead of creating one to use logger, you should use the global one:
//
//	log.Errorw("Something went wrong!", "err", err)
//
// The global logger can also be replaced wholesale by a logger built from a
// yaml logging document, see package logconf.
package log
