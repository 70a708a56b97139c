// Package logconf configures the global logger from a yaml logging document.
//
// A document declares formatters, handlers (console, rotating file and sentry
// sinks) and loggers routed to them, see Document for the schema.
// The document is parsed at most once per process (per Cache) and reused by
// every Configurator created afterwards.
//
// Typical usage:
//
//	c, err := logconf.New(logconf.Options{
//		LogFileDir: "/var/log/myjob",
//	})
//	if err != nil {
//		// logger.yml was not found next to the executable nor in the
//		// current working directory.
//	}
//	defer c.Close()
//	logger, err := c.GetLogger("standard")
//
// A document that fails to parse does not fail New:
// the failure is logged and a console logger at Options.Level is used
// instead.
package logconf
