// Package batchcloser collects io.Closers that are closed together,
// such as the log files and sentry flush of a logging configuration.
package batchcloser
