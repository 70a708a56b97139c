// Package limitopen opens configuration files with size checks.
package limitopen

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/reddit/automate.go/internal/limitreader"
	"github.com/reddit/automate.go/log"
)

const (
	promNamespace = "limitopen"

	pathLabel = "path"
)

var (
	sizeGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: promNamespace,
		Name:      "file_size_bytes",
		Help:      "The size of the last file opened by limitopen.OpenWithLimit",
	}, []string{pathLabel})

	softLimitCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: promNamespace,
		Name:      "softlimit_violation_total",
		Help:      "The total number of files opened above the soft limit",
	}, []string{pathLabel})
)

type readCloser struct {
	io.Reader
	io.Closer
}

// Open opens path for read and returns its size as reported by the os.
//
// Reads never go beyond that size, even if the file grows after Open.
// Only one of r and err is non-nil.
func Open(path string) (r io.ReadCloser, size int64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("limitopen: failed to open %q: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("limitopen: failed to stat %q: %w", path, err)
	}
	size = info.Size()
	return readCloser{Reader: io.LimitReader(f, size), Closer: f}, size, nil
}

// OpenWithLimit opens path for read with size limits.
//
// The size is always reported as limitopen_file_size_bytes,
// labeled by the base name of path.
// Above softLimit an error is logged and limitopen_softlimit_violation_total
// is increased.
// Above hardLimit the file is closed and an error returned.
// A file that grows past hardLimit while being read fails the read with
// limitreader.ErrReadLimitExceeded.
// Non-positive limits are not checked.
func OpenWithLimit(path string, softLimit, hardLimit int64) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("limitopen: failed to open %q: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("limitopen: failed to stat %q: %w", path, err)
	}
	size := info.Size()

	labels := prometheus.Labels{pathLabel: filepath.Base(path)}
	sizeGauge.With(labels).Set(float64(size))

	if softLimit > 0 && size > softLimit {
		log.Errorw(
			"limitopen: file size above soft limit",
			"path", path,
			"size", size,
			"limit", softLimit,
		)
		softLimitCounter.With(labels).Inc()
	}
	if hardLimit <= 0 {
		return f, nil
	}
	if size > hardLimit {
		f.Close()
		return nil, fmt.Errorf("limitopen: size %d of %q is above hard limit %d", size, path, hardLimit)
	}
	return readCloser{Reader: limitreader.New(f, hardLimit), Closer: f}, nil
}
