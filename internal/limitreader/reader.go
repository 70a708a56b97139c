// Package limitreader provides a size limited io.Reader that reports reads
// beyond the limit as errors instead of io.EOF.
package limitreader

import (
	"bufio"
	"errors"
	"io"
)

// ErrReadLimitExceeded is returned by Read when the underlying reader still
// has data after limit bytes were read.
var ErrReadLimitExceeded = errors.New("limitreader: read limit exceeded")

// New returns a reader reading at most limit bytes from r.
//
// Unlike io.LimitReader, a read after the limit is reached fails with
// ErrReadLimitExceeded unless r is also exhausted.
func New(r io.Reader, limit int64) io.Reader {
	return &reader{
		r:         bufio.NewReaderSize(r, 16),
		remaining: limit,
	}
}

type reader struct {
	r         *bufio.Reader
	remaining int64
}

func (lr *reader) Read(p []byte) (int, error) {
	if lr.remaining <= 0 {
		if _, err := lr.r.Peek(1); err != nil {
			return 0, err
		}
		return 0, ErrReadLimitExceeded
	}
	if int64(len(p)) > lr.remaining {
		p = p[:lr.remaining]
	}
	n, err := lr.r.Read(p)
	lr.remaining -= int64(n)
	return n, err
}
