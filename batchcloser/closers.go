package batchcloser

import (
	"fmt"
	"io"

	"github.com/reddit/automate.go/errorsbp"
)

// CloseError wraps the error returned by one of the closers of a BatchCloser.
type CloseError struct {
	Cause  error
	Closer io.Closer
}

func (err CloseError) Error() string {
	if s, ok := err.Closer.(fmt.Stringer); ok {
		return fmt.Sprintf("batchcloser: error closing %s: %v", s, err.Cause)
	}
	return fmt.Sprintf("batchcloser: error closing %T: %v", err.Closer, err.Cause)
}

// Unwrap returns Cause.
func (err CloseError) Unwrap() error {
	return err.Cause
}

type namedCloser struct {
	name  string
	close func() error
}

func (c namedCloser) Close() error {
	return c.close()
}

func (c namedCloser) String() string {
	return c.name
}

// Wrap wraps a close function as an io.Closer named name in CloseError.
func Wrap(name string, close func() error) io.Closer {
	return namedCloser{name: name, close: close}
}

// BatchCloser collects io.Closers to close together.
//
// The zero value is ready to use.
// It's not safe for concurrent use.
type BatchCloser struct {
	closers []io.Closer
}

// New returns a BatchCloser initialized with closers.
func New(closers ...io.Closer) *BatchCloser {
	bc := new(BatchCloser)
	bc.Add(closers...)
	return bc
}

// Add adds closers, nil closers are skipped.
func (bc *BatchCloser) Add(closers ...io.Closer) {
	for _, c := range closers {
		if c != nil {
			bc.closers = append(bc.closers, c)
		}
	}
}

// Len returns the number of closers not closed yet.
func (bc *BatchCloser) Len() int {
	return len(bc.closers)
}

// Close closes all closers in the reverse order they were added and forgets
// them, so a second Close is a no-op.
//
// Every failure is returned as a CloseError inside an errorsbp.Batch.
func (bc *BatchCloser) Close() error {
	var batch errorsbp.Batch
	for i := len(bc.closers) - 1; i >= 0; i-- {
		if err := bc.closers[i].Close(); err != nil {
			batch.Add(CloseError{
				Cause:  err,
				Closer: bc.closers[i],
			})
		}
	}
	bc.closers = nil
	return batch.Compile()
}

var (
	_ error     = CloseError{}
	_ io.Closer = namedCloser{}
	_ io.Closer = (*BatchCloser)(nil)
)
