package errorsbp

import (
	"errors"
	"strconv"
	"strings"
)

// Batch collects validation and cleanup errors so they can be reported
// together.
//
// The zero value is an empty Batch. A Batch never contains another Batch or a
// nil error.
//
// errors.Is and errors.As look into every collected error through Unwrap.
type Batch struct {
	errors []error
}

var (
	_ error = Batch{}
	_ error = (*Batch)(nil)
)

// Error joins the collected messages with "; ".
func (be Batch) Error() string {
	var sb strings.Builder
	sb.WriteString("errorsbp.Batch: total ")
	sb.WriteString(strconv.Itoa(len(be.errors)))
	sb.WriteString(" error(s) in this batch")
	for i, err := range be.errors {
		if i == 0 {
			sb.WriteString(": ")
		} else {
			sb.WriteString("; ")
		}
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Unwrap returns the collected errors.
func (be Batch) Unwrap() []error {
	return be.errors
}

// Len returns the number of collected errors.
func (be Batch) Len() int {
	return len(be.errors)
}

// Add collects the non-nil errs, flattening any Batch among them.
func (be *Batch) Add(errs ...error) {
	be.AddPrefix("", errs...)
}

// AddPrefix is Add with every collected error passed through PrefixError,
// so its message reads "prefix: message".
func (be *Batch) AddPrefix(prefix string, errs ...error) {
	for _, err := range errs {
		nested, ok := asBatch(err)
		if !ok {
			if err != nil {
				be.errors = append(be.errors, PrefixError(prefix, err))
			}
			continue
		}
		for _, e := range nested.errors {
			be.errors = append(be.errors, PrefixError(prefix, e))
		}
	}
}

// Compile returns nil for an empty Batch, the only error for a Batch of one,
// and the Batch itself otherwise.
func (be Batch) Compile() error {
	switch len(be.errors) {
	case 0:
		return nil
	case 1:
		return be.errors[0]
	}
	return be
}

// GetErrors returns a copy of the collected errors.
func (be Batch) GetErrors() []error {
	return append([]error(nil), be.errors...)
}

// BatchSize returns Len of err when err is a Batch or *Batch,
// otherwise 1 for a non-nil err and 0 for nil.
func BatchSize(err error) int {
	if be, ok := asBatch(err); ok {
		return be.Len()
	}
	if err == nil {
		return 0
	}
	return 1
}

func asBatch(err error) (Batch, bool) {
	switch be := err.(type) {
	case Batch:
		return be, true
	case *Batch:
		if be != nil {
			return *be, true
		}
	}
	var be Batch
	if errors.As(err, &be) {
		return be, true
	}
	return Batch{}, false
}
