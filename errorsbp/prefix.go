package errorsbp

// PrefixError returns err with prefix prepended to its message as
// "prefix: message".
//
// A nil err returns nil, an empty prefix returns err unchanged.
// Otherwise the result is a *PrefixedError, which unwraps to err.
//
// Unlike fmt.Errorf(prefix+": %w", err), format verbs in prefix are kept
// verbatim.
func PrefixError(prefix string, err error) error {
	switch {
	case err == nil:
		return nil
	case prefix == "":
		return err
	}
	return &PrefixedError{
		prefix: prefix,
		err:    err,
	}
}

// PrefixedError is the error returned by PrefixError.
type PrefixedError struct {
	prefix string
	err    error
}

func (e *PrefixedError) Error() string {
	return e.prefix + ": " + e.err.Error()
}

// Unwrap returns the prefixed error.
func (e *PrefixedError) Unwrap() error {
	return e.err
}

// Prefix returns the prefix of the error.
func (e *PrefixedError) Prefix() string {
	return e.prefix
}
