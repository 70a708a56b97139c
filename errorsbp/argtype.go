package errorsbp

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgumentType is the sentinel matched by InvalidArgumentTypeError
// with errors.Is.
var ErrInvalidArgumentType = errors.New("errorsbp: invalid argument type")

// ArgumentType pairs an argument name with the label of its expected type.
type ArgumentType struct {
	Name string
	Type string
}

func (at ArgumentType) String() string {
	return at.Name + " is of type " + at.Type
}

// InvalidArgumentTypeError reports that one or more arguments did not satisfy
// their expected types.
//
// Args keeps the order the caller listed them in,
// which is also the order they appear in the error message.
type InvalidArgumentTypeError struct {
	Args []ArgumentType
}

var _ error = (*InvalidArgumentTypeError)(nil)

// NewInvalidArgumentTypeError creates an InvalidArgumentTypeError from
// name/type pairs:
//
//	errorsbp.NewInvalidArgumentTypeError("a", "int", "b", "str")
//
// A dangling name without a type is reported with type "unknown".
func NewInvalidArgumentTypeError(nameTypePairs ...string) *InvalidArgumentTypeError {
	e := &InvalidArgumentTypeError{
		Args: make([]ArgumentType, 0, (len(nameTypePairs)+1)/2),
	}
	for i := 0; i < len(nameTypePairs); i += 2 {
		at := ArgumentType{
			Name: nameTypePairs[i],
			Type: "unknown",
		}
		if i+1 < len(nameTypePairs) {
			at.Type = nameTypePairs[i+1]
		}
		e.Args = append(e.Args, at)
	}
	return e
}

func (e *InvalidArgumentTypeError) Error() string {
	descs := make([]string, len(e.Args))
	for i, at := range e.Args {
		descs[i] = at.String()
	}
	return fmt.Sprintf(
		"One or more arguments has invalid type. Please refer below required types for all arguments: [%s]",
		strings.Join(descs, ", "),
	)
}

// Is implements helper interface for errors.Is.
func (e *InvalidArgumentTypeError) Is(target error) bool {
	return target == ErrInvalidArgumentType
}

// Types returns the argument name to expected type mapping.
//
// If the same name appears more than once, the last type wins.
func (e *InvalidArgumentTypeError) Types() map[string]string {
	m := make(map[string]string, len(e.Args))
	for _, at := range e.Args {
		m[at.Name] = at.Type
	}
	return m
}
