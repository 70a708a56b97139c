package kvsecret

import (
	"flag"
	"fmt"
	"sort"
	"strings"
)

// oneof is a flag restricted to the keys of choices.
//
// An empty value means the flag was not set.
type oneof[T any] struct {
	choices map[string]T
	value   string
}

var _ flag.Getter = (*oneof[bool])(nil)

func (o *oneof[T]) String() string {
	return o.value
}

func (o *oneof[T]) Get() interface{} {
	return o
}

func (o *oneof[T]) Set(v string) error {
	if _, ok := o.choices[v]; !ok {
		return fmt.Errorf("%q is not one of the choices of %s", v, o.choicesString())
	}
	o.value = v
	return nil
}

func (o *oneof[T]) choicesString() string {
	choices := make([]string, 0, len(o.choices))
	for c := range o.choices {
		choices = append(choices, fmt.Sprintf("%q", c))
	}
	sort.Strings(choices)
	return "(" + strings.Join(choices, ", ") + ")"
}

// get returns the chosen value, and false when the flag was not set.
func (o *oneof[T]) get() (T, bool) {
	v, ok := o.choices[o.value]
	return v, ok
}
