package errorsbp_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reddit/automate.go/errorsbp"
)

func TestInvalidArgumentTypeError(t *testing.T) {
	raise := func() error {
		return errorsbp.NewInvalidArgumentTypeError("a", "int", "b", "str")
	}

	err := raise()
	var target *errorsbp.InvalidArgumentTypeError
	if !errors.As(err, &target) {
		t.Fatalf("errors.As failed on %v", err)
	}
	msg := target.Error()
	for _, want := range []string{"a is of type int", "b is of type str"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q does not contain %q", msg, want)
		}
	}
	if strings.Index(msg, "a is of type") > strings.Index(msg, "b is of type") {
		t.Errorf("message %q does not keep argument order", msg)
	}
	if diff := cmp.Diff(target.Types(), map[string]string{"a": "int", "b": "str"}); diff != "" {
		t.Errorf("Types mismatch (-got +want):\n%s", diff)
	}
	if !errors.Is(fmt.Errorf("wrapped: %w", err), errorsbp.ErrInvalidArgumentType) {
		t.Error("Expected wrapped error to match ErrInvalidArgumentType")
	}
}

func TestNewInvalidArgumentTypeErrorDangling(t *testing.T) {
	err := errorsbp.NewInvalidArgumentTypeError("a", "int", "orphan")
	want := []errorsbp.ArgumentType{
		{Name: "a", Type: "int"},
		{Name: "orphan", Type: "unknown"},
	}
	if diff := cmp.Diff(err.Args, want); diff != "" {
		t.Errorf("Args mismatch (-got +want):\n%s", diff)
	}
}

func ExampleInvalidArgumentTypeError() {
	err := errorsbp.NewInvalidArgumentTypeError("a", "int", "b", "str")
	fmt.Println(err)

	// Output:
	// One or more arguments has invalid type. Please refer below required types for all arguments: [a is of type int, b is of type str]
}
