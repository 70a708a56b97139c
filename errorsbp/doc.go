// Package errorsbp provides error types shared by the packages in this module.
//
// Batch can be used to compile multiple errors into a single one, for example
// when validating a configuration and reporting every problem at once:
//
//	var batch errorsbp.Batch
//	for name, h := range handlers {
//		batch.AddPrefix("handlers."+name, h.validate())
//	}
//	// If all handlers are valid, Compile() returns nil.
//	// If only one handler failed, Compile() returns that error directly
//	// instead of wrapping it inside Batch.
//	return batch.Compile()
//
// InvalidArgumentTypeError is returned (or panicked with) by code that wants to
// tell its caller that one or more arguments are not of the expected types.
//
// This package is not thread-safe.
// The same batch should not be operated on different goroutines concurrently.
package errorsbp
