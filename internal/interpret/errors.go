package interpret

import "fmt"

// errInvalidInput reports a type mismatch between what an interpreter
// expects and what it was handed — a programming error in the caller,
// not a data-quality problem worth a typed sentinel.
func errInvalidInput(interpreter, want string, got any) error {
	return fmt.Errorf("interpret: %s expects %s input, got %T", interpreter, want, got)
}
