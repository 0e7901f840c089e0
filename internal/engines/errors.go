// internal/engines/errors.go

package engines

import "fmt"

// InvariantError reports a violated domain invariant. The internal/api
// error mapping has no case of its own for it, so it surfaces as
// ERR_INTERNAL with a 500.
type InvariantError struct {
	Invariant string
	Detail    string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant %s violated: %s", e.Invariant, e.Detail)
}

func newInvariantErr(invariant, detail string) error {
	return &InvariantError{Invariant: invariant, Detail: detail}
}
