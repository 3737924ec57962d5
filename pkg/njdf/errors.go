package njdf

import (
	"fmt"
)

// ValidationError marks malformed caller input. HTTP layers surface it as a
// 4xx response rather than a server fault.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}

	return e.Message
}
