package grader

import (
	"fmt"
	"strings"
	"unicode"
)

// Invocation is one parsed grading request: which exercise to check and
// the learner's source text.
type Invocation struct {
	Kata   string
	Source string
}

// InputError reports a malformed invocation blob.
type InputError struct {
	Reason string
}

// Error implements the error interface.
func (e *InputError) Error() string {
	return fmt.Sprintf("grader: %s", e.Reason)
}

// ParseInvocation splits a raw blob on the first run of whitespace into an
// exercise name and the submitted source. Both parts are required.
func ParseInvocation(blob string) (Invocation, error) {
	trimmed := strings.TrimLeftFunc(blob, unicode.IsSpace)
	if trimmed == "" {
		return Invocation{}, &InputError{Reason: "input is empty; expected \"<exercise-name> <source>\""}
	}
	cut := strings.IndexFunc(trimmed, unicode.IsSpace)
	if cut < 0 {
		return Invocation{}, &InputError{Reason: fmt.Sprintf("no source follows exercise name %q", trimmed)}
	}
	name := trimmed[:cut]
	source := strings.TrimLeftFunc(trimmed[cut:], unicode.IsSpace)
	if strings.TrimSpace(source) == "" {
		return Invocation{}, &InputError{Reason: fmt.Sprintf("no source follows exercise name %q", name)}
	}
	return Invocation{Kata: name, Source: source}, nil
}
