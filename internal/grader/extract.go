package grader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/louisabraham/QuantumKatas/internal/compile"
	"github.com/louisabraham/QuantumKatas/internal/diag"
	"github.com/louisabraham/QuantumKatas/internal/kata"
)

// NoCandidateError reports a submission that compiled but contained no
// invocable operation.
type NoCandidateError struct{}

// Error implements the error interface.
func (e *NoCandidateError) Error() string {
	return "grader: submission contains no operation to grade"
}

// ExtractCandidate applies the single-candidate policy to compiler output:
// warnings are forwarded, non-operations were already filtered by the
// compiler, zero candidates fail, and when several remain the
// lexicographically smallest name wins.
func ExtractCandidate(res compile.Result, ch *diag.Channel) (kata.Definition, error) {
	for _, warning := range res.Warnings {
		ch.Infof("warning: %s", warning)
	}
	candidates := make([]kata.Definition, 0, len(res.Candidates))
	for _, cand := range res.Candidates {
		if cand.Kind == kata.KindOperation {
			candidates = append(candidates, cand)
		}
	}
	if len(candidates) == 0 {
		return kata.Definition{}, &NoCandidateError{}
	}
	if len(candidates) > 1 {
		sort.Slice(candidates, func(i, j int) bool {
			return candidates[i].Name < candidates[j].Name
		})
		names := make([]string, len(candidates))
		for i, cand := range candidates {
			names[i] = cand.Name
		}
		ch.Infof("submission defines %d operations (%s); grading %s",
			len(candidates), strings.Join(names, ", "), candidates[0].Name)
	}
	chosen := candidates[0]
	if err := chosen.Validate(); err != nil {
		return kata.Definition{}, fmt.Errorf("grader: invalid candidate: %w", err)
	}
	return chosen, nil
}
