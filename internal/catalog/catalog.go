// Package catalog is the read-only library of compiled kata definitions.
// The grading pipeline queries it twice per invocation: once for the
// exercise, once for the answer slot.
package catalog

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"

	"github.com/louisabraham/QuantumKatas/internal/kata"
)

const maxSuggestions = 3

// NotFoundError reports a failed lookup plus close catalog names, so the
// caller can tell the learner what they probably meant.
type NotFoundError struct {
	Name        string
	Suggestions []string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("catalog: no definition named %q", e.Name)
	}
	return fmt.Sprintf("catalog: no definition named %q (did you mean %s?)",
		e.Name, strings.Join(e.Suggestions, ", "))
}

// Catalog maps qualified names to definitions. Registration happens at
// startup; lookups afterwards are read-only and safe for concurrent use.
type Catalog struct {
	mu   sync.RWMutex
	root string
	defs map[string]kata.Definition
}

// New returns an empty catalog. Simple names resolve inside the root
// namespace's sub-namespaces.
func New(rootNamespace string) *Catalog {
	return &Catalog{
		root: strings.TrimSpace(rootNamespace),
		defs: map[string]kata.Definition{},
	}
}

// Register installs a definition. Duplicate qualified names are rejected.
func (c *Catalog) Register(def kata.Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}
	name := def.QualifiedName()
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.defs[name]; exists {
		return fmt.Errorf("catalog: %s already registered", name)
	}
	c.defs[name] = def
	return nil
}

// MustRegister panics if registration fails. Intended for the static kata
// library, where a clash is a programming error.
func (c *Catalog) MustRegister(def kata.Definition) {
	if err := c.Register(def); err != nil {
		panic(err)
	}
}

// Resolve looks a definition up by fully-qualified or simple name. A
// simple name matches when exactly one registered definition carries it.
func (c *Catalog) Resolve(name string) (kata.Definition, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return kata.Definition{}, &NotFoundError{Name: name}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if def, ok := c.defs[name]; ok {
		return def, nil
	}
	if !strings.Contains(name, ".") {
		if def, ok := c.defs[c.root+"."+name]; ok {
			return def, nil
		}
		var matches []kata.Definition
		for _, def := range c.defs {
			if def.Name == name {
				matches = append(matches, def)
			}
		}
		if len(matches) == 1 {
			return matches[0], nil
		}
	}
	return kata.Definition{}, &NotFoundError{Name: name, Suggestions: c.suggest(name)}
}

// Names returns every registered qualified name, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.defs))
	for name := range c.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Exercises returns all exercise definitions in name order.
func (c *Catalog) Exercises() []kata.Definition {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []kata.Definition
	for _, def := range c.defs {
		if def.Kind == kata.KindExercise {
			out = append(out, def)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].QualifiedName() < out[j].QualifiedName()
	})
	return out
}

// suggest must be called with the read lock held.
func (c *Catalog) suggest(name string) []string {
	names := make([]string, 0, len(c.defs))
	for n := range c.defs {
		names = append(names, n)
	}
	sort.Strings(names)
	ranked := fuzzy.Find(name, names)
	out := make([]string, 0, maxSuggestions)
	for i, match := range ranked {
		if i == maxSuggestions {
			break
		}
		out = append(out, match.Str)
	}
	return out
}
