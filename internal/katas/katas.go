// Package katas aggregates the shipped kata library into one catalog.
package katas

import (
	"github.com/louisabraham/QuantumKatas/internal/catalog"
	"github.com/louisabraham/QuantumKatas/internal/katas/basicgates"
	"github.com/louisabraham/QuantumKatas/internal/katas/multiqubit"
	"github.com/louisabraham/QuantumKatas/internal/katas/superposition"
)

// RootNamespace scopes simple-name resolution for all shipped katas.
const RootNamespace = "Katas"

// RegisterAll installs every shipped kata namespace into the catalog.
func RegisterAll(c *catalog.Catalog) error {
	registrars := []func(*catalog.Catalog) error{
		basicgates.Register,
		multiqubit.Register,
		superposition.Register,
	}
	for _, register := range registrars {
		if err := register(c); err != nil {
			return err
		}
	}
	return nil
}

// NewCatalog builds a catalog preloaded with the shipped kata library.
func NewCatalog() (*catalog.Catalog, error) {
	c := catalog.New(RootNamespace)
	if err := RegisterAll(c); err != nil {
		return nil, err
	}
	return c, nil
}
