package art

import (
	"context"
	"sort"
	"sync"

	"github.com/inkplot/inkplot/pkg/errors"
)

// Algorithm generates a drawing from parameters. Implementations must be
// deterministic per seed and honor context cancellation during long
// simulations.
type Algorithm interface {
	// Name returns the identifier used on the command line and in presets.
	Name() string

	// Describe returns a one-line human-readable description.
	Describe() string

	// Generate produces a drawing for the given parameters.
	Generate(ctx context.Context, p Params) (*Drawing, error)
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Algorithm)
)

// Register adds an algorithm to the global registry.
// It panics if the name is already taken; registration happens in init
// functions where a duplicate is a programming error.
func Register(a Algorithm) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[a.Name()]; dup {
		panic("art: duplicate algorithm " + a.Name())
	}
	registry[a.Name()] = a
}

// Lookup returns the algorithm registered under name.
func Lookup(name string) (Algorithm, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	a, ok := registry[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeAlgorithmNotFound, "no algorithm named %q", name)
	}
	return a, nil
}

// Names returns the sorted names of all registered algorithms.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns all registered algorithms sorted by name.
func All() []Algorithm {
	registryMu.RLock()
	defer registryMu.RUnlock()
	algos := make([]Algorithm, 0, len(registry))
	for _, a := range registry {
		algos = append(algos, a)
	}
	sort.Slice(algos, func(i, j int) bool { return algos[i].Name() < algos[j].Name() })
	return algos
}
