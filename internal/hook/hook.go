// Package hook defines the static per-ecosystem verification commands and
// resolves the concrete list to run for a set of detected ecosystems.
package hook

import (
	"strings"

	"github.com/deixis/verdict/internal/ecosystem"
)

// Category tags what kind of verification a hook performs.
type Category string

const (
	Build Category = "build"
	Lint  Category = "lint"
	Test  Category = "test"
	Audit Category = "audit"
	Deps  Category = "deps"
	Doc   Category = "doc"
)

// Definition is one external verification command belonging to exactly one
// ecosystem. Definitions are immutable static data; the registry is
// read-only for the lifetime of the process.
type Definition struct {
	Name      string              // display name, e.g. "cargo check"
	Ecosystem ecosystem.Ecosystem // owning ecosystem
	Argv      []string            // program followed by its fixed arguments
	Category  Category
	LogFile   string // basename for the persisted output log
	Success   string // one-line message shown when the hook passes
	Failure   string // one-line message shown when the hook fails
}

// Command renders the argv as a single display string.
func (d Definition) Command() string {
	return strings.Join(d.Argv, " ")
}

// Resolve flattens the registry for the given ecosystems: ecosystem order
// first, then per-ecosystem declaration order. Ecosystems without a
// registry entry contribute nothing. No deduplication is applied.
func Resolve(ecosystems []ecosystem.Ecosystem) []Definition {
	var out []Definition
	for _, eco := range ecosystems {
		out = append(out, registry[eco]...)
	}
	return out
}

// For returns the registered hook list for a single ecosystem.
func For(eco ecosystem.Ecosystem) []Definition {
	return registry[eco]
}
