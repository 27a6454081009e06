// Package ecosystem detects which language ecosystems are present in a
// project directory by looking for their characteristic manifest files.
package ecosystem

// Ecosystem identifies a language/tooling environment. The set is closed:
// hooks exist only for the ecosystems enumerated here.
type Ecosystem string

const (
	Rust       Ecosystem = "rust"
	TypeScript Ecosystem = "typescript"
	Haskell    Ecosystem = "haskell"
	D          Ecosystem = "d"
	Node       Ecosystem = "node"
	CSharp     Ecosystem = "csharp"
	Maven      Ecosystem = "maven"
	Go         Ecosystem = "go"
	Ruby       Ecosystem = "ruby"
	Dart       Ecosystem = "dart"
	Gradle     Ecosystem = "gradle"
	Kotlin     Ecosystem = "kotlin"
	Swift      Ecosystem = "swift"
	PHP        Ecosystem = "php"
	CMake      Ecosystem = "cmake"
	Elixir     Ecosystem = "elixir"
	Python     Ecosystem = "python"
)

// marker describes how an ecosystem is recognised. Exactly one of Name or
// Suffix is set: Name matches a literal filename, Suffix matches any file
// ending in it (for manifests like *.csproj whose basename varies).
type marker struct {
	Name   string
	Suffix string
}

// entry pairs an ecosystem with its markers.
type entry struct {
	Eco     Ecosystem
	Markers []marker
}

// table lists every supported ecosystem in resolution order. Detection
// reports matches in this order, so hook resolution is deterministic.
var table = []entry{
	{Rust, []marker{{Name: "Cargo.toml"}}},
	{TypeScript, []marker{{Name: "tsconfig.json"}}},
	{Haskell, []marker{{Suffix: ".cabal"}}},
	{D, []marker{{Name: "dub.json"}}},
	{Node, []marker{{Name: "package.json"}}},
	{CSharp, []marker{{Suffix: ".csproj"}}},
	{Maven, []marker{{Name: "pom.xml"}}},
	{Go, []marker{{Name: "go.mod"}}},
	{Ruby, []marker{{Name: "Gemfile"}}},
	{Dart, []marker{{Name: "pubspec.yaml"}}},
	{Gradle, []marker{{Name: "settings.gradle"}}},
	{Kotlin, []marker{{Name: "settings.gradle.kts"}}},
	{Swift, []marker{{Name: "Package.swift"}}},
	{PHP, []marker{{Name: "composer.json"}}},
	{CMake, []marker{{Name: "CMakeLists.txt"}}},
	{Elixir, []marker{{Name: "mix.exs"}}},
	{Python, []marker{{Name: "requirements.txt"}}},
}

// All returns every supported ecosystem in resolution order.
func All() []Ecosystem {
	out := make([]Ecosystem, len(table))
	for i, e := range table {
		out[i] = e.Eco
	}
	return out
}

// Known reports whether name is a supported ecosystem identifier.
func Known(name string) bool {
	for _, e := range table {
		if string(e.Eco) == name {
			return true
		}
	}
	return false
}

// Markers returns the marker filenames for eco, with suffix markers
// rendered in glob form (e.g. "*.csproj"). Used for display only.
func Markers(eco Ecosystem) []string {
	for _, e := range table {
		if e.Eco != eco {
			continue
		}
		out := make([]string, len(e.Markers))
		for i, m := range e.Markers {
			if m.Suffix != "" {
				out[i] = "*" + m.Suffix
			} else {
				out[i] = m.Name
			}
		}
		return out
	}
	return nil
}
