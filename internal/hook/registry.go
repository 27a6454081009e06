package hook

import (
	"runtime"

	"github.com/deixis/verdict/internal/ecosystem"
)

// registry maps each ecosystem to its hooks in declaration order. The
// table is assembled once at init and never mutated afterwards.
var registry = map[ecosystem.Ecosystem][]Definition{
	ecosystem.Rust: {
		{
			Name:      "cargo verify-project",
			Ecosystem: ecosystem.Rust,
			Argv:      []string{"cargo", "verify-project"},
			Category:  Build,
			LogFile:   "project.log",
			Success:   "Project is valid",
			Failure:   "Project not valid",
		},
		{
			Name:      "cargo check",
			Ecosystem: ecosystem.Rust,
			Argv:      []string{"cargo", "check"},
			Category:  Build,
			LogFile:   "check.log",
			Success:   "Can build the project",
			Failure:   "cargo check detected failures",
		},
		{
			Name:      "cargo audit",
			Ecosystem: ecosystem.Rust,
			Argv:      []string{"cargo", "audit"},
			Category:  Audit,
			LogFile:   "audit.log",
			Success:   "No vulnerabilities found",
			Failure:   "Vulnerabilities found",
		},
		{
			Name:      "cargo fmt",
			Ecosystem: ecosystem.Rust,
			Argv:      []string{"cargo", "fmt", "--check"},
			Category:  Lint,
			LogFile:   "fmt.log",
			Success:   "Code format standard respected",
			Failure:   "Code format standard not respected",
		},
		{
			Name:      "cargo clippy",
			Ecosystem: ecosystem.Rust,
			Argv: []string{
				"cargo", "clippy", "--",
				"-D", "clippy::all",
				"-W", "warnings",
				"-D", "clippy::pedantic",
				"-D", "clippy::nursery",
				"-A", "clippy::multiple_crate_versions",
			},
			Category: Lint,
			LogFile:  "clippy.log",
			Success:  "No warnings found",
			Failure:  "Warnings found",
		},
		{
			Name:      "cargo test",
			Ecosystem: ecosystem.Rust,
			Argv:      []string{"cargo", "test", "--no-fail-fast"},
			Category:  Test,
			LogFile:   "test.log",
			Success:   "Tests passed",
			Failure:   "Tests failed",
		},
		{
			Name:      "cargo doc",
			Ecosystem: ecosystem.Rust,
			Argv:      []string{"cargo", "doc", "--no-deps", "--document-private-items"},
			Category:  Doc,
			LogFile:   "doc.log",
			Success:   "Documentation generated",
			Failure:   "Failed to generate documentation",
		},
		{
			Name:      "cargo outdated",
			Ecosystem: ecosystem.Rust,
			Argv:      []string{"cargo", "outdated"},
			Category:  Deps,
			LogFile:   "outdated.log",
			Success:   "No outdated packages found",
			Failure:   "Outdated packages found",
		},
	},

	// TypeScript projects carry a package.json alongside tsconfig.json, so
	// the npm hooks are contributed by the node entry; only the
	// TypeScript-specific checks live here.
	ecosystem.TypeScript: {
		{
			Name:      "tsc",
			Ecosystem: ecosystem.TypeScript,
			Argv:      []string{"npx", "tsc", "--noEmit"},
			Category:  Lint,
			LogFile:   "types.log",
			Success:   "Types are valid",
			Failure:   "Type errors found",
		},
		{
			Name:      "prettier",
			Ecosystem: ecosystem.TypeScript,
			Argv:      []string{"npx", "prettier", "--check", "."},
			Category:  Lint,
			LogFile:   "fmt.log",
			Success:   "Code is formatted correctly",
			Failure:   "Code formatting issues found",
		},
	},

	ecosystem.Haskell: {
		{
			Name:      "cabal outdated",
			Ecosystem: ecosystem.Haskell,
			Argv:      []string{"cabal", "outdated"},
			Category:  Deps,
			LogFile:   "outdated.log",
			Success:   "No outdated packages found",
			Failure:   "Outdated packages found",
		},
		{
			Name:      "cabal audit",
			Ecosystem: ecosystem.Haskell,
			Argv:      []string{"cabal", "audit"},
			Category:  Audit,
			LogFile:   "audit.log",
			Success:   "No vulnerabilities found",
			Failure:   "Vulnerabilities found",
		},
		{
			Name:      "cabal test",
			Ecosystem: ecosystem.Haskell,
			Argv:      []string{"cabal", "test"},
			Category:  Test,
			LogFile:   "test.log",
			Success:   "Tests passed",
			Failure:   "Tests failed",
		},
	},

	ecosystem.D: {
		{
			Name:      "dub build",
			Ecosystem: ecosystem.D,
			Argv:      []string{"dub", "build"},
			Category:  Build,
			LogFile:   "build.log",
			Success:   "Build successful",
			Failure:   "Build failed",
		},
		{
			Name:      "dub test",
			Ecosystem: ecosystem.D,
			Argv:      []string{"dub", "test"},
			Category:  Test,
			LogFile:   "test.log",
			Success:   "Tests passed",
			Failure:   "Tests failed",
		},
	},

	ecosystem.Node: {
		{
			Name:      "npm outdated",
			Ecosystem: ecosystem.Node,
			Argv:      []string{"npm", "outdated"},
			Category:  Deps,
			LogFile:   "outdated.log",
			Success:   "No outdated packages found",
			Failure:   "Outdated packages found",
		},
		{
			Name:      "npm test",
			Ecosystem: ecosystem.Node,
			Argv:      []string{"npm", "run", "test"},
			Category:  Test,
			LogFile:   "test.log",
			Success:   "Tests passed",
			Failure:   "Tests failed",
		},
		{
			Name:      "npm audit",
			Ecosystem: ecosystem.Node,
			Argv:      []string{"npm", "audit"},
			Category:  Audit,
			LogFile:   "audit.log",
			Success:   "No vulnerabilities found",
			Failure:   "Vulnerabilities found",
		},
		{
			Name:      "npm lint",
			Ecosystem: ecosystem.Node,
			Argv:      []string{"npm", "run", "lint"},
			Category:  Lint,
			LogFile:   "lint.log",
			Success:   "Linting passed",
			Failure:   "Lint errors found",
		},
	},

	ecosystem.CSharp: {
		{
			Name:      "dotnet format",
			Ecosystem: ecosystem.CSharp,
			Argv:      []string{"dotnet", "format", "--verify-no-changes"},
			Category:  Lint,
			LogFile:   "format.log",
			Success:   "Code formatting is correct",
			Failure:   "Code formatting issues found",
		},
		{
			Name:      "dotnet test",
			Ecosystem: ecosystem.CSharp,
			Argv:      []string{"dotnet", "test"},
			Category:  Test,
			LogFile:   "test.log",
			Success:   "All tests passed",
			Failure:   "Some tests failed",
		},
		{
			Name:      "dotnet build",
			Ecosystem: ecosystem.CSharp,
			Argv:      []string{"dotnet", "build"},
			Category:  Build,
			LogFile:   "build.log",
			Success:   "Build successful",
			Failure:   "Build failed",
		},
		{
			Name:      "dotnet restore",
			Ecosystem: ecosystem.CSharp,
			Argv:      []string{"dotnet", "restore"},
			Category:  Deps,
			LogFile:   "deps.log",
			Success:   "Dependencies are up to date",
			Failure:   "Dependency updates available",
		},
		{
			Name:      "dotnet audit",
			Ecosystem: ecosystem.CSharp,
			Argv:      []string{"dotnet", "audit"},
			Category:  Audit,
			LogFile:   "audit.log",
			Success:   "No vulnerabilities found",
			Failure:   "Vulnerabilities found",
		},
	},

	ecosystem.Maven: {
		{
			Name:      "mvn dependency:tree",
			Ecosystem: ecosystem.Maven,
			Argv:      []string{"mvn", "dependency:tree"},
			Category:  Deps,
			LogFile:   "outdated.log",
			Success:   "No outdated dependencies found",
			Failure:   "Outdated dependencies found",
		},
		{
			Name:      "mvn dependency-check",
			Ecosystem: ecosystem.Maven,
			Argv:      []string{"mvn", "dependency-check:check"},
			Category:  Audit,
			LogFile:   "audit.log",
			Success:   "No vulnerabilities found",
			Failure:   "Vulnerabilities found",
		},
		{
			Name:      "mvn test",
			Ecosystem: ecosystem.Maven,
			Argv:      []string{"mvn", "test"},
			Category:  Test,
			LogFile:   "test.log",
			Success:   "Tests passed",
			Failure:   "Tests failed",
		},
		{
			Name:      "mvn versions",
			Ecosystem: ecosystem.Maven,
			Argv:      []string{"mvn", "versions:display-dependency-updates"},
			Category:  Deps,
			LogFile:   "updates.log",
			Success:   "No outdated packages found",
			Failure:   "Outdated packages found",
		},
	},

	ecosystem.Go: {
		{
			Name:      "go test",
			Ecosystem: ecosystem.Go,
			Argv:      []string{"go", "test", "-v", "./..."},
			Category:  Test,
			LogFile:   "test.log",
			Success:   "Tests passed",
			Failure:   "Tests failed",
		},
		{
			Name:      "go list -u",
			Ecosystem: ecosystem.Go,
			Argv:      []string{"go", "list", "-u", "-m", "-json", "all"},
			Category:  Audit,
			LogFile:   "audit.log",
			Success:   "No vulnerabilities found",
			Failure:   "Vulnerabilities found",
		},
	},

	ecosystem.Ruby: {
		{
			Name:      "bundle outdated",
			Ecosystem: ecosystem.Ruby,
			Argv:      []string{"bundle", "outdated"},
			Category:  Deps,
			LogFile:   "outdated.log",
			Success:   "No outdated gems found",
			Failure:   "Outdated gems found",
		},
		{
			Name:      "bundle audit",
			Ecosystem: ecosystem.Ruby,
			Argv:      []string{"bundle", "audit"},
			Category:  Audit,
			LogFile:   "audit.log",
			Success:   "No vulnerabilities found",
			Failure:   "Vulnerabilities found",
		},
		{
			Name:      "rspec",
			Ecosystem: ecosystem.Ruby,
			Argv:      []string{"bundle", "exec", "rspec"},
			Category:  Test,
			LogFile:   "test.log",
			Success:   "Tests passed",
			Failure:   "Tests failed",
		},
	},

	ecosystem.Dart: {
		{
			Name:      "dart format",
			Ecosystem: ecosystem.Dart,
			Argv:      []string{"dart", "format", "--set-exit-if-changed", "."},
			Category:  Lint,
			LogFile:   "format.log",
			Success:   "Code formatting is correct",
			Failure:   "Code formatting issues found",
		},
		{
			Name:      "dart test",
			Ecosystem: ecosystem.Dart,
			Argv:      []string{"dart", "test"},
			Category:  Test,
			LogFile:   "test.log",
			Success:   "All tests passed",
			Failure:   "Some tests failed",
		},
		{
			Name:      "dart pub audit",
			Ecosystem: ecosystem.Dart,
			Argv:      []string{"dart", "pub", "audit"},
			Category:  Audit,
			LogFile:   "audit.log",
			Success:   "No vulnerabilities found",
			Failure:   "Vulnerabilities found",
		},
		{
			Name:      "dart compile",
			Ecosystem: ecosystem.Dart,
			Argv:      []string{"dart", "compile", "exe", "bin/main.dart"},
			Category:  Build,
			LogFile:   "build.log",
			Success:   "Build successful",
			Failure:   "Build failed",
		},
	},

	ecosystem.Gradle: {
		{
			Name:      "gradle build",
			Ecosystem: ecosystem.Gradle,
			Argv:      []string{gradleWrapper, "build"},
			Category:  Build,
			LogFile:   "build.log",
			Success:   "Build successful",
			Failure:   "Build failed",
		},
		{
			Name:      "gradle test",
			Ecosystem: ecosystem.Gradle,
			Argv:      []string{gradleWrapper, "test"},
			Category:  Test,
			LogFile:   "test.log",
			Success:   "Tests passed",
			Failure:   "Tests failed",
		},
	},

	ecosystem.Kotlin: {
		{
			Name:      "gradle test",
			Ecosystem: ecosystem.Kotlin,
			Argv:      []string{"gradle", "test"},
			Category:  Test,
			LogFile:   "test.log",
			Success:   "All tests passed",
			Failure:   "Some tests failed",
		},
	},

	ecosystem.Swift: {
		{
			Name:      "swiftformat",
			Ecosystem: ecosystem.Swift,
			Argv:      []string{"swiftformat", "--lint", "."},
			Category:  Lint,
			LogFile:   "format.log",
			Success:   "Code formatting is correct",
			Failure:   "Code formatting issues found",
		},
		{
			Name:      "swift test",
			Ecosystem: ecosystem.Swift,
			Argv:      []string{"swift", "test"},
			Category:  Test,
			LogFile:   "test.log",
			Success:   "All tests passed",
			Failure:   "Some tests failed",
		},
		{
			Name:      "swift package audit",
			Ecosystem: ecosystem.Swift,
			Argv:      []string{"swift", "package", "audit"},
			Category:  Audit,
			LogFile:   "audit.log",
			Success:   "No vulnerabilities found",
			Failure:   "Vulnerabilities found",
		},
		{
			Name:      "swift build",
			Ecosystem: ecosystem.Swift,
			Argv:      []string{"swift", "build"},
			Category:  Build,
			LogFile:   "build.log",
			Success:   "Build successful",
			Failure:   "Build failed",
		},
		{
			Name:      "swift test --parallel",
			Ecosystem: ecosystem.Swift,
			Argv:      []string{"swift", "test", "--parallel"},
			Category:  Test,
			LogFile:   "integration.log",
			Success:   "All integration tests passed",
			Failure:   "Some integration tests failed",
		},
	},

	ecosystem.PHP: {
		{
			Name:      "composer check-platform-reqs",
			Ecosystem: ecosystem.PHP,
			Argv:      []string{"composer", "check-platform-reqs"},
			Category:  Deps,
			LogFile:   "reqs.log",
			Success:   "All requirements are met",
			Failure:   "Missing requirements found",
		},
		{
			Name:      "composer audit",
			Ecosystem: ecosystem.PHP,
			Argv:      []string{"composer", "audit"},
			Category:  Audit,
			LogFile:   "audit.log",
			Success:   "No vulnerabilities found",
			Failure:   "Vulnerabilities found",
		},
		{
			Name:      "composer outdated",
			Ecosystem: ecosystem.PHP,
			Argv:      []string{"composer", "outdated"},
			Category:  Deps,
			LogFile:   "outdated.log",
			Success:   "No outdated packages found",
			Failure:   "Outdated packages found",
		},
		{
			Name:      "composer test",
			Ecosystem: ecosystem.PHP,
			Argv:      []string{"composer", "run", "test"},
			Category:  Test,
			LogFile:   "test.log",
			Success:   "Tests passed",
			Failure:   "Tests failed",
		},
	},

	ecosystem.CMake: {
		{
			Name:      "cmake",
			Ecosystem: ecosystem.CMake,
			Argv:      []string{"cmake", "."},
			Category:  Build,
			LogFile:   "cmake.log",
			Success:   "Makefile generation succeeded",
			Failure:   "Makefile generation failed",
		},
		{
			Name:      "make",
			Ecosystem: ecosystem.CMake,
			Argv:      []string{"make"},
			Category:  Build,
			LogFile:   "make.log",
			Success:   "Build succeeded",
			Failure:   "Build failed",
		},
		{
			Name:      "make test",
			Ecosystem: ecosystem.CMake,
			Argv:      []string{"make", "test"},
			Category:  Test,
			LogFile:   "test.log",
			Success:   "Tests passed",
			Failure:   "Tests failed",
		},
	},

	ecosystem.Elixir: {
		{
			Name:      "mix format",
			Ecosystem: ecosystem.Elixir,
			Argv:      []string{"mix", "format", "--check-formatted"},
			Category:  Lint,
			LogFile:   "format.log",
			Success:   "Code formatting is correct",
			Failure:   "Code formatting issues found",
		},
		{
			Name:      "mix test",
			Ecosystem: ecosystem.Elixir,
			Argv:      []string{"mix", "test"},
			Category:  Test,
			LogFile:   "test.log",
			Success:   "All tests passed",
			Failure:   "Some tests failed",
		},
		{
			Name:      "mix docs",
			Ecosystem: ecosystem.Elixir,
			Argv:      []string{"mix", "docs"},
			Category:  Doc,
			LogFile:   "docs.log",
			Success:   "Documentation generated successfully",
			Failure:   "Documentation generation failed",
		},
		{
			Name:      "mix audit",
			Ecosystem: ecosystem.Elixir,
			Argv:      []string{"mix", "audit"},
			Category:  Audit,
			LogFile:   "audit.log",
			Success:   "No vulnerabilities found",
			Failure:   "Vulnerabilities found",
		},
		{
			Name:      "mix compile",
			Ecosystem: ecosystem.Elixir,
			Argv:      []string{"mix", "compile"},
			Category:  Build,
			LogFile:   "build.log",
			Success:   "Build successful",
			Failure:   "Build failed",
		},
	},

	ecosystem.Python: {
		{
			Name:      "pip outdated",
			Ecosystem: ecosystem.Python,
			Argv:      []string{"pip", "list", "--outdated"},
			Category:  Deps,
			LogFile:   "outdated.log",
			Success:   "No outdated packages found",
			Failure:   "Outdated packages found",
		},
		{
			Name:      "pip audit",
			Ecosystem: ecosystem.Python,
			Argv:      []string{"pip", "audit"},
			Category:  Audit,
			LogFile:   "audit.log",
			Success:   "No vulnerabilities found",
			Failure:   "Vulnerabilities found",
		},
	},
}

// gradleWrapper is the platform-specific Gradle wrapper script name.
var gradleWrapper = func() string {
	if runtime.GOOS == "windows" {
		return "gradlew.bat"
	}
	return "./gradlew"
}()
