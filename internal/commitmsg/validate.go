// Package commitmsg validates commit messages against structural and
// stylistic rules. Every validator is a pure function of its input:
// nil means acceptance, a *RejectionError carries the reason. Nothing
// here depends on the hook execution engine.
package commitmsg

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/client9/misspell"
)

// RejectionError is a structured validation failure. Rule identifies the
// violated rule; Message is the user-facing reason. Rejections are
// ordinary error values, never panics; the caller decides whether to
// re-prompt.
type RejectionError struct {
	Rule    string
	Message string
}

func (e *RejectionError) Error() string {
	return e.Message
}

func reject(rule, format string, args ...any) error {
	return &RejectionError{Rule: rule, Message: fmt.Sprintf(format, args...)}
}

// ValidTypes is the allowed set of conventional-commit types.
var ValidTypes = []string{
	"feat", "fix", "docs", "style", "refactor", "perf", "test", "chore", "ci", "build",
}

const (
	maxSummaryLength  = 50
	maxBodyLineLength = 72
	minPasswordLength = 8
)

var (
	emailRe  = regexp.MustCompile(`^[a-zA-Z0-9._+-]+@([a-zA-Z0-9-]+\.)+[a-zA-Z]{2,}$`)
	headerRe = regexp.MustCompile(`^([a-z]+)(\([^)]+\))?!?: (.+)$`)
)

// NotEmpty rejects blank input.
func NotEmpty(input string) error {
	if strings.TrimSpace(input) == "" {
		return reject("not-empty", "input cannot be empty")
	}
	return nil
}

// Email rejects input that is not a plausible email address.
func Email(input string) error {
	if !emailRe.MatchString(input) {
		return reject("email", "invalid email format")
	}
	return nil
}

// Password rejects passwords shorter than eight characters.
func Password(input string) error {
	if len(input) < minPasswordLength {
		return reject("password", "password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// CommitType rejects input that is not an allowed commit type.
func CommitType(input string) error {
	trimmed := strings.TrimSpace(input)
	for _, t := range ValidTypes {
		if trimmed == t {
			return nil
		}
	}
	return reject("commit-type", "type %q is invalid; must be one of: %s",
		trimmed, strings.Join(ValidTypes, ", "))
}

// SummaryLength rejects summary lines over 50 characters.
func SummaryLength(input string) error {
	if n := len(strings.TrimSpace(input)); n > maxSummaryLength {
		return reject("summary-length", "summary is too long: %d chars (limit %d)", n, maxSummaryLength)
	}
	return nil
}

// SummaryPunctuation rejects summaries ending with a period.
func SummaryPunctuation(input string) error {
	if strings.HasSuffix(strings.TrimSpace(input), ".") {
		return reject("summary-punctuation", "summary should not end with a period")
	}
	return nil
}

// BodyLineLength rejects bodies with any line over 72 characters.
func BodyLineLength(input string) error {
	for _, line := range strings.Split(input, "\n") {
		if len(line) > maxBodyLineLength {
			truncated := line
			if len(truncated) > 20 {
				truncated = truncated[:20]
			}
			return reject("body-line-length", "line %q... is too long: %d chars (limit %d)",
				truncated, len(line), maxBodyLineLength)
		}
	}
	return nil
}

// replacer is the shared misspell engine, compiled once on first use.
var replacer = sync.OnceValue(func() *misspell.Replacer {
	r := misspell.New()
	r.Compile()
	return r
})

// Spelling rejects input containing a commonly misspelled word, with the
// suggested correction.
func Spelling(input string) error {
	_, diffs := replacer().Replace(input)
	if len(diffs) == 0 {
		return nil
	}
	d := diffs[0]
	return reject("spelling", "spelling error: %q, did you mean %q?", d.Original, d.Corrected)
}

// Message validates a full commit message: a conventional-commit header
// line, then an optional body separated by a blank line. The first
// violated rule is reported.
func Message(msg string) error {
	if err := NotEmpty(msg); err != nil {
		return err
	}

	header, body, _ := strings.Cut(strings.TrimRight(msg, "\n"), "\n")

	m := headerRe.FindStringSubmatch(header)
	if m == nil {
		return reject("header-format", "header %q does not match \"type(scope): summary\"", header)
	}
	if err := CommitType(m[1]); err != nil {
		return err
	}
	if err := SummaryLength(header); err != nil {
		return err
	}
	if err := SummaryPunctuation(header); err != nil {
		return err
	}
	if err := Spelling(m[3]); err != nil {
		return err
	}

	if body != "" {
		if !strings.HasPrefix(body, "\n") {
			return reject("body-separator", "header and body must be separated by a blank line")
		}
		if err := BodyLineLength(body); err != nil {
			return err
		}
	}
	return nil
}
