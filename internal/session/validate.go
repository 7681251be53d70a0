package session

import (
	"strings"
)

// ValidationStatus says whether an accepted line is finished or needs
// more input.
type ValidationStatus int

// Validation results.
const (
	// ValidationComplete accepts the line as-is.
	ValidationComplete ValidationStatus = iota
	// ValidationIncomplete turns accept into a newline so the user can
	// keep typing.
	ValidationIncomplete
)

// Validator decides whether an accept should finish the line.
type Validator interface {
	Validate(line string) ValidationStatus
}

// AcceptAll is the validator used when none is configured: every line
// is complete.
type AcceptAll struct{}

// Validate implements Validator.
func (AcceptAll) Validate(string) ValidationStatus {
	return ValidationComplete
}

// BracketValidator treats a line with unbalanced brackets, an open
// quote, or a trailing backslash as incomplete.
type BracketValidator struct{}

// Validate implements Validator.
func (BracketValidator) Validate(line string) ValidationStatus {
	if strings.HasSuffix(line, "\\") && !strings.HasSuffix(line, "\\\\") {
		return ValidationIncomplete
	}

	var quote rune
	depth := map[rune]int{}
	escaped := false
	for _, r := range line {
		if escaped {
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		if quote != 0 {
			if r == quote {
				quote = 0
			}
			continue
		}
		switch r {
		case '\'', '"', '`':
			quote = r
		case '(', '[', '{':
			depth[closerFor(r)]++
		case ')', ']', '}':
			if depth[r] > 0 {
				depth[r]--
			}
		}
	}
	if quote != 0 {
		return ValidationIncomplete
	}
	for _, n := range depth {
		if n > 0 {
			return ValidationIncomplete
		}
	}
	return ValidationComplete
}

func closerFor(open rune) rune {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	default:
		return '}'
	}
}
