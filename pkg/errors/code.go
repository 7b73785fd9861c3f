package errors

import (
	"fmt"
	"regexp"
	"strings"
)

// Code is a validated error code with a package prefix ("package.name").
// Codes are the stable contract between packages: transport layers map
// them to status codes, tests assert on them, log lines carry them.
type Code struct {
	value string
}

// Shared codes usable from any package.
var (
	CommonInternal    = MustNewCode("common.internal")
	CommonNotFound    = MustNewCode("common.not_found")
	CommonValidation  = MustNewCode("common.validation")
	CommonTimeout     = MustNewCode("common.timeout")
	CommonConflict    = MustNewCode("common.conflict")
	CommonUnsupported = MustNewCode("common.unsupported")
)

var codeRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*\.[a-z][a-z0-9_]*$`)

// NewCode validates s as a "package.name" code.
func NewCode(s string) (Code, error) {
	if !codeRegex.MatchString(s) {
		return Code{}, fmt.Errorf("invalid code format '%s': must be 'package.name' (lowercase, underscores, dots only)", s)
	}

	// The word is redundant inside an error code.
	if strings.Contains(s, "error") || strings.Contains(s, "err") {
		return Code{}, fmt.Errorf("invalid code '%s': should not contain 'error' or 'err'", s)
	}

	return Code{value: s}, nil
}

// MustNewCode is NewCode that panics on invalid input. Meant for the
// package-level var blocks where codes are declared.
func MustNewCode(s string) Code {
	code, err := NewCode(s)
	if err != nil {
		panic(err)
	}
	return code
}

func (c Code) String() string {
	return c.value
}

// Package returns the prefix before the dot.
func (c Code) Package() string {
	if idx := strings.Index(c.value, "."); idx != -1 {
		return c.value[:idx]
	}
	return ""
}

// Name returns the part after the dot.
func (c Code) Name() string {
	if idx := strings.Index(c.value, "."); idx != -1 {
		return c.value[idx+1:]
	}
	return c.value
}

func (c Code) IsValid() bool {
	return codeRegex.MatchString(c.value)
}

func (c Code) Equals(other Code) bool {
	return c.value == other.value
}
