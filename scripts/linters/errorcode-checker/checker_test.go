package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFixtures(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write fixture %s: %v", name, err)
		}
	}
	return dir
}

func TestUnusedCodeDetection(t *testing.T) {
	dir := writeFixtures(t, map[string]string{
		"codes.go": `package fixture

import "github.com/gear6io/sift/pkg/errors"

var (
	ErrAlpha = errors.MustNewCode("fixture.alpha")
	ErrBeta  = errors.MustNewCode("fixture.beta")
	ErrGamma = errors.MustNewCode("fixture.gamma")
)
`,
		"usage.go": `package fixture

func doAlpha() error {
	return errors.New(ErrAlpha, "alpha failed", nil)
}

func doBeta() error {
	return errors.New(ErrBeta, "beta failed", nil)
}
`,
	})

	checker := NewChecker(nil, false)
	if err := checker.CheckDirectory(dir); err != nil {
		t.Fatalf("CheckDirectory failed: %v", err)
	}

	if got := checker.CodeCount(); got != 3 {
		t.Fatalf("expected 3 declarations, got %d", got)
	}

	unused := checker.UnusedCodes()
	if len(unused) != 1 {
		t.Fatalf("expected 1 unused code, got %d", len(unused))
	}
	if unused[0].Name != "ErrGamma" || unused[0].Literal != "fixture.gamma" {
		t.Errorf("expected ErrGamma (fixture.gamma) unused, got %s (%s)", unused[0].Name, unused[0].Literal)
	}
}

func TestDuplicateCodeDetection(t *testing.T) {
	dir := writeFixtures(t, map[string]string{
		"codes.go": `package fixture

import "github.com/gear6io/sift/pkg/errors"

var (
	ErrFirst  = errors.MustNewCode("fixture.same")
	ErrSecond = errors.MustNewCode("fixture.same")
	ErrThird  = errors.MustNewCode("fixture.distinct")
)

func use() { _ = ErrFirst; _ = ErrSecond; _ = ErrThird }
`,
	})

	checker := NewChecker(nil, false)
	if err := checker.CheckDirectory(dir); err != nil {
		t.Fatalf("CheckDirectory failed: %v", err)
	}

	dups := checker.DuplicateCodes()
	if len(dups) != 1 {
		t.Fatalf("expected 1 duplicated literal, got %d", len(dups))
	}
	decls, ok := dups["fixture.same"]
	if !ok {
		t.Fatal("expected fixture.same to be reported")
	}
	if len(decls) != 2 {
		t.Errorf("expected 2 declarations of fixture.same, got %d", len(decls))
	}
}

func TestForbiddenConstructions(t *testing.T) {
	dir := writeFixtures(t, map[string]string{
		"bad.go": `package fixture

import (
	"errors"
	"fmt"
)

func bad1() error {
	return fmt.Errorf("something broke: %d", 42)
}

func bad2() error {
	return errors.New("something broke")
}
`,
		"good.go": `package fixture

import "github.com/gear6io/sift/pkg/errors"

var ErrGood = errors.MustNewCode("fixture.good")

func good() error {
	return errors.New(ErrGood, "typed failure", nil)
}
`,
	})

	checker := NewChecker(nil, false)
	if err := checker.CheckDirectory(dir); err != nil {
		t.Fatalf("CheckDirectory failed: %v", err)
	}

	violations := checker.Violations()
	if len(violations) != 2 {
		t.Fatalf("expected 2 violations, got %d: %+v", len(violations), violations)
	}
	for _, v := range violations {
		if filepath.Base(v.File) != "bad.go" {
			t.Errorf("violation reported outside bad.go: %+v", v)
		}
	}
}

func TestTypedErrorsNewNotFlagged(t *testing.T) {
	// errors.New against the typed package takes a Code first argument;
	// only the stdlib import should trip the check.
	dir := writeFixtures(t, map[string]string{
		"typed.go": `package fixture

import "github.com/gear6io/sift/pkg/errors"

var ErrTyped = errors.MustNewCode("fixture.typed")

func typed() error {
	return errors.New(ErrTyped, "typed failure", nil)
}
`,
	})

	checker := NewChecker(nil, false)
	if err := checker.CheckDirectory(dir); err != nil {
		t.Fatalf("CheckDirectory failed: %v", err)
	}
	if violations := checker.Violations(); len(violations) != 0 {
		t.Fatalf("expected no violations, got %+v", violations)
	}
}

func TestExcludePaths(t *testing.T) {
	dir := writeFixtures(t, map[string]string{
		"bad.go": `package fixture

import "fmt"

func bad() error {
	return fmt.Errorf("ignored")
}
`,
	})

	checker := NewChecker([]string{filepath.Base(dir)}, false)
	if err := checker.CheckDirectory(dir); err != nil {
		t.Fatalf("CheckDirectory failed: %v", err)
	}
	if violations := checker.Violations(); len(violations) != 0 {
		t.Fatalf("expected excluded path to be skipped, got %+v", violations)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if !cfg.ExitOnUnused || !cfg.ExitOnForbidden {
		t.Error("defaults should fail the run on findings")
	}
	if len(cfg.ExcludePaths) == 0 {
		t.Error("defaults should exclude the errors package itself")
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "check.yml")
	content := "exclude_paths:\n  - vendor/\nexit_on_unused: false\nexit_on_forbidden: true\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.ExitOnUnused {
		t.Error("exit_on_unused should be overridden to false")
	}
	if len(cfg.ExcludePaths) != 1 || cfg.ExcludePaths[0] != "vendor/" {
		t.Errorf("exclude_paths not overridden: %v", cfg.ExcludePaths)
	}
}
