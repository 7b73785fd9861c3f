// Command errorcode-checker enforces the error-code conventions across
// the repository: every declared code is referenced somewhere, no two
// codes share a literal, and the server packages construct errors
// through pkg/errors instead of fmt.Errorf or stdlib errors.New.
//
// Usage:
//
//	go run ./scripts/linters/errorcode-checker -dir .
//	go run ./scripts/linters/errorcode-checker -dir . -config check.yml
package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	var (
		dir        = flag.String("dir", ".", "directory to check")
		configPath = flag.String("config", "", "optional YAML config file")
		verbose    = flag.Bool("verbose", false, "print every file visited")
	)
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	if *verbose {
		cfg.Verbose = true
	}

	checker := NewChecker(cfg.ExcludePaths, cfg.Verbose)
	if err := checker.CheckDirectory(*dir); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Checked %d error code declarations under %s\n", checker.CodeCount(), *dir)

	failed := false

	if unused := checker.UnusedCodes(); len(unused) > 0 {
		fmt.Printf("\n❌ Unused error codes (%d):\n", len(unused))
		for _, decl := range unused {
			fmt.Printf("  %s:%d: %s (%s)\n", decl.File, decl.Line, decl.Name, decl.Literal)
		}
		if cfg.ExitOnUnused {
			failed = true
		}
	} else {
		fmt.Println("✅ No unused error codes")
	}

	if dups := checker.DuplicateCodes(); len(dups) > 0 {
		fmt.Printf("\n❌ Duplicate error codes (%d):\n", len(dups))
		for literal, decls := range dups {
			fmt.Printf("  %q declared by:\n", literal)
			for _, decl := range decls {
				fmt.Printf("    %s:%d: %s\n", decl.File, decl.Line, decl.Name)
			}
		}
		failed = true
	} else {
		fmt.Println("✅ No duplicate error codes")
	}

	if violations := checker.Violations(); len(violations) > 0 {
		fmt.Printf("\n❌ Forbidden error constructions (%d):\n", len(violations))
		for _, v := range violations {
			fmt.Printf("  %s:%d: %s\n", v.File, v.Line, v.Message)
		}
		if cfg.ExitOnForbidden {
			failed = true
		}
	} else {
		fmt.Println("✅ No forbidden error constructions")
	}

	if failed {
		os.Exit(1)
	}
}
