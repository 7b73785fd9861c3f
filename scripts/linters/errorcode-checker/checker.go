package main

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// CodeDecl records one `ErrX = errors.MustNewCode("pkg.name")`
// declaration.
type CodeDecl struct {
	Name    string
	Literal string
	File    string
	Line    int
}

// Violation is a single finding.
type Violation struct {
	File    string
	Line    int
	Message string
}

// Checker walks a tree and enforces the error-code conventions: every
// declared code is referenced, codes are unique, and failures are
// constructed through the typed errors package rather than fmt.Errorf
// or the standard library's errors.New.
type Checker struct {
	fset         *token.FileSet
	decls        []*CodeDecl
	refs         map[string]int
	violations   []Violation
	excludePaths []string
	verbose      bool
}

func NewChecker(excludePaths []string, verbose bool) *Checker {
	return &Checker{
		fset:         token.NewFileSet(),
		refs:         make(map[string]int),
		excludePaths: excludePaths,
		verbose:      verbose,
	}
}

func (c *Checker) debug(format string, args ...interface{}) {
	if c.verbose {
		fmt.Printf(format, args...)
	}
}

func (c *Checker) excluded(path string) bool {
	for _, excludePath := range c.excludePaths {
		if strings.Contains(path, excludePath) {
			return true
		}
	}
	return false
}

// CheckDirectory recursively checks every Go file under dir.
func (c *Checker) CheckDirectory(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if c.excluded(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") {
			return nil
		}
		return c.checkFile(path)
	})
}

func (c *Checker) checkFile(path string) error {
	file, err := parser.ParseFile(c.fset, path, nil, parser.ParseComments)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	c.debug("checking %s\n", path)

	c.collectDeclarations(file, path)
	c.collectReferences(file)
	c.checkConstructors(file, path)

	return nil
}

// collectDeclarations records every Err* variable assigned from
// errors.MustNewCode.
func (c *Checker) collectDeclarations(file *ast.File, path string) {
	ast.Inspect(file, func(n ast.Node) bool {
		spec, ok := n.(*ast.ValueSpec)
		if !ok {
			return true
		}
		for i, name := range spec.Names {
			if !strings.HasPrefix(name.Name, "Err") || len(spec.Values) <= i {
				continue
			}
			call, ok := spec.Values[i].(*ast.CallExpr)
			if !ok || !isSelector(call.Fun, "errors", "MustNewCode") || len(call.Args) != 1 {
				continue
			}
			lit, ok := call.Args[0].(*ast.BasicLit)
			if !ok || lit.Kind != token.STRING {
				continue
			}
			literal, err := strconv.Unquote(lit.Value)
			if err != nil {
				continue
			}
			pos := c.fset.Position(name.Pos())
			c.decls = append(c.decls, &CodeDecl{
				Name:    name.Name,
				Literal: literal,
				File:    path,
				Line:    pos.Line,
			})
		}
		return true
	})
}

// collectReferences counts every Err* identifier. A declaration counts
// once for its own name, so an unreferenced code ends up with exactly
// one hit.
func (c *Checker) collectReferences(file *ast.File) {
	ast.Inspect(file, func(n ast.Node) bool {
		if ident, ok := n.(*ast.Ident); ok && strings.HasPrefix(ident.Name, "Err") {
			c.refs[ident.Name]++
		}
		return true
	})
}

// checkConstructors flags error constructions that bypass the typed
// errors package: fmt.Errorf anywhere, and errors.New when "errors" is
// the standard library import rather than the typed package.
func (c *Checker) checkConstructors(file *ast.File, path string) {
	stdlibErrorsNames := map[string]bool{}
	for _, imp := range file.Imports {
		if imp.Path.Value != `"errors"` {
			continue
		}
		name := "errors"
		if imp.Name != nil {
			name = imp.Name.Name
		}
		stdlibErrorsNames[name] = true
	}

	ast.Inspect(file, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		ident, ok := sel.X.(*ast.Ident)
		if !ok {
			return true
		}

		pos := c.fset.Position(call.Pos())
		switch {
		case ident.Name == "fmt" && sel.Sel.Name == "Errorf":
			c.violations = append(c.violations, Violation{
				File:    path,
				Line:    pos.Line,
				Message: "fmt.Errorf bypasses the typed errors package",
			})
		case stdlibErrorsNames[ident.Name] && sel.Sel.Name == "New":
			c.violations = append(c.violations, Violation{
				File:    path,
				Line:    pos.Line,
				Message: "standard library errors.New bypasses the typed errors package",
			})
		}
		return true
	})
}

func isSelector(expr ast.Expr, pkg, name string) bool {
	sel, ok := expr.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	ident, ok := sel.X.(*ast.Ident)
	return ok && ident.Name == pkg && sel.Sel.Name == name
}

// UnusedCodes returns the declarations nothing references.
func (c *Checker) UnusedCodes() []*CodeDecl {
	var unused []*CodeDecl
	for _, decl := range c.decls {
		if c.refs[decl.Name] <= 1 {
			unused = append(unused, decl)
		}
	}
	sort.Slice(unused, func(i, j int) bool { return unused[i].Name < unused[j].Name })
	return unused
}

// DuplicateCodes returns declarations sharing one code literal. Codes
// are the stable wire contract, so two variables carrying the same
// string is always a bug.
func (c *Checker) DuplicateCodes() map[string][]*CodeDecl {
	byLiteral := make(map[string][]*CodeDecl)
	for _, decl := range c.decls {
		byLiteral[decl.Literal] = append(byLiteral[decl.Literal], decl)
	}
	for literal, decls := range byLiteral {
		if len(decls) < 2 {
			delete(byLiteral, literal)
		}
	}
	return byLiteral
}

// Violations returns the constructor findings in file order.
func (c *Checker) Violations() []Violation {
	sort.Slice(c.violations, func(i, j int) bool {
		if c.violations[i].File != c.violations[j].File {
			return c.violations[i].File < c.violations[j].File
		}
		return c.violations[i].Line < c.violations[j].Line
	})
	return c.violations
}

// CodeCount returns the number of declared codes.
func (c *Checker) CodeCount() int {
	return len(c.decls)
}
