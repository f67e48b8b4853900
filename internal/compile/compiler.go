// Package compile turns submitted Go source into candidate operation
// definitions. Sources are parsed with go/parser so syntax errors carry
// positions, then evaluated in a yaegi interpreter with the qsim package
// exported to interpreted code.
package compile

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/louisabraham/QuantumKatas/internal/kata"
	"github.com/louisabraham/QuantumKatas/qsim"
)

// QsimImportPath is the package submissions import for qubits and gates.
const QsimImportPath = "github.com/louisabraham/QuantumKatas/qsim"

// SubmissionNamespace is the transient namespace candidates live in.
const SubmissionNamespace = "Submission"

// Result is successful compiler output: zero or more candidate operations
// plus warnings to forward to the diagnostic channel.
type Result struct {
	Candidates []kata.Definition
	Warnings   []string
}

// Error reports a failed compilation with its diagnostics verbatim.
type Error struct {
	Diagnostics []string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Diagnostics) == 0 {
		return "compile: compilation failed"
	}
	return "compile: " + strings.Join(e.Diagnostics, "; ")
}

// Compiler evaluates submissions. Each Compile call uses a fresh
// interpreter, so no state leaks between invocations.
type Compiler struct{}

// New returns a submission compiler.
func New() *Compiler {
	return &Compiler{}
}

var packageClause = regexp.MustCompile(`(?m)^package\s+\w+`)

// Compile parses and evaluates src. Bare fragments (no package clause) are
// wrapped in a scratch package with qsim pre-imported; full files are taken
// as-is and must import qsim themselves.
func (c *Compiler) Compile(src string) (Result, error) {
	if strings.TrimSpace(src) == "" {
		return Result{}, &Error{Diagnostics: []string{"submission is empty"}}
	}
	wrapped, headerLines := wrap(src)

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "submission.go", wrapped, 0)
	if err != nil {
		return Result{}, &Error{Diagnostics: parseDiagnostics(err, headerLines)}
	}

	pkgName := file.Name.Name
	alias := qsimAlias(file)
	shapes, warnings := classify(file, alias)
	if len(shapes) == 0 {
		return Result{Warnings: warnings}, nil
	}

	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return Result{}, fmt.Errorf("compile: load stdlib symbols: %w", err)
	}
	if err := i.Use(Symbols); err != nil {
		return Result{}, fmt.Errorf("compile: load qsim symbols: %w", err)
	}
	if _, err := i.Eval(wrapped); err != nil {
		return Result{}, &Error{Diagnostics: []string{err.Error()}}
	}

	candidates := make([]kata.Definition, 0, len(shapes))
	for _, shape := range shapes {
		value, err := i.Eval(pkgName + "." + shape.name)
		if err != nil {
			return Result{}, &Error{Diagnostics: []string{err.Error()}}
		}
		op, err := qsim.NewOperation(shape.name, shape.sig, bodyFromFunc(value, shape.sig))
		if err != nil {
			return Result{}, fmt.Errorf("compile: wrap %s: %w", shape.name, err)
		}
		candidates = append(candidates, kata.Definition{
			Namespace: SubmissionNamespace,
			Name:      shape.name,
			Kind:      kata.KindOperation,
			Signature: shape.sig,
			Op:        op,
		})
	}
	return Result{Candidates: candidates, Warnings: warnings}, nil
}

type opShape struct {
	name string
	sig  qsim.Signature
}

// classify walks top-level declarations and keeps the exported functions
// shaped like operations. Other exported functions produce a warning;
// unexported functions, types, and values are treated as helpers.
func classify(file *ast.File, alias string) ([]opShape, []string) {
	var shapes []opShape
	var warnings []string
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv != nil || !fn.Name.IsExported() {
			continue
		}
		sig, reason := operationSignature(fn, alias)
		if reason != "" {
			warnings = append(warnings, fmt.Sprintf("skipping %s: %s", fn.Name.Name, reason))
			continue
		}
		shapes = append(shapes, opShape{name: fn.Name.Name, sig: sig})
	}
	return shapes, warnings
}

func operationSignature(fn *ast.FuncDecl, alias string) (qsim.Signature, string) {
	if fn.Type.TypeParams != nil {
		return qsim.Signature{}, "generic functions are not operations"
	}
	if fn.Type.Results != nil && len(fn.Type.Results.List) > 0 {
		return qsim.Signature{}, "operations must not return values"
	}
	params := fn.Type.Params.List
	if len(params) == 1 {
		if isQubitSlice(params[0].Type, alias) {
			return qsim.Signature{Register: true}, ""
		}
	}
	count := 0
	for _, field := range params {
		if !isQubitPtr(field.Type, alias) {
			return qsim.Signature{}, "parameters must be *qsim.Qubit or []*qsim.Qubit"
		}
		n := len(field.Names)
		if n == 0 {
			n = 1
		}
		count += n
	}
	return qsim.Signature{Qubits: count}, ""
}

func isQubitPtr(expr ast.Expr, alias string) bool {
	star, ok := expr.(*ast.StarExpr)
	if !ok {
		return false
	}
	sel, ok := star.X.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "Qubit" {
		return false
	}
	ident, ok := sel.X.(*ast.Ident)
	return ok && ident.Name == alias
}

func isQubitSlice(expr ast.Expr, alias string) bool {
	arr, ok := expr.(*ast.ArrayType)
	return ok && arr.Len == nil && isQubitPtr(arr.Elt, alias)
}

// qsimAlias returns the local name of the qsim import, defaulting to the
// package name when it is not imported at all.
func qsimAlias(file *ast.File) string {
	for _, imp := range file.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil || path != QsimImportPath {
			continue
		}
		if imp.Name != nil {
			return imp.Name.Name
		}
		return "qsim"
	}
	return "qsim"
}

// wrap prepends a scratch package clause and the qsim import to bare
// fragments. Returns the evaluated source and how many header lines were
// added, so parser positions can be mapped back to the learner's text.
func wrap(src string) (string, int) {
	if packageClause.MatchString(src) {
		return src, 0
	}
	header := "package kata\n\nimport qsim \"" + QsimImportPath + "\"\n\nvar _ = qsim.M\n\n"
	return header + src, strings.Count(header, "\n")
}

func parseDiagnostics(err error, headerLines int) []string {
	list, ok := err.(scanner.ErrorList)
	if !ok {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(list))
	for _, e := range list {
		line := e.Pos.Line - headerLines
		if line < 1 {
			line = e.Pos.Line
		}
		out = append(out, fmt.Sprintf("%d:%d: %s", line, e.Pos.Column, e.Msg))
	}
	return out
}

func bodyFromFunc(fn reflect.Value, sig qsim.Signature) qsim.Body {
	return func(s *qsim.Simulator, qs []*qsim.Qubit) error {
		var args []reflect.Value
		if sig.Register {
			args = []reflect.Value{reflect.ValueOf(qs)}
		} else {
			args = make([]reflect.Value, len(qs))
			for i, q := range qs {
				args[i] = reflect.ValueOf(q)
			}
		}
		fn.Call(args)
		return nil
	}
}
