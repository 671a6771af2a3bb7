package codegen

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"
)

// mustParseGo parses src as a complete Go source file and fails the test
// with the offending snippet if it is not syntactically valid. This
// catches the class of bug strings.Contains assertions on generated text
// cannot: a generator that emits well-formed-looking but actually broken
// Go (a dangling brace, a missing return, an unbalanced switch).
func mustParseGo(t *testing.T, src string) *ast.File {
	t.Helper()
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "generated.go", src, parser.AllErrors)
	if err != nil {
		t.Fatalf("generated source does not parse as Go: %v\n--- source ---\n%s", err, src)
	}
	return file
}

// firstNonTerminatingFunc walks every top-level function and method in file and
// reports the name of the first one whose body can fall off the end
// without an explicit terminating statement (return, panic, or an
// if/else/switch/for whose branches all terminate), mirroring what the
// compiler's own "missing return" check would catch. It only inspects
// functions that declare a result list, since bodies with no return
// values are always allowed to fall off the end.
func firstNonTerminatingFunc(file *ast.File) string {
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Body == nil || fn.Type.Results == nil {
			continue
		}
		if !blockTerminates(fn.Body) {
			return fn.Name.Name
		}
	}
	return ""
}

// blockTerminates is a conservative approximation of the terminating
// statement rules in the Go spec: it recognizes return, panic, a
// terminating if/else, and a terminating switch, which is the shape
// generated code actually produces; anything else inside the last
// statement is treated as non-terminating so this errs toward flagging
// rather than missing a real bug.
func blockTerminates(b *ast.BlockStmt) bool {
	if len(b.List) == 0 {
		return false
	}
	return stmtTerminates(b.List[len(b.List)-1])
}

func stmtTerminates(s ast.Stmt) bool {
	switch st := s.(type) {
	case *ast.ReturnStmt:
		return true
	case *ast.ExprStmt:
		if call, ok := st.X.(*ast.CallExpr); ok {
			if id, ok := call.Fun.(*ast.Ident); ok && id.Name == "panic" {
				return true
			}
		}
		return false
	case *ast.IfStmt:
		if st.Else == nil {
			return false
		}
		elseBlock, ok := st.Else.(*ast.BlockStmt)
		if !ok {
			// else-if chain: recurse on the nested if.
			if elseIf, ok := st.Else.(*ast.IfStmt); ok {
				return blockTerminates(st.Body) && stmtTerminates(elseIf)
			}
			return false
		}
		return blockTerminates(st.Body) && blockTerminates(elseBlock)
	case *ast.SwitchStmt:
		return switchTerminates(st.Body)
	case *ast.BlockStmt:
		return blockTerminates(st)
	case *ast.ForStmt:
		// per the Go spec, an unconditional "for {}" with no break
		// targeting it is itself a terminating statement: control can
		// only leave via a return/panic inside, or never.
		return st.Cond == nil && st.Init == nil && !hasTopLevelBreak(st.Body)
	default:
		return false
	}
}

// hasTopLevelBreak reports whether an unlabeled break targets body's
// enclosing loop directly, not stopping at nested loops/switches/selects
// (which would catch their own unlabeled breaks) or nested func literals.
func hasTopLevelBreak(body *ast.BlockStmt) bool {
	found := false
	var walk func(n ast.Node) bool
	walk = func(n ast.Node) bool {
		switch s := n.(type) {
		case *ast.BranchStmt:
			if s.Tok == token.BREAK && s.Label == nil {
				found = true
			}
			return false
		case *ast.ForStmt, *ast.RangeStmt, *ast.SwitchStmt, *ast.TypeSwitchStmt, *ast.SelectStmt, *ast.FuncLit:
			return false
		}
		return true
	}
	ast.Inspect(body, walk)
	return found
}

func switchTerminates(body *ast.BlockStmt) bool {
	hasDefault := false
	for _, stmt := range body.List {
		clause, ok := stmt.(*ast.CaseClause)
		if !ok {
			continue
		}
		if clause.List == nil {
			hasDefault = true
		}
		if len(clause.Body) == 0 || !stmtTerminates(clause.Body[len(clause.Body)-1]) {
			return false
		}
	}
	return hasDefault
}

// TestGeneratedSourceParsesAndTerminates runs every fixture already used
// by the strings.Contains-based generator tests through go/parser and a
// terminating-statement check, so a generator regression that produces
// syntactically broken or fall-through Go fails here even when the
// offending snippet still textually resembles correct code.
func TestGeneratedSourceParsesAndTerminates(t *testing.T) {
	fixtures := []string{
		`class point { public int32 x; public int32 y; }`,
		`class bag {
			public array string tags;
			public map(string) int64 counts;
		}`,
		`enum color { red, green, blue }
			class shirt { public color c; }`,
		`class shape { public int32 radius; }
			class event {
				public union(shape = circle, string = label) payload;
			}`,
		`class base { public uint32 id; }
			class child : public base { public string name; }`,
		`namespace geo {
			class point { public int32 x; public int32 y; }
		}
		class route {
			public array geo::point stops;
		}`,
	}

	for i, src := range fixtures {
		out := mustGenerate(t, src)
		file := mustParseGo(t, out)
		if file.Name.Name != "generated" {
			t.Errorf("fixture %d: package name = %q, want generated", i, file.Name.Name)
		}
		if bad := firstNonTerminatingFunc(file); bad != "" {
			t.Errorf("fixture %d: func %s can fall off its end without a return\n--- source ---\n%s", i, bad, out)
		}
	}
}
