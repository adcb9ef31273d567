package types

import (
	"github.com/stella-lang/stellac/internal/ast"
	"github.com/stella-lang/stellac/internal/diag"
)

// CheckProgram runs the driver contract from the component design:
// register every top-level function's signature in a global scope
// (so forward references and mutual recursion just work), require a
// main function, then check each body against its declared return
// type. It aborts and returns the first diagnostic encountered.
func CheckProgram(prog *ast.Program) (*Checker, error) {
	c := NewChecker()
	global := NewEnv()

	haveMain := false
	for _, decl := range prog.Decls {
		params := make([]Type, len(decl.Params))
		for i, p := range decl.Params {
			params[i] = resolveType(p.Type)
		}
		fn := &Fun{Params: params, Result: resolveType(decl.ReturnType)}
		global.Insert(decl.Name.Name, fn)
		if decl.Name.Name == "main" {
			haveMain = true
		}
	}
	if !haveMain {
		return c, newDiag(prog.Span(), diag.CodeMissingMain, "no top-level function named main")
	}

	for _, decl := range prog.Decls {
		if err := c.checkDecl(decl, global); err != nil {
			return c, err
		}
	}
	return c, nil
}

func (c *Checker) checkDecl(decl *ast.FnDecl, global *Env) error {
	fnType, _ := global.Lookup(decl.Name.Name)
	fn := fnType.(*Fun)

	scope := global.NewChild()
	for i, p := range decl.Params {
		scope.Insert(p.Name.Name, fn.Params[i])
	}
	for _, stmt := range decl.PreStmts {
		if _, err := c.check(stmt, scope, nil); err != nil {
			return err
		}
	}
	_, err := c.check(decl.Body, scope, fn.Result)
	return err
}
