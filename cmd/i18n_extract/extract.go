// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"path/filepath"

	"golang.org/x/tools/go/packages"
)

// extractor holds the shared state for AST analysis within a package.
type extractor struct {
	cat         *catalog
	projectRoot string
	fset        *token.FileSet
	info        *types.Info
	i18nPkgs    map[string]struct{}
}

// extractRefs traverses all Go source files in pkgs looking for i18n calls.
func extractRefs(pkgs []*packages.Package, projectRoot string, i18nPkgPaths map[string]struct{}) *catalog {
	cat := newCatalog()

	for _, p := range pkgs {
		if p.TypesInfo == nil {
			continue
		}

		e := &extractor{
			cat:         cat,
			projectRoot: projectRoot,
			fset:        p.Fset,
			info:        p.TypesInfo,
			i18nPkgs:    i18nPkgPaths,
		}

		for _, f := range p.Syntax {
			ast.Inspect(f, func(n ast.Node) bool {
				if call, ok := n.(*ast.CallExpr); ok {
					e.handleCallExpr(call)
				}

				return true
			})
		}
	}

	return cat
}

// findI18nPkgPaths returns the paths of packages named i18n that define a
// string-based MsgKey type, however they are imported or aliased.
func findI18nPkgPaths(pkgs []*packages.Package) map[string]struct{} {
	out := make(map[string]struct{})

	for _, p := range pkgs {
		if p.Name != "i18n" || p.Types == nil {
			continue
		}

		tn, ok := p.Types.Scope().Lookup("MsgKey").(*types.TypeName)
		if !ok {
			continue
		}

		if basic, ok := tn.Type().Underlying().(*types.Basic); ok && basic.Kind() == types.String {
			out[p.PkgPath] = struct{}{}
		}
	}

	return out
}

// constString evaluates expr to a constant string if possible.
// Handles string literals, const identifiers and constant expressions like "a" + "b".
func constString(info *types.Info, expr ast.Expr) (string, bool) {
	tv, ok := info.Types[expr]
	if !ok || tv.Value == nil || tv.Value.Kind() != constant.String {
		return "", false
	}

	return constant.StringVal(tv.Value), true
}

// isMsgKey reports whether t is the named type i18n.MsgKey.
func (e *extractor) isMsgKey(t types.Type) bool {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return false
	}

	obj := named.Obj()
	if obj == nil || obj.Pkg() == nil {
		return false
	}

	_, ok = e.i18nPkgs[obj.Pkg().Path()]

	return ok && obj.Name() == "MsgKey"
}

// handleCallExpr records msgids from:
//   - conversions such as i18n.MsgKey("About")
//   - Tr(ctx, "msg", ...) and TrN(ctx, "singular", "plural", n, ...)
func (e *extractor) handleCallExpr(x *ast.CallExpr) {
	if tv, ok := e.info.Types[x.Fun]; ok && tv.IsType() {
		if len(x.Args) == 1 && e.isMsgKey(tv.Type) {
			if msg, ok := constString(e.info, x.Args[0]); ok {
				e.addRef(x.Args[0].Pos(), key{id: msg})
			}
		}

		return
	}

	sel, ok := x.Fun.(*ast.SelectorExpr)
	if !ok {
		return
	}

	fn, ok := e.info.Uses[sel.Sel].(*types.Func)
	if !ok || fn.Pkg() == nil {
		return
	}

	if _, ok := e.i18nPkgs[fn.Pkg().Path()]; !ok {
		return
	}

	switch fn.Name() {
	case "Tr":
		if len(x.Args) >= 2 {
			if msg, ok := constString(e.info, x.Args[1]); ok {
				e.addRef(x.Args[1].Pos(), key{id: msg})
			}
		}
	case "TrN":
		if len(x.Args) >= 4 {
			singular, ok1 := constString(e.info, x.Args[1])
			plural, ok2 := constString(e.info, x.Args[2])

			if ok1 && ok2 {
				e.addRef(x.Args[1].Pos(), key{id: singular, plural: plural})
			}
		}
	}
}

// addRef records a reference relative to the project root.
func (e *extractor) addRef(pos token.Pos, k key) {
	p := e.fset.Position(pos)

	file := p.Filename
	if rel, err := filepath.Rel(e.projectRoot, file); err == nil {
		file = rel
	}

	e.cat.addRef(k, ref{file: filepath.ToSlash(file), line: p.Line})
}
