// Package noctxhttp находит HTTP-запросы, которые нельзя отменить через context.
package noctxhttp

import (
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
)

// Analyzer сообщает о вызовах net/http без context.Context вне тестов.
var Analyzer = &analysis.Analyzer{
	Name: "noctxhttp",
	Doc:  "запрещает http.Get/Post/Head/PostForm и http.NewRequest без context вне тестов",
	Run:  run,
}

var replacements = map[string]string{
	"net/http.Get":                "http.NewRequestWithContext",
	"net/http.Head":               "http.NewRequestWithContext",
	"net/http.Post":               "http.NewRequestWithContext",
	"net/http.PostForm":           "http.NewRequestWithContext",
	"net/http.NewRequest":         "http.NewRequestWithContext",
	"(*net/http.Client).Get":      "(*http.Client).Do",
	"(*net/http.Client).Head":     "(*http.Client).Do",
	"(*net/http.Client).Post":     "(*http.Client).Do",
	"(*net/http.Client).PostForm": "(*http.Client).Do",
}

func run(pass *analysis.Pass) (interface{}, error) {
	for _, file := range pass.Files {
		if strings.HasSuffix(pass.Fset.Position(file.Pos()).Filename, "_test.go") {
			continue
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
			f, ok := pass.TypesInfo.Uses[sel.Sel].(*types.Func)
			if !ok {
				return true
			}
			if repl, found := replacements[f.FullName()]; found {
				pass.Reportf(call.Pos(), "%s без context, используйте %s", f.FullName(), repl)
			}
			return true
		})
	}
	return nil, nil
}
