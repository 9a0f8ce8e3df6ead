// Package main запускает multichecker для phishcheck.
//
// Он включает:
//   - анализаторы go/analysis/passes (shadow, structtag, nilness, printf, httpresponse)
//   - все SA-анализаторы staticcheck, S1000 и S1021 из simple, U1000
//   - bodyclose
//   - noexit: os.Exit и log.Fatal в main пропускают defer (logger.Sync, закрытие журнала)
//   - noctxhttp: HTTP-запросы без context.Context
//
// Запуск:
//
//	go run ./cmd/staticlint ./...
package main

import (
	"github.com/timakin/bodyclose/passes/bodyclose"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/httpresponse"
	"golang.org/x/tools/go/analysis/passes/nilness"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shadow"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"honnef.co/go/tools/simple"
	"honnef.co/go/tools/staticcheck"
	"honnef.co/go/tools/unused"

	"github.com/Totarae/phishcheck/cmd/staticlint/noctxhttp"
	"github.com/Totarae/phishcheck/cmd/staticlint/noexit"
)

// simpleChecks - проверки из simple, которые включены сверх SA.
var simpleChecks = map[string]bool{
	"S1000": true, // select с одним case
	"S1021": true,
}

func main() {
	multichecker.Main(analyzers()...)
}

func analyzers() []*analysis.Analyzer {
	list := []*analysis.Analyzer{
		shadow.Analyzer,
		structtag.Analyzer,
		nilness.Analyzer,
		printf.Analyzer,
		httpresponse.Analyzer,
	}

	for _, a := range staticcheck.Analyzers {
		if name := a.Analyzer.Name; len(name) > 2 && name[:2] == "SA" {
			list = append(list, a.Analyzer)
		}
	}
	for _, a := range simple.Analyzers {
		if simpleChecks[a.Analyzer.Name] {
			list = append(list, a.Analyzer)
		}
	}
	list = append(list, unused.Analyzer.Analyzer) // U1000

	list = append(list,
		bodyclose.Analyzer,
		noexit.Analyzer,
		noctxhttp.Analyzer,
	)
	return list
}
