//go:build js && wasm

// Command phishcheck-wasm подключает проверку URL к странице в браузере.
// Сервер отдаёт страницу и проксирует POST /predict, поэтому запросы
// идут на тот же origin.
package main

import (
	"sync"
	"syscall/js"

	"github.com/Totarae/phishcheck/internal/checker"
	"github.com/Totarae/phishcheck/internal/locale"
	"github.com/Totarae/phishcheck/internal/logger"
	"github.com/Totarae/phishcheck/internal/predictor"
	"go.uber.org/zap"
	"honnef.co/go/js/dom/v2"
)

func main() {
	// В wasm stderr уходит в консоль браузера.
	log, err := logger.NewLogger("info", true)
	if err != nil {
		js.Global().Get("console").Call("error", err.Error())
		return
	}
	defer log.Sync()

	window := dom.GetWindow()
	document := window.Document().(dom.HTMLDocument)

	texts, err := locale.Parse(document.DocumentElement().GetAttribute("lang"))
	if err != nil {
		texts = locale.Default()
	}

	origin := js.Global().Get("location").Get("origin").String()
	client := predictor.NewClient(origin+"/predict", 0, log)

	b, err := Bind(document, func(d checker.Display) *checker.Checker {
		return checker.New(client, d, checker.WithTexts(texts), checker.WithLogger(log))
	}, log)
	if err != nil {
		log.Error("bind failed", zap.Error(err))
		return
	}

	done := make(chan struct{})
	var once sync.Once
	window.AddEventListener("pagehide", false, func(dom.Event) {
		once.Do(func() { close(done) })
	})
	<-done
	b.Release()
}
