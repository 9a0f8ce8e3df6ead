//go:build js && wasm

package main

import (
	"context"
	"fmt"
	"syscall/js"

	"github.com/Totarae/phishcheck/internal/checker"
	"github.com/Totarae/phishcheck/internal/model"
	"github.com/Totarae/phishcheck/internal/page"
	"go.uber.org/zap"
	"honnef.co/go/js/dom/v2"
)

var _ checker.Display = (*domDisplay)(nil)

// domDisplay выводит цикл проверки в элементы страницы.
type domDisplay struct {
	button *dom.HTMLButtonElement
	area   dom.Element
	text   dom.Element
	desc   dom.Element
	alert  dom.Element
}

func (d *domDisplay) SetBusy(busy bool) {
	d.button.SetDisabled(busy)
	if busy {
		d.button.Class().Add(page.ClassLoading)
	} else {
		d.button.Class().Remove(page.ClassLoading)
	}
}

func (d *domDisplay) HideResult() {
	d.area.Class().Add(page.ClassHidden)
	// Баннер от серверной отрисовки больше не актуален.
	if d.alert != nil {
		d.alert.Class().Add(page.ClassHidden)
	}
}

func (d *domDisplay) ShowResult(r model.Result) {
	d.text.SetTextContent(r.Headline)
	d.text.SetAttribute("class", r.Class)
	d.desc.SetTextContent(r.Description)
	d.area.Class().Remove(page.ClassHidden)
}

func (d *domDisplay) Alert(msg string) {
	dom.GetWindow().Alert(msg)
}

type listener struct {
	target dom.EventTarget
	typ    string
	fn     js.Func
}

// Binding - Checker, подключённый к странице. Release снимает обработчики.
type Binding struct {
	checker   *checker.Checker
	input     *dom.HTMLInputElement
	logger    *zap.Logger
	listeners []listener
}

// Bind находит элементы страницы и подписывает Checker на клик и Enter.
func Bind(document dom.HTMLDocument, build func(checker.Display) *checker.Checker, logger *zap.Logger) (*Binding, error) {
	lookup := func(id string) (dom.Element, error) {
		el := document.GetElementByID(id)
		if el == nil {
			return nil, fmt.Errorf("element #%s not found", id)
		}
		return el, nil
	}

	inputEl, err := lookup(page.InputID)
	if err != nil {
		return nil, err
	}
	buttonEl, err := lookup(page.TriggerID)
	if err != nil {
		return nil, err
	}
	area, err := lookup(page.ResultAreaID)
	if err != nil {
		return nil, err
	}
	text, err := lookup(page.ResultTextID)
	if err != nil {
		return nil, err
	}
	desc, err := lookup(page.ResultDescID)
	if err != nil {
		return nil, err
	}

	input, ok := inputEl.(*dom.HTMLInputElement)
	if !ok {
		return nil, fmt.Errorf("#%s is not an input", page.InputID)
	}
	button, ok := buttonEl.(*dom.HTMLButtonElement)
	if !ok {
		return nil, fmt.Errorf("#%s is not a button", page.TriggerID)
	}

	display := &domDisplay{button: button, area: area, text: text, desc: desc}
	display.alert = document.GetElementByID(page.AlertID)

	b := &Binding{checker: build(display), input: input, logger: logger}

	b.listen(button, "click", func(e dom.Event) {
		e.PreventDefault()
		b.trigger()
	})
	b.listen(input, "keydown", func(e dom.Event) {
		ke, ok := e.(*dom.KeyboardEvent)
		if !ok || ke.Key() != "Enter" {
			return
		}
		// Иначе браузер отправит форму сам.
		e.PreventDefault()
		// Enter равен нажатию кнопки, а отключённая кнопка не нажимается.
		if button.Disabled() {
			return
		}
		b.trigger()
	})
	if form := document.GetElementByID(page.FormID); form != nil {
		b.listen(form, "submit", func(e dom.Event) {
			e.PreventDefault()
		})
	}

	return b, nil
}

func (b *Binding) listen(target dom.EventTarget, typ string, fn func(dom.Event)) {
	f := target.AddEventListener(typ, false, fn)
	b.listeners = append(b.listeners, listener{target: target, typ: typ, fn: f})
}

// trigger запускает цикл вне обработчика события: блокирующий fetch
// в колбэке JS остановил бы страницу.
func (b *Binding) trigger() {
	raw := b.input.Value()
	go func() {
		if _, err := b.checker.Submit(context.Background(), raw); err != nil {
			b.logger.Debug("check finished with error", zap.Error(err))
		}
	}()
}

// Release снимает все обработчики. После него Binding не используется.
func (b *Binding) Release() {
	for _, l := range b.listeners {
		l.target.RemoveEventListener(l.typ, false, l.fn)
		l.fn.Release()
	}
	b.listeners = nil
}
