// Package page рендерит HTML-страницу проверки URL на сервере.
package page

import (
	"fmt"
	"html"
	"io"

	"github.com/Totarae/phishcheck/internal/locale"
	"github.com/Totarae/phishcheck/internal/model"
	"github.com/shurcooL/htmlg"
	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Идентификаторы элементов страницы. На них же опирается WASM-клиент.
const (
	InputID      = "urlInput"
	TriggerID    = "checkBtn"
	ResultAreaID = "resultArea"
	ResultTextID = "resultText"
	ResultDescID = "resultDesc"
	AlertID      = "alertBox"
	FormID       = "checkForm"

	ClassHidden  = "hidden"
	ClassLoading = "loading"
)

// Page - данные для одной отрисовки.
type Page struct {
	Texts *locale.Texts
	View  model.View
	// StaticPrefix - путь к статике; пустой отключает стили и WASM-скрипт.
	StaticPrefix string
	WASM         bool
}

// Render пишет документ целиком.
func (p Page) Render(w io.Writer) error {
	texts := p.Texts
	if texts == nil {
		texts = locale.Default()
	}

	_, err := fmt.Fprintf(w, `<!DOCTYPE html><html lang="%s"><head><meta charset="utf-8">`+
		`<meta name="viewport" content="width=device-width, initial-scale=1">`+
		`<title>%s</title>`,
		html.EscapeString(texts.Tag().String()), html.EscapeString(texts.Get(locale.PageTitle)))
	if err != nil {
		return err
	}
	if p.StaticPrefix != "" {
		_, err = fmt.Fprintf(w, `<link rel="stylesheet" href="%s/style.css">`, html.EscapeString(p.StaticPrefix))
		if err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(w, `</head><body><main class="container"><h1>%s</h1>`, html.EscapeString(texts.Get(locale.PageTitle)))
	if err != nil {
		return err
	}

	err = htmlg.RenderComponents(w,
		AlertBanner{Message: p.View.Alert},
		CheckForm{Texts: texts, Input: p.View.Input, Busy: p.View.Busy},
		ResultArea{Visible: p.View.ResultVisible, Result: p.View.Result},
	)
	if err != nil {
		return err
	}

	if p.WASM && p.StaticPrefix != "" {
		_, err = fmt.Fprintf(w, `<script src="%[1]s/wasm_exec.js"></script><script>`+
			`const go = new Go();`+
			`WebAssembly.instantiateStreaming(fetch("%[1]s/phishcheck.wasm"), go.importObject).then((r) => go.run(r.instance));`+
			`</script>`, html.EscapeString(p.StaticPrefix))
		if err != nil {
			return err
		}
	}

	_, err = io.WriteString(w, `</main></body></html>`)
	return err
}

// AlertBanner - одноразовое предупреждение, аналог window.alert.
type AlertBanner struct {
	Message string
}

func (a AlertBanner) Render() []*nethtml.Node {
	if a.Message == "" {
		return nil
	}
	div := element(atom.Div,
		attr("id", AlertID),
		attr("class", "alert"),
		attr("role", "alert"),
	)
	htmlg.AppendChildren(div, htmlg.Text(a.Message))
	return []*nethtml.Node{div}
}

// CheckForm - поле ввода и кнопка. Enter в поле отправляет форму,
// то есть равносилен нажатию кнопки.
type CheckForm struct {
	Texts *locale.Texts
	Input string
	Busy  bool
}

func (f CheckForm) Render() []*nethtml.Node {
	form := element(atom.Form,
		attr("id", FormID),
		attr("method", "post"),
		attr("action", "/check"),
	)

	input := element(atom.Input,
		attr("id", InputID),
		attr("type", "text"),
		attr("name", "url"),
		attr("autocomplete", "off"),
		attr("placeholder", f.Texts.Get(locale.InputPlaceholder)),
		attr("value", f.Input),
	)

	button := element(atom.Button,
		attr("id", TriggerID),
		attr("type", "submit"),
	)
	if f.Busy {
		button.Attr = append(button.Attr, attr("class", ClassLoading), attr("disabled", ""))
	}
	htmlg.AppendChildren(button, htmlg.Text(f.Texts.Get(locale.TriggerLabel)))

	htmlg.AppendChildren(form, input, button)
	return []*nethtml.Node{form}
}

// ResultArea - сворачиваемая область с заголовком и описанием.
type ResultArea struct {
	Visible bool
	Result  model.Result
}

func (r ResultArea) Render() []*nethtml.Node {
	class := "result"
	if !r.Visible {
		class += " " + ClassHidden
	}
	area := element(atom.Div, attr("id", ResultAreaID), attr("class", class))

	headline := element(atom.H2, attr("id", ResultTextID), attr("class", r.Result.Class))
	htmlg.AppendChildren(headline, htmlg.Text(r.Result.Headline))

	desc := element(atom.P, attr("id", ResultDescID))
	htmlg.AppendChildren(desc, htmlg.Text(r.Result.Description))

	htmlg.AppendChildren(area, headline, desc)
	return []*nethtml.Node{area}
}

func element(a atom.Atom, attrs ...nethtml.Attribute) *nethtml.Node {
	return &nethtml.Node{
		Type:     nethtml.ElementNode,
		Data:     a.String(),
		DataAtom: a,
		Attr:     attrs,
	}
}

func attr(key, val string) nethtml.Attribute {
	return nethtml.Attribute{Key: key, Val: val}
}
