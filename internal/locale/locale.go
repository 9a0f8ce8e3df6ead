// Package locale хранит тексты интерфейса проверки URL.
//
// По умолчанию используется индонезийский язык, английский доступен как
// альтернатива. Ключи сообщений - стабильные идентификаторы, а не
// форматные строки.
package locale

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Ключи сообщений.
const (
	AlertEmptyURL   = "alert.empty_url"
	AlertConnection = "alert.connection"

	PhishingHeadline    = "result.phishing.headline"
	PhishingDescription = "result.phishing.description"
	SafeHeadline        = "result.safe.headline"
	SafeDescription     = "result.safe.description"
	ErrorHeadline       = "result.error.headline"
	UnrecognizedResult  = "result.error.unrecognized"

	PageTitle        = "page.title"
	InputPlaceholder = "page.input.placeholder"
	TriggerLabel     = "page.trigger.label"
)

var supported = []language.Tag{language.Indonesian, language.English}

var texts = map[language.Tag]map[string]string{
	language.Indonesian: {
		AlertEmptyURL:       "Mohon masukkan URL terlebih dahulu!",
		AlertConnection:     "Terjadi kesalahan koneksi. Silakan coba lagi.",
		PhishingHeadline:    "PHISHING DETECTED!",
		PhishingDescription: "URL ini diprediksi berbahaya. Mohon jangan diklik atau bagikan informasi sensitif.",
		SafeHeadline:        "URL AMAN",
		SafeDescription:     "URL ini diprediksi aman untuk diakses.",
		ErrorHeadline:       "Error",
		UnrecognizedResult:  "Respons tidak dikenali: %q",
		PageTitle:           "Deteksi Phishing",
		InputPlaceholder:    "Masukkan URL, contoh: http://example.com",
		TriggerLabel:        "Periksa",
	},
	language.English: {
		AlertEmptyURL:       "Please enter a URL first!",
		AlertConnection:     "A connection error occurred. Please try again.",
		PhishingHeadline:    "PHISHING DETECTED!",
		PhishingDescription: "This URL is predicted to be malicious. Do not click it or share sensitive information.",
		SafeHeadline:        "SAFE URL",
		SafeDescription:     "This URL is predicted to be safe to visit.",
		ErrorHeadline:       "Error",
		UnrecognizedResult:  "Unrecognized response: %q",
		PageTitle:           "Phishing Detection",
		InputPlaceholder:    "Enter a URL, e.g. http://example.com",
		TriggerLabel:        "Check",
	},
}

var (
	cat     = newCatalog()
	matcher = language.NewMatcher(supported)
)

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.Indonesian))
	for tag, msgs := range texts {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(fmt.Sprintf("locale: %s/%s: %v", tag, key, err))
			}
		}
	}
	return b
}

// Texts выдаёт строки интерфейса для одного языка.
type Texts struct {
	tag     language.Tag
	printer *message.Printer
}

// Default возвращает индонезийские тексты.
func Default() *Texts {
	return New(language.Indonesian)
}

// New создаёт Texts для ближайшего поддерживаемого языка.
func New(tag language.Tag) *Texts {
	_, idx, _ := matcher.Match(tag)
	best := supported[idx]
	return &Texts{tag: best, printer: message.NewPrinter(best, message.Catalog(cat))}
}

// Parse разбирает код языка ("id", "en", "en-US").
// Пустая строка означает язык по умолчанию.
func Parse(code string) (*Texts, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Default(), nil
	}
	tag, err := language.Parse(code)
	if err != nil {
		return nil, fmt.Errorf("unknown language %q: %w", code, err)
	}
	_, _, conf := matcher.Match(tag)
	if conf == language.No {
		return nil, fmt.Errorf("unsupported language %q", code)
	}
	return New(tag), nil
}

// Tag возвращает выбранный язык.
func (t *Texts) Tag() language.Tag {
	return t.tag
}

// Get возвращает текст по ключу.
func (t *Texts) Get(key string, args ...any) string {
	return t.printer.Sprintf(key, args...)
}
