package checker

import (
	"slices"

	"github.com/Totarae/phishcheck/internal/locale"
	"github.com/Totarae/phishcheck/internal/model"
)

// DefaultSafeLabels - значения result, которые строгий режим считает безопасными.
var DefaultSafeLabels = []string{"Aman", "Safe"}

// Renderer превращает ответ бэкенда в Result.
type Renderer struct {
	texts *locale.Texts
	// Strict включает отдельную ветку для нераспознанных ответов
	// вместо молчаливого "безопасно".
	Strict     bool
	SafeLabels []string
}

// NewRenderer создаёт рендерер в нестрогом режиме.
func NewRenderer(texts *locale.Texts) *Renderer {
	if texts == nil {
		texts = locale.Default()
	}
	return &Renderer{texts: texts, SafeLabels: DefaultSafeLabels}
}

// Render выбирает одно из трёх состояний: error, phishing, safe.
func (r *Renderer) Render(resp *model.PredictResponse) model.Result {
	if resp == nil {
		resp = &model.PredictResponse{}
	}

	if resp.Error != "" {
		return r.failure(resp.Error)
	}

	if resp.Result == model.LabelPhishing {
		return model.Result{
			State:       model.StatePhishing,
			Headline:    r.texts.Get(locale.PhishingHeadline),
			Description: r.texts.Get(locale.PhishingDescription),
			Class:       model.ClassPhishing,
		}
	}

	if r.Strict && !slices.Contains(r.SafeLabels, resp.Result) {
		return r.failure(r.texts.Get(locale.UnrecognizedResult, resp.Result))
	}

	return model.Result{
		State:       model.StateSafe,
		Headline:    r.texts.Get(locale.SafeHeadline),
		Description: r.texts.Get(locale.SafeDescription),
		Class:       model.ClassSafe,
	}
}

func (r *Renderer) failure(desc string) model.Result {
	return model.Result{
		State:       model.StateError,
		Headline:    r.texts.Get(locale.ErrorHeadline),
		Description: desc,
		Class:       model.ClassPhishing,
	}
}
