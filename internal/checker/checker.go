// Package checker связывает поле ввода, запрос к бэкенду и вывод результата
// в один цикл проверки URL.
package checker

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Totarae/phishcheck/internal/locale"
	"github.com/Totarae/phishcheck/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrEmptyURL - пустой ввод, запрос не отправлялся.
	ErrEmptyURL = errors.New("url is empty")
	// ErrInFlight - предыдущий запрос этого экземпляра ещё не завершён.
	ErrInFlight = errors.New("check already in flight")
)

//go:generate mockgen -source=checker.go -destination=../mocks/checker_mock.go -package=mocks

// Predictor отправляет URL на бэкенд предсказаний.
type Predictor interface {
	Predict(ctx context.Context, url string) (*model.PredictResponse, error)
}

// Recorder сохраняет завершённые циклы проверки.
type Recorder interface {
	Record(ctx context.Context, e model.Entry) error
}

// Checker - один экземпляр UI проверки. Одновременно выполняется не более
// одного запроса.
type Checker struct {
	predictor Predictor
	display   Display
	renderer  *Renderer
	texts     *locale.Texts
	recorder  Recorder
	logger    *zap.Logger

	inFlight atomic.Bool
}

// Option настраивает Checker.
type Option func(*Checker)

// WithTexts задаёт язык предупреждений и результатов.
func WithTexts(t *locale.Texts) Option {
	return func(c *Checker) {
		c.texts = t
	}
}

// WithStrict включает строгий режим рендерера.
func WithStrict(strict bool, safeLabels []string) Option {
	return func(c *Checker) {
		c.renderer.Strict = strict
		if len(safeLabels) > 0 {
			c.renderer.SafeLabels = safeLabels
		}
	}
}

// WithRecorder подключает журнал.
func WithRecorder(r Recorder) Option {
	return func(c *Checker) {
		c.recorder = r
	}
}

// WithLogger задаёт логгер для диагностики.
func WithLogger(l *zap.Logger) Option {
	return func(c *Checker) {
		c.logger = l
	}
}

// New создаёт Checker, привязанный к display.
func New(p Predictor, d Display, opts ...Option) *Checker {
	c := &Checker{
		predictor: p,
		display:   d,
		texts:     locale.Default(),
		logger:    zap.NewNop(),
	}
	c.renderer = NewRenderer(c.texts)
	for _, opt := range opts {
		opt(c)
	}
	c.renderer.texts = c.texts
	return c
}

// Normalize обрезает пробелы и сообщает, остался ли непустой URL.
func Normalize(raw string) (string, bool) {
	url := strings.TrimSpace(raw)
	return url, url != ""
}

// Busy сообщает, выполняется ли сейчас запрос.
func (c *Checker) Busy() bool {
	return c.inFlight.Load()
}

// Submit выполняет один цикл: проверка ввода, запрос, вывод результата.
//
// Ошибки: ErrInFlight (ничего не изменилось, проверяется первым), ErrEmptyURL
// (показано предупреждение), ошибка Predictor (показано общее предупреждение, область
// результата скрыта). Ответ бэкенда с полем error ошибкой не считается.
func (c *Checker) Submit(ctx context.Context, raw string) (model.Result, error) {
	// Пока запрос в полёте, триггер отключён: даже пустой ввод не проверяется.
	if !c.inFlight.CompareAndSwap(false, true) {
		return model.Result{}, ErrInFlight
	}
	defer c.inFlight.Store(false)

	url, ok := Normalize(raw)
	if !ok {
		c.display.Alert(c.texts.Get(locale.AlertEmptyURL))
		return model.Result{}, ErrEmptyURL
	}

	c.display.SetBusy(true)
	c.display.HideResult()

	resp, err := c.predictor.Predict(ctx, url)

	c.display.SetBusy(false)

	if err != nil {
		c.logger.Error("Ошибка запроса к бэкенду", zap.String("url", url), zap.Error(err))
		c.display.Alert(c.texts.Get(locale.AlertConnection))
		c.record(ctx, url, model.StateFailed, err.Error())
		return model.Result{}, err
	}

	result := c.renderer.Render(resp)
	c.display.ShowResult(result)

	detail := ""
	if result.State == model.StateError {
		detail = result.Description
	}
	c.record(ctx, url, result.State, detail)

	return result, nil
}

func (c *Checker) record(ctx context.Context, url string, state model.State, detail string) {
	if c.recorder == nil {
		return
	}
	e := model.Entry{
		ID:        uuid.NewString(),
		URL:       url,
		State:     state,
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	}
	if err := c.recorder.Record(context.WithoutCancel(ctx), e); err != nil {
		c.logger.Warn("Не удалось записать проверку в журнал", zap.String("url", url), zap.Error(err))
	}
}
