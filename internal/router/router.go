package router

import (
	"net/http"

	"github.com/Totarae/phishcheck/internal/handlers"
	"github.com/Totarae/phishcheck/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Options - необязательные части маршрутизатора.
type Options struct {
	// PredictProxy монтируется на POST /predict, если не nil.
	PredictProxy http.Handler
	// StaticDir раздаётся по /static/, если не пуст.
	StaticDir string
}

// NewRouter создаёт и настраивает маршрутизатор
func NewRouter(handler *handlers.Handler, logger *zap.Logger, opts Options) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.LoggingMiddleware(logger)) // Подключаем логирование

	// Прокси не сжимаем: бэкенд сам договаривается о кодировании.
	if opts.PredictProxy != nil {
		r.Method(http.MethodPost, "/predict", opts.PredictProxy)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.GzipMiddleware) // Gzip-сжатие

		r.Get("/", handler.Index)
		r.Post("/check", handler.SubmitForm)
		r.Post("/api/check", handler.APICheck)
		r.Get("/api/history", handler.HistoryList)
		r.Delete("/api/session", handler.ReleaseSession)
		r.Get("/ping", handler.Ping)

		if opts.StaticDir != "" {
			r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(opts.StaticDir))))
		}
	})

	return r
}
