package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Totarae/phishcheck/internal/checker"
	"github.com/Totarae/phishcheck/internal/journal"
	"github.com/Totarae/phishcheck/internal/locale"
	"github.com/Totarae/phishcheck/internal/model"
	"github.com/Totarae/phishcheck/internal/page"
	"github.com/Totarae/phishcheck/internal/session"
	"go.uber.org/zap"
)

// History отдаёт последние записи журнала.
type History interface {
	Recent(ctx context.Context, limit int) ([]model.Entry, error)
}

// Handler обслуживает веб-интерфейс проверки URL.
type Handler struct {
	sessions *session.Manager
	store    *session.Store
	texts    *locale.Texts
	history  History
	logger   *zap.Logger

	StaticPrefix string
	WASM         bool
}

// NewHandler создаёт Handler. history может быть nil, если журнал отключён.
func NewHandler(sessions *session.Manager, store *session.Store, texts *locale.Texts, history History, logger *zap.Logger) *Handler {
	if texts == nil {
		texts = locale.Default()
	}
	return &Handler{
		sessions: sessions,
		store:    store,
		texts:    texts,
		history:  history,
		logger:   logger,
	}
}

// CheckRequest - тело POST /api/check.
type CheckRequest struct {
	URL string `json:"url"`
}

// CheckResponse - ответ POST /api/check: состояние экземпляра UI после цикла.
type CheckResponse struct {
	State model.State `json:"state"`
	model.View
}

func (h *Handler) instance(w http.ResponseWriter, r *http.Request) (*session.Instance, error) {
	id, err := h.sessions.GetOrSetID(w, r)
	if err != nil {
		return nil, err
	}
	return h.store.Open(id)
}

// sessionError отвечает на ошибку получения экземпляра.
func (h *Handler) sessionError(res http.ResponseWriter, err error) {
	if errors.Is(err, session.ErrStoreFull) {
		h.logger.Warn("Лимит сессий исчерпан", zap.Error(err))
		http.Error(res, "Service Unavailable", http.StatusServiceUnavailable)
		return
	}
	h.logger.Error("Ошибка сессии", zap.Error(err))
	http.Error(res, "Internal Server Error", http.StatusInternalServerError)
}

// Index рисует страницу с текущим состоянием экземпляра.
// Без сессии страница пустая: экземпляр появляется только при первой проверке.
func (h *Handler) Index(res http.ResponseWriter, req *http.Request) {
	var view model.View
	if id, ok := h.sessions.ID(req); ok {
		if inst, ok := h.store.Get(id); ok {
			view = inst.Board.Snapshot()
			view.Alert = inst.Board.TakeAlert()
		}
	}

	res.Header().Set("Content-Type", "text/html; charset=utf-8")
	res.Header().Set("Cache-Control", "no-store")
	p := page.Page{Texts: h.texts, View: view, StaticPrefix: h.StaticPrefix, WASM: h.WASM}
	if err := p.Render(res); err != nil {
		h.logger.Error("Ошибка рендеринга страницы", zap.Error(err))
	}
}

// SubmitForm выполняет один цикл из HTML-формы и перенаправляет на страницу.
func (h *Handler) SubmitForm(res http.ResponseWriter, req *http.Request) {
	if err := req.ParseForm(); err != nil {
		http.Error(res, "BadRequest", http.StatusBadRequest)
		return
	}

	inst, err := h.instance(res, req)
	if err != nil {
		h.sessionError(res, err)
		return
	}

	raw := req.PostForm.Get("url")
	inst.Board.Remember(raw)
	_, err = inst.Checker.Submit(req.Context(), raw)
	h.logOutcome(raw, err)

	http.Redirect(res, req, "/", http.StatusSeeOther)
}

// APICheck выполняет один цикл и возвращает состояние в JSON.
func (h *Handler) APICheck(res http.ResponseWriter, req *http.Request) {
	var body CheckRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		http.Error(res, "invalid JSON", http.StatusBadRequest)
		return
	}

	inst, err := h.instance(res, req)
	if err != nil {
		h.sessionError(res, err)
		return
	}

	inst.Board.Remember(body.URL)
	_, err = inst.Checker.Submit(req.Context(), body.URL)
	h.logOutcome(body.URL, err)

	status := http.StatusOK
	switch {
	case err == nil:
	case errors.Is(err, checker.ErrEmptyURL):
		status = http.StatusBadRequest
	case errors.Is(err, checker.ErrInFlight):
		status = http.StatusConflict
	default:
		status = http.StatusBadGateway
	}

	view := inst.Board.Snapshot()
	view.Alert = inst.Board.TakeAlert()
	writeJSON(res, status, CheckResponse{State: view.State(), View: view})
}

// ReleaseSession уничтожает экземпляр вызывающего и удаляет куку.
func (h *Handler) ReleaseSession(res http.ResponseWriter, req *http.Request) {
	if id, ok := h.sessions.ID(req); ok {
		h.store.Release(id)
	}
	h.sessions.Clear(res)
	res.WriteHeader(http.StatusNoContent)
}

// HistoryList отдаёт последние записи журнала.
func (h *Handler) HistoryList(res http.ResponseWriter, req *http.Request) {
	if h.history == nil {
		http.Error(res, journal.ErrDisabled.Error(), http.StatusNotFound)
		return
	}

	limit := journal.DefaultLimit
	if v := req.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(res, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	entries, err := h.history.Recent(req.Context(), limit)
	if err != nil {
		h.logger.Error("Ошибка чтения журнала", zap.Error(err))
		http.Error(res, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []model.Entry{}
	}
	writeJSON(res, http.StatusOK, entries)
}

// Ping - проверка живости.
func (h *Handler) Ping(res http.ResponseWriter, _ *http.Request) {
	res.Header().Set("Content-Type", "text/plain")
	res.WriteHeader(http.StatusOK)
	_, _ = res.Write([]byte("ok"))
}

func (h *Handler) logOutcome(raw string, err error) {
	switch {
	case err == nil:
	case errors.Is(err, checker.ErrEmptyURL), errors.Is(err, checker.ErrInFlight):
		h.logger.Debug("check rejected", zap.String("input", raw), zap.Error(err))
	default:
		h.logger.Warn("check failed", zap.String("input", raw), zap.Error(err))
	}
}

func writeJSON(res http.ResponseWriter, status int, v any) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(status)
	_ = json.NewEncoder(res).Encode(v)
}
