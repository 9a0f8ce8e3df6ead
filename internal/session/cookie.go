// Package session привязывает браузер к его собственному экземпляру UI проверки.
package session

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
)

const (
	cookieName   = "phishcheck_session"
	cookieMaxAge = 24 * 60 * 60 // сутки
)

// Manager выдаёт и проверяет подписанную куку с идентификатором сессии.
type Manager struct {
	codec *securecookie.SecureCookie
}

// NewManager создаёт Manager. Пустой ключ заменяется случайным:
// сессии тогда не переживают перезапуск.
func NewManager(hashKey []byte) *Manager {
	if len(hashKey) == 0 {
		hashKey = securecookie.GenerateRandomKey(32)
	}
	codec := securecookie.New(hashKey, nil)
	codec.MaxAge(cookieMaxAge)
	return &Manager{codec: codec}
}

// issueCookie создаёт новую сессию и пишет куку.
func (m *Manager) issueCookie(w http.ResponseWriter) (string, error) {
	id := uuid.NewString()
	value, err := m.codec.Encode(cookieName, id)
	if err != nil {
		return "", err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   cookieMaxAge,
		Expires:  time.Now().Add(cookieMaxAge * time.Second),
	})
	return id, nil
}

// GetOrSetID возвращает идентификатор сессии из куки либо выдаёт новый.
func (m *Manager) GetOrSetID(w http.ResponseWriter, r *http.Request) (string, error) {
	if id, ok := m.ID(r); ok {
		return id, nil
	}
	return m.issueCookie(w)
}

// ID проверяет куку без выдачи новой.
func (m *Manager) ID(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	var id string
	if err := m.codec.Decode(cookieName, cookie.Value, &id); err != nil {
		return "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

// Clear удаляет куку у клиента.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// SignedValue возвращает значение куки для id (для тестов и клиентов API).
func (m *Manager) SignedValue(id string) (string, error) {
	return m.codec.Encode(cookieName, id)
}

// CookieName возвращает имя куки сессии.
func CookieName() string {
	return cookieName
}
