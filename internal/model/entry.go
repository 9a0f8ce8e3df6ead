package model

import "time"

// Entry представляет запись журнала проверок.
type Entry struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	State     State     `json:"state"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
