package model

// State - состояние области результата.
type State string

const (
	StateIdle     State = "idle"
	StateLoading  State = "loading"
	StatePhishing State = "phishing"
	StateSafe     State = "safe"
	StateError    State = "error"
	// StateFailed не отображается: так журнал помечает сбой транспорта.
	StateFailed State = "failed"
)

// CSS-классы заголовка результата.
const (
	ClassPhishing = "phishing"
	ClassSafe     = "aman"
)

// Result - то, что рендерер выводит в области результата.
type Result struct {
	State       State  `json:"state"`
	Headline    string `json:"headline"`
	Description string `json:"description"`
	Class       string `json:"class"`
}

// View - снимок отображаемого состояния одного экземпляра UI.
type View struct {
	Busy          bool   `json:"busy"`
	ResultVisible bool   `json:"result_visible"`
	Result        Result `json:"result"`
	Alert         string `json:"alert,omitempty"`
	// Input - последнее введённое значение поля URL.
	Input string `json:"input,omitempty"`
}

// State возвращает текущее состояние машины idle → loading → результат.
func (v View) State() State {
	switch {
	case v.Busy:
		return StateLoading
	case v.ResultVisible:
		return v.Result.State
	default:
		return StateIdle
	}
}
