package checker

import (
	"sync"

	"github.com/Totarae/phishcheck/internal/model"
)

//go:generate mockgen -source=display.go -destination=../mocks/display_mock.go -package=mocks

// Display - поверхность UI, на которую выводится цикл проверки:
// кнопка-триггер, область результата и всплывающее предупреждение.
type Display interface {
	// SetBusy блокирует триггер и включает индикатор загрузки.
	SetBusy(busy bool)
	HideResult()
	ShowResult(r model.Result)
	Alert(msg string)
}

// Board хранит состояние отображения в памяти.
// Используется веб-сессиями и тестами.
type Board struct {
	mu   sync.RWMutex
	view model.View
}

// NewBoard создаёт пустой Board в состоянии idle.
func NewBoard() *Board {
	return &Board{}
}

func (b *Board) SetBusy(busy bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.view.Busy = busy
}

func (b *Board) HideResult() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.view.ResultVisible = false
}

func (b *Board) ShowResult(r model.Result) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.view.Result = r
	b.view.ResultVisible = true
}

// Alert запоминает сообщение до следующего TakeAlert.
func (b *Board) Alert(msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.view.Alert = msg
}

// Remember сохраняет текст поля ввода, чтобы показать его после перерисовки.
func (b *Board) Remember(input string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.view.Input = input
}

// Snapshot возвращает копию текущего состояния.
func (b *Board) Snapshot() model.View {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.view
}

// TakeAlert возвращает предупреждение и сбрасывает его: оно показывается один раз.
func (b *Board) TakeAlert() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	msg := b.view.Alert
	b.view.Alert = ""
	return msg
}
