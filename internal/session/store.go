package session

import (
	"errors"
	"sync"
	"time"

	"github.com/Totarae/phishcheck/internal/checker"
	"go.uber.org/zap"
)

// DefaultLimit - сколько экземпляров Store держит по умолчанию.
const DefaultLimit = 10000

// ErrStoreFull - лимит исчерпан, и все экземпляры заняты запросами.
var ErrStoreFull = errors.New("session store is full")

// Instance - один экземпляр UI: Checker и его Board.
type Instance struct {
	Checker *checker.Checker
	Board   *checker.Board

	lastSeen time.Time
}

// Factory собирает Checker для нового Board.
type Factory func(board *checker.Board) *checker.Checker

// Store хранит экземпляры по идентификатору сессии.
type Store struct {
	mu        sync.Mutex
	instances map[string]*Instance
	factory   Factory
	ttl       time.Duration
	limit     int
	now       func() time.Time
	logger    *zap.Logger
}

// NewStore создаёт хранилище. ttl == 0 отключает вытеснение.
func NewStore(factory Factory, ttl time.Duration, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		instances: make(map[string]*Instance),
		factory:   factory,
		ttl:       ttl,
		limit:     DefaultLimit,
		now:       time.Now,
		logger:    logger,
	}
}

// SetLimit меняет максимальное число экземпляров. n <= 0 снимает ограничение.
func (s *Store) SetLimit(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limit = n
}

// Open возвращает экземпляр сессии, создавая его при первом обращении.
// При достижении лимита вытесняется самый давний простаивающий экземпляр.
func (s *Store) Open(id string) (*Instance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inst, ok := s.instances[id]
	if !ok {
		if s.limit > 0 && len(s.instances) >= s.limit && !s.evictOldest() {
			return nil, ErrStoreFull
		}
		board := checker.NewBoard()
		inst = &Instance{Checker: s.factory(board), Board: board}
		s.instances[id] = inst
		s.logger.Debug("session opened", zap.String("session", id))
	}
	inst.lastSeen = s.now()
	return inst, nil
}

// evictOldest удаляет самый давно использованный экземпляр без запроса в полёте.
// Вызывается под s.mu.
func (s *Store) evictOldest() bool {
	var (
		oldestID string
		oldest   *Instance
	)
	for id, inst := range s.instances {
		if inst.Checker.Busy() {
			continue
		}
		if oldest == nil || inst.lastSeen.Before(oldest.lastSeen) {
			oldestID, oldest = id, inst
		}
	}
	if oldest == nil {
		return false
	}
	delete(s.instances, oldestID)
	s.logger.Debug("session evicted", zap.String("session", oldestID))
	return true
}

// Get возвращает экземпляр, не создавая его.
func (s *Store) Get(id string) (*Instance, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inst, ok := s.instances[id]
	return inst, ok
}

// Release уничтожает экземпляр.
func (s *Store) Release(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.instances[id]; !ok {
		return false
	}
	delete(s.instances, id)
	s.logger.Debug("session released", zap.String("session", id))
	return true
}

// Sweep удаляет экземпляры, простаивающие дольше ttl.
// Экземпляры с запросом в полёте не трогаются.
func (s *Store) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	deadline := s.now().Add(-s.ttl)
	removed := 0
	for id, inst := range s.instances {
		if inst.lastSeen.Before(deadline) && !inst.Checker.Busy() {
			delete(s.instances, id)
			removed++
		}
	}
	if removed > 0 {
		s.logger.Info("Удалены неактивные сессии", zap.Int("count", removed))
	}
	return removed
}

// Len возвращает число живых экземпляров.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.instances)
}
