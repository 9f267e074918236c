package notify

import (
	"sync"
	"time"
)

// Level важность уведомления
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notification неблокирующее сообщение для пользователя о результате операции
type Notification struct {
	Level   Level
	Op      string // list, create, update, delete, ...
	NoteID  string
	Message string
	Err     error
	At      time.Time
}

// subscriberBuffer размер буфера канала подписчика
const subscriberBuffer = 16

// Hub управляет подписчиками на уведомления
type Hub struct {
	subscribers map[chan Notification]struct{}
	mu          sync.RWMutex
}

// NewHub создает новый экземпляр Hub
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[chan Notification]struct{}),
	}
}

// Subscribe добавляет нового подписчика и возвращает канал для получения уведомлений
func (h *Hub) Subscribe() <-chan Notification {
	ch := make(chan Notification, subscriberBuffer)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subscribers[ch] = struct{}{}
	return ch
}

// Unsubscribe удаляет подписчика и закрывает его канал
func (h *Hub) Unsubscribe(sub <-chan Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subscribers {
		if ch == sub {
			close(ch)
			delete(h.subscribers, ch)
			return
		}
	}
}

// Close отписывает всех подписчиков
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subscribers {
		close(ch)
		delete(h.subscribers, ch)
	}
}

// Publish отправляет уведомление всем подписчикам.
// Если канал подписчика переполнен, уведомление для него пропускается.
func (h *Hub) Publish(n Notification) {
	if n.At.IsZero() {
		n.At = time.Now()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subscribers {
		select {
		case ch <- n:
		default:
		}
	}
}
