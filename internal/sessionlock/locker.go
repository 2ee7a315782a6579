// Package sessionlock линеаризует операции в пределах одной сессии покупателя.
package sessionlock

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

// Locker — набор мьютексов по ключу. Запись удаляется, как только её
// никто не держит и никто не ждёт, поэтому память не растёт с числом сессий.
type Locker struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// New возвращает пустой Locker.
func New() *Locker {
	return &Locker{entries: make(map[string]*entry)}
}

// Lock захватывает мьютекс ключа и возвращает функцию освобождения.
func (l *Locker) Lock(key string) (unlock func()) {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{}
		l.entries[key] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Unlock()

			l.mu.Lock()
			e.refs--
			if e.refs == 0 {
				delete(l.entries, key)
			}
			l.mu.Unlock()
		})
	}
}

// WithLock выполняет fn под мьютексом ключа.
func (l *Locker) WithLock(key string, fn func() error) error {
	unlock := l.Lock(key)
	defer unlock()
	return fn()
}

// Len возвращает число активных ключей.
func (l *Locker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
