package services

import "sync"

// observers is a list of callbacks notified synchronously, in subscription
// order, with a snapshot of the new state.
type observers[T any] struct {
	// dispatch serialises deliveries; the owning container takes it while
	// still holding its own write lock.
	dispatch sync.Mutex

	mu     sync.Mutex
	nextID int
	subs   []subscription[T]
}

type subscription[T any] struct {
	id int
	fn func(T)
}

// subscribe registers fn and returns a function that removes it again.
func (o *observers[T]) subscribe(fn func(T)) func() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.nextID++
	id := o.nextID
	o.subs = append(o.subs, subscription[T]{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			defer o.mu.Unlock()
			for i, s := range o.subs {
				if s.id == id {
					o.subs = append(o.subs[:i:i], o.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// notify calls every current observer with state. The list is copied first so
// observers may unsubscribe from inside the callback.
func (o *observers[T]) notify(state T) {
	o.mu.Lock()
	subs := make([]subscription[T], len(o.subs))
	copy(subs, o.subs)
	o.mu.Unlock()

	for _, s := range subs {
		s.fn(state)
	}
}
