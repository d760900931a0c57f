package notify

import "sync"

// MemoryBus is the in-process Bus used when core and presentation layer share
// a process. Handlers run inline on the publishing goroutine.
type MemoryBus struct {
	mu            sync.Mutex
	nextID        int
	subscriptions map[Kind][]*subscription
}

type subscription struct {
	id      int
	handler func(Message)
	once    bool
	spent   bool
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{subscriptions: map[Kind][]*subscription{}}
}

func (b *MemoryBus) Publish(msg Message) {
	b.mu.Lock()
	matched := b.subscriptions[msg.Kind]
	handlers := make([]func(Message), 0, len(matched))
	for _, sub := range matched {
		if sub.spent {
			continue
		}
		if sub.once {
			sub.spent = true
		}
		handlers = append(handlers, sub.handler)
	}
	b.compact(msg.Kind)
	b.mu.Unlock()

	// Dispatch outside the lock so handlers can publish or subscribe.
	for _, handler := range handlers {
		handler(msg)
	}
}

func (b *MemoryBus) Subscribe(kind Kind, handler func(Message)) func() {
	return b.subscribe(kind, handler, false)
}

func (b *MemoryBus) SubscribeOnce(kind Kind, handler func(Message)) func() {
	return b.subscribe(kind, handler, true)
}

func (b *MemoryBus) subscribe(kind Kind, handler func(Message), once bool) func() {
	if handler == nil {
		return func() {}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &subscription{id: b.nextID, handler: handler, once: once}
	b.subscriptions[kind] = append(b.subscriptions[kind], sub)

	id := sub.id
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for _, candidate := range b.subscriptions[kind] {
			if candidate.id == id {
				candidate.spent = true
			}
		}
		b.compact(kind)
	}
}

// compact drops spent subscriptions; callers must hold b.mu.
func (b *MemoryBus) compact(kind Kind) {
	remaining := b.subscriptions[kind][:0]
	for _, sub := range b.subscriptions[kind] {
		if !sub.spent {
			remaining = append(remaining, sub)
		}
	}
	if len(remaining) == 0 {
		delete(b.subscriptions, kind)
		return
	}
	b.subscriptions[kind] = remaining
}
