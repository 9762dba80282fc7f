package event

import "sync"

type Handler func(payload interface{})

// Bus is a small in-process pub/sub used to decouple the fairness core from
// audit, metrics and the live feed.
type Bus struct {
	handlers map[string][]Handler
	mu       sync.RWMutex
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[string][]Handler),
	}
}

func (b *Bus) Subscribe(event string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[event] = append(b.handlers[event], handler)
}

// Publish delivers the payload to every subscriber of the event, each on its
// own goroutine. Delivery order across subscribers is not guaranteed.
func (b *Bus) Publish(event string, payload interface{}) {
	b.mu.RLock()
	hs := b.handlers[event]
	b.mu.RUnlock()

	for _, h := range hs {
		go h(payload)
	}
}
