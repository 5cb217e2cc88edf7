package provider

import "sync"

// Emitter is a minimal event emitter backing the provider's EIP-1193
// event surface (accountsChanged, chainChanged, disconnect).
type Emitter struct {
	mu        sync.Mutex
	nextID    int
	listeners map[string]map[int]func(payload any)
}

func NewEmitter() *Emitter {
	return &Emitter{
		listeners: map[string]map[int]func(payload any){},
	}
}

// On registers fn for an event and returns its unsubscribe func.
func (e *Emitter) On(event string, fn func(payload any)) func() {
	e.mu.Lock()
	e.nextID++
	id := e.nextID
	if e.listeners[event] == nil {
		e.listeners[event] = map[int]func(payload any){}
	}
	e.listeners[event][id] = fn
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		delete(e.listeners[event], id)
		e.mu.Unlock()
	}
}

// Emit invokes every listener of the event with the payload.
func (e *Emitter) Emit(event string, payload any) {
	e.mu.Lock()
	fns := make([]func(payload any), 0, len(e.listeners[event]))
	for _, fn := range e.listeners[event] {
		fns = append(fns, fn)
	}
	e.mu.Unlock()

	for _, fn := range fns {
		fn(payload)
	}
}
