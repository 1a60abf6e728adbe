package events

import "sync"

// Bus fans enrollment-change notifications out to per-course subscribers.
// Writers publish after every enrollment write; subscribers are expected to
// re-read the store, not to interpret the notification as a delta. Delivery
// is asynchronous and unordered relative to the write that caused it.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[uint]map[int]func(courseID uint)
}

func NewBus() *Bus {
	return &Bus{subs: make(map[uint]map[int]func(uint))}
}

// Subscribe registers fn for change notifications on one course and returns
// an unsubscribe function. Unsubscribing twice is harmless.
func (b *Bus) Subscribe(courseID uint, fn func(courseID uint)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	if b.subs[courseID] == nil {
		b.subs[courseID] = make(map[int]func(uint))
	}
	b.subs[courseID][id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[courseID], id)
	}
}

// Publish notifies every subscriber of the course. Each callback runs on its
// own goroutine so a slow subscriber cannot stall the publishing request.
func (b *Bus) Publish(courseID uint) {
	b.mu.Lock()
	fns := make([]func(uint), 0, len(b.subs[courseID]))
	for _, fn := range b.subs[courseID] {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		go fn(courseID)
	}
}

// Default is the process-wide bus the HTTP controllers publish to.
var Default = NewBus()

// Publish notifies Default's subscribers for the course.
func Publish(courseID uint) {
	Default.Publish(courseID)
}
