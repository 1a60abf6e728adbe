package capacity

import (
	"cocina/events"
	"cocina/models"
	"log"
	"sync"
)

// PatchSink receives seat patches for courses a Registry is tracking.
// Implementations must tolerate being called from multiple goroutines.
type PatchSink interface {
	Apply(patch Snapshot)
}

// SinkFunc adapts a function to the PatchSink interface
type SinkFunc func(patch Snapshot)

func (f SinkFunc) Apply(patch Snapshot) { f(patch) }

// Registry keeps a live seat view per tracked course. Each Track call
// subscribes the course on the change bus; every notification triggers a full
// re-read of the course's enrollments and a recomputed patch pushed to the
// sink. StopAll tears every subscription down and is safe to call at any
// time, including while a notification is still in flight: callbacks carry
// the generation they were registered under and are dropped once the
// registry has moved on.
type Registry struct {
	source Source
	bus    *events.Bus
	sink   PatchSink

	mu         sync.Mutex
	generation uint64
	unsubs     []func()
	courses    map[uint]models.Course
	last       map[uint]Snapshot
}

func NewRegistry(source Source, bus *events.Bus, sink PatchSink) *Registry {
	return &Registry{
		source:  source,
		bus:     bus,
		sink:    sink,
		courses: make(map[uint]models.Course),
		last:    make(map[uint]Snapshot),
	}
}

// Track starts a live seat view for the course and pushes an initial patch.
// Tracking the same course again replaces the stored course record but keeps
// a single subscription.
func (r *Registry) Track(course models.Course) {
	r.mu.Lock()
	gen := r.generation
	_, already := r.courses[course.ID]
	r.courses[course.ID] = course
	if !already {
		unsub := r.bus.Subscribe(course.ID, func(courseID uint) {
			r.refresh(courseID, gen)
		})
		r.unsubs = append(r.unsubs, unsub)
	}
	r.mu.Unlock()

	r.refresh(course.ID, gen)
}

// StopAll cancels every subscription. Idempotent; a second call is a no-op.
// Late callbacks from subscriptions registered before the call are ignored.
func (r *Registry) StopAll() {
	r.mu.Lock()
	unsubs := r.unsubs
	r.unsubs = nil
	r.courses = make(map[uint]models.Course)
	r.generation++
	r.mu.Unlock()

	for _, unsub := range unsubs {
		unsub()
	}
}

// Snapshot returns the last pushed seat view for a course, if any. On a
// broken source the value degrades to the last successful recompute.
func (r *Registry) Snapshot(courseID uint) (Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap, ok := r.last[courseID]
	return snap, ok
}

func (r *Registry) refresh(courseID uint, gen uint64) {
	r.mu.Lock()
	course, tracked := r.courses[courseID]
	stale := gen != r.generation
	r.mu.Unlock()

	if stale || !tracked {
		return
	}

	enrollments, err := r.source.Enrollments(courseID)
	if err != nil {
		// Degrade to the last-known snapshot; the next notification will
		// try again. No automatic retry.
		log.Printf("[CAPACITY] refresh failed for course %d: %v", courseID, err)
		return
	}

	patch := Compute(course, enrollments)

	r.mu.Lock()
	if gen != r.generation {
		r.mu.Unlock()
		return
	}
	r.last[courseID] = patch
	r.mu.Unlock()

	r.sink.Apply(patch)
}
