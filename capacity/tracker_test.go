package capacity

import (
	"cocina/events"
	"cocina/models"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource serves a mutable enrollment set per course
type fakeSource struct {
	mu   sync.Mutex
	rows map[uint][]models.Enrollment
	err  error
}

func (s *fakeSource) set(courseID uint, rows []models.Enrollment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rows == nil {
		s.rows = make(map[uint][]models.Enrollment)
	}
	s.rows[courseID] = rows
}

func (s *fakeSource) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *fakeSource) Enrollments(courseID uint) ([]models.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.rows[courseID], nil
}

// recordingSink collects every pushed patch
type recordingSink struct {
	mu      sync.Mutex
	patches []Snapshot
}

func (s *recordingSink) Apply(patch Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patches = append(s.patches, patch)
}

func (s *recordingSink) latest() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.patches) == 0 {
		return Snapshot{}, false
	}
	return s.patches[len(s.patches)-1], true
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.patches)
}

func newCourse(id uint, capacity int) models.Course {
	course := models.Course{Capacity: capacity}
	course.ID = id
	return course
}

func TestTrackPushesInitialPatch(t *testing.T) {
	source := &fakeSource{}
	source.set(1, []models.Enrollment{{Status: models.EnrollmentPending}})
	sink := &recordingSink{}
	reg := NewRegistry(source, events.NewBus(), sink)

	reg.Track(newCourse(1, 3))

	patch, ok := sink.latest()
	require.True(t, ok)
	assert.Equal(t, 1, patch.Occupied)
	assert.Equal(t, 2, patch.Available)
	assert.False(t, patch.IsFull)

	snap, ok := reg.Snapshot(1)
	require.True(t, ok)
	assert.Equal(t, patch, snap)
}

func TestCancellationFreesSeatAtBoundary(t *testing.T) {
	source := &fakeSource{}
	source.set(1, []models.Enrollment{
		{Status: models.EnrollmentPending},
		{Status: models.EnrollmentConfirmed},
	})
	sink := &recordingSink{}
	bus := events.NewBus()
	reg := NewRegistry(source, bus, sink)

	reg.Track(newCourse(1, 2))
	patch, _ := sink.latest()
	require.True(t, patch.IsFull)

	// One enrollment flips pending -> cancelled
	source.set(1, []models.Enrollment{
		{Status: models.EnrollmentCancelled},
		{Status: models.EnrollmentConfirmed},
	})
	bus.Publish(1)

	assert.Eventually(t, func() bool {
		p, ok := sink.latest()
		return ok && p.Occupied == 1 && !p.IsFull
	}, time.Second, 5*time.Millisecond)
}

func TestStopAllIgnoresLateNotifications(t *testing.T) {
	source := &fakeSource{}
	source.set(1, nil)
	sink := &recordingSink{}
	bus := events.NewBus()
	reg := NewRegistry(source, bus, sink)

	reg.Track(newCourse(1, 2))
	before := sink.count()

	reg.StopAll()
	reg.StopAll() // idempotent

	bus.Publish(1)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, before, sink.count())

	_, ok := reg.Snapshot(1)
	assert.True(t, ok, "last-known snapshot survives teardown")
}

func TestBrokenSourceDegradesToLastKnown(t *testing.T) {
	source := &fakeSource{}
	source.set(1, []models.Enrollment{{Status: models.EnrollmentPaid}})
	sink := &recordingSink{}
	bus := events.NewBus()
	reg := NewRegistry(source, bus, sink)

	reg.Track(newCourse(1, 5))
	snapBefore, ok := reg.Snapshot(1)
	require.True(t, ok)

	source.fail(errors.New("stream broke"))
	bus.Publish(1)
	time.Sleep(50 * time.Millisecond)

	snapAfter, ok := reg.Snapshot(1)
	require.True(t, ok)
	assert.Equal(t, snapBefore, snapAfter)
}

func TestReTrackAfterStopAllResubscribes(t *testing.T) {
	source := &fakeSource{}
	source.set(1, nil)
	sink := &recordingSink{}
	bus := events.NewBus()
	reg := NewRegistry(source, bus, sink)

	reg.Track(newCourse(1, 2))
	reg.StopAll()
	reg.Track(newCourse(1, 2))

	source.set(1, []models.Enrollment{{Status: models.EnrollmentPending}})
	bus.Publish(1)

	assert.Eventually(t, func() bool {
		p, ok := sink.latest()
		return ok && p.Occupied == 1
	}, time.Second, 5*time.Millisecond)
}
