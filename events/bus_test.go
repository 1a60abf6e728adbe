package events

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPublishReachesOnlySubscribedCourse(t *testing.T) {
	bus := NewBus()

	var hits1, hits2 int32
	bus.Subscribe(1, func(uint) { atomic.AddInt32(&hits1, 1) })
	bus.Subscribe(2, func(uint) { atomic.AddInt32(&hits2, 1) })

	bus.Publish(1)

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&hits1) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits2))
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus()

	var hits int32
	unsub := bus.Subscribe(1, func(uint) { atomic.AddInt32(&hits, 1) })

	bus.Publish(1)
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&hits) == 1
	}, time.Second, 5*time.Millisecond)

	unsub()
	unsub() // second call is harmless

	bus.Publish(1)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}
