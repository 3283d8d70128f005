// Package alarm provides a cancellable scheduled-callback service: a
// min-heap of absolute fire times drained by a single goroutine. It stands
// in for a host alarm facility; entries are keyed, re-scheduling a key
// replaces the previous entry, and cancellation is idempotent.
package alarm

import (
	"container/heap"
	"sync"
	"time"
)

// Handler receives fired alarms. Handlers run on the scheduler goroutine,
// one at a time, in fire-time order.
type Handler func(key string, firedAt time.Time)

// Scheduler schedules one-shot and periodic callbacks at absolute times.
type Scheduler interface {
	// ScheduleAt arms a one-shot alarm. An existing alarm with the same
	// key is replaced, never duplicated.
	ScheduleAt(key string, at time.Time)

	// SchedulePeriodic arms an alarm that first fires at 'first' and then
	// every 'every' thereafter.
	SchedulePeriodic(key string, first time.Time, every time.Duration)

	// Cancel disarms the alarm with the given key. Cancelling an unknown
	// key is a no-op.
	Cancel(key string)

	// Stop shuts the scheduler down and waits for the run loop to exit.
	// Pending alarms are dropped.
	Stop()
}

type entry struct {
	key   string
	at    time.Time
	every time.Duration // 0 for one-shot
	index int           // heap index, -1 when removed
}

type entryHeap []*entry

func (h entryHeap) Len() int            { return len(h) }
func (h entryHeap) Less(i, j int) bool  { return h[i].at.Before(h[j].at) }
func (h entryHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *entryHeap) Push(x interface{}) { e := x.(*entry); e.index = len(*h); *h = append(*h, e) }
func (h *entryHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// HeapScheduler is the in-process Scheduler implementation.
type HeapScheduler struct {
	mu      sync.Mutex
	heap    entryHeap
	byKey   map[string]*entry
	handler Handler
	now     func() time.Time
	wake    chan struct{}
	done    chan struct{}
	stopped bool
	wg      sync.WaitGroup
}

// NewHeapScheduler starts a scheduler delivering fired alarms to handler.
func NewHeapScheduler(handler Handler) *HeapScheduler {
	return newHeapScheduler(handler, time.Now)
}

func newHeapScheduler(handler Handler, now func() time.Time) *HeapScheduler {
	s := &HeapScheduler{
		byKey:   make(map[string]*entry),
		handler: handler,
		now:     now,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	s.wg.Add(1)
	go s.run()
	return s
}

// ScheduleAt arms a one-shot alarm, replacing any existing entry for key.
func (s *HeapScheduler) ScheduleAt(key string, at time.Time) {
	s.schedule(key, at, 0)
}

// SchedulePeriodic arms a repeating alarm.
func (s *HeapScheduler) SchedulePeriodic(key string, first time.Time, every time.Duration) {
	s.schedule(key, first, every)
}

func (s *HeapScheduler) schedule(key string, at time.Time, every time.Duration) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	if old, ok := s.byKey[key]; ok && old.index >= 0 {
		heap.Remove(&s.heap, old.index)
	}
	e := &entry{key: key, at: at, every: every}
	s.byKey[key] = e
	heap.Push(&s.heap, e)
	s.mu.Unlock()
	s.kick()
}

// Cancel disarms an alarm. Unknown keys are ignored.
func (s *HeapScheduler) Cancel(key string) {
	s.mu.Lock()
	if e, ok := s.byKey[key]; ok {
		if e.index >= 0 {
			heap.Remove(&s.heap, e.index)
		}
		delete(s.byKey, key)
	}
	s.mu.Unlock()
	s.kick()
}

// Stop shuts down the run loop.
func (s *HeapScheduler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	close(s.done)
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *HeapScheduler) kick() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *HeapScheduler) run() {
	defer s.wg.Done()

	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for {
		s.mu.Lock()
		var wait time.Duration = time.Hour
		if len(s.heap) > 0 {
			wait = s.heap[0].at.Sub(s.now())
		}
		s.mu.Unlock()

		if wait <= 0 {
			s.fireDue()
			continue
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(wait)

		select {
		case <-s.done:
			return
		case <-s.wake:
		case <-timer.C:
			s.fireDue()
		}
	}
}

// fireDue pops every entry whose fire time has passed and invokes the
// handler outside the lock. Periodic entries are re-armed before the
// handler runs so a slow handler cannot skew the cadence.
func (s *HeapScheduler) fireDue() {
	for {
		s.mu.Lock()
		if s.stopped || len(s.heap) == 0 || s.heap[0].at.After(s.now()) {
			s.mu.Unlock()
			return
		}
		e := heap.Pop(&s.heap).(*entry)
		if cur, ok := s.byKey[e.key]; !ok || cur != e {
			// Cancelled or replaced between pop candidates.
			s.mu.Unlock()
			continue
		}
		if e.every > 0 {
			next := &entry{key: e.key, at: e.at.Add(e.every), every: e.every}
			s.byKey[e.key] = next
			heap.Push(&s.heap, next)
		} else {
			delete(s.byKey, e.key)
		}
		firedAt := e.at
		s.mu.Unlock()

		if s.handler != nil {
			s.handler(e.key, firedAt)
		}
	}
}
