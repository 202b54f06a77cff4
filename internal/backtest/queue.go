package backtest

import (
	"container/heap"

	"github.com/bmackie-quant/newsmomentum-backtest/internal/market"
)

// queuedEvent pairs an Event with a monotonic sequence number so the heap
// can break timestamp ties FIFO. container/heap's interface isn't naturally
// stable, and reproducible results demand FIFO ordering among equal
// timestamps — the sequence number is a secondary sort key that makes Pop
// deterministic regardless of how the underlying heap reorders elements.
type queuedEvent struct {
	event market.Event
	seq   uint64
}

type eventHeap []queuedEvent

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].event.Ts != h[j].event.Ts {
		return h[i].event.Ts < h[j].event.Ts
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(queuedEvent))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// eventQueue is a timestamp-ordered, FIFO-on-ties priority queue of events.
type eventQueue struct {
	heap eventHeap
	next uint64
}

func newEventQueue() *eventQueue {
	q := &eventQueue{}
	heap.Init(&q.heap)
	return q
}

// Push enqueues an event, stamping it with the next sequence number.
func (q *eventQueue) Push(e market.Event) {
	heap.Push(&q.heap, queuedEvent{event: e, seq: q.next})
	q.next++
}

// Pop removes and returns the minimum-timestamp, earliest-enqueued event.
// The second return is false when the queue is empty.
func (q *eventQueue) Pop() (market.Event, bool) {
	if q.heap.Len() == 0 {
		return market.Event{}, false
	}
	item := heap.Pop(&q.heap).(queuedEvent)
	return item.event, true
}

// Len reports the number of events currently queued.
func (q *eventQueue) Len() int { return q.heap.Len() }
