// Package events implements the time-triggered scheduler: one independent,
// ordered queue per named event type, each holding (action, next-fire-time,
// repeat, max) records (spec.md §4.5).
package events

import (
	"container/heap"
	"fmt"

	"github.com/mabescript/mabescript/pkg/ast"
	"github.com/sirupsen/logrus"
)

// TimedEvent is one scheduled action. Action is a borrowed pointer into the
// controller's persistent AST (spec.md §9 "Cycles": the scheduler never
// owns or frees it).
type TimedEvent struct {
	id       int
	Action   ast.Node
	NextFire float64
	Repeat   float64
	Max      float64 // < 0 means unbounded
}

// queue is a min-heap over (NextFire, id), the tie-break spec.md §4.5
// requires for same-time events.
type queue []*TimedEvent

func (q queue) Len() int { return len(q) }
func (q queue) Less(i, j int) bool {
	if q[i].NextFire != q[j].NextFire {
		return q[i].NextFire < q[j].NextFire
	}
	return q[i].id < q[j].id
}
func (q queue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *queue) Push(x interface{}) { *q = append(*q, x.(*TimedEvent)) }
func (q *queue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// eventQueue is one named event type's independent heap plus its own
// monotonic clock (spec.md §4.5: "State: ... a monotonic current_value").
type eventQueue struct {
	heap       queue
	current    float64
	nextID     int
}

// Scheduler holds one eventQueue per registered event name.
type Scheduler struct {
	queues map[string]*eventQueue
	log    *logrus.Logger
}

// New builds an empty scheduler. log receives event-evaluation failures
// (spec.md §7 "Event error": logged, queue continues).
func New(log *logrus.Logger) *Scheduler {
	if log == nil {
		log = logrus.New()
	}
	return &Scheduler{queues: make(map[string]*eventQueue), log: log}
}

// RegisterEventType ensures name has a queue, creating one (with
// current_value starting at 0) if this is the first time it's seen.
func (s *Scheduler) RegisterEventType(name string) {
	if _, ok := s.queues[name]; !ok {
		s.queues[name] = &eventQueue{}
	}
}

func (s *Scheduler) queueFor(name string) *eventQueue {
	s.RegisterEventType(name)
	return s.queues[name]
}

// Schedule implements spec.md §4.5's four-step `schedule` algorithm.
func (s *Scheduler) Schedule(name string, action ast.Node, first, repeat, max float64) {
	q := s.queueFor(name)

	if first < q.current && repeat == 0 {
		return // single-shot that already missed
	}
	if first < q.current && repeat > 0 {
		behind := q.current - first
		steps := behind / repeat
		whole := float64(int64(steps))
		if whole < steps {
			whole++
		}
		first += whole * repeat
	}
	if max >= 0 && first > max {
		return
	}

	ev := &TimedEvent{id: q.nextID, Action: action, NextFire: first, Repeat: repeat, Max: max}
	q.nextID++
	heap.Push(&q.heap, ev)
}

// evalFn is supplied by the engine: it evaluates action and reports whether
// the result was an error entry (for logging only; the queue never stops
// on an error, spec.md §7).
type evalFn func(action ast.Node) error

// UpdateValue advances the named event type's clock to newValue, firing
// (in (next_fire_time, id) order) every due event of that type and reinserting
// it unless it is single-shot or has exceeded its max (spec.md §4.5
// `update_value`).
func (s *Scheduler) UpdateValue(name string, newValue float64, eval evalFn) {
	q := s.queueFor(name)

	for q.heap.Len() > 0 && q.heap[0].NextFire <= newValue {
		ev := heap.Pop(&q.heap).(*TimedEvent)

		if err := eval(ev.Action); err != nil {
			s.log.WithFields(logrus.Fields{"event": name, "id": ev.id}).Warn(err)
		}

		ev.NextFire += ev.Repeat
		if ev.Repeat == 0 || (ev.Max >= 0 && ev.NextFire > ev.Max) {
			continue
		}
		heap.Push(&q.heap, ev)
	}
	q.current = newValue
}

// TriggerAll evaluates every queued action across every event type exactly
// once, then clears every queue (spec.md §4.5 `trigger_all`). Within one
// event type actions run in heap order; the order across types is not
// defined.
func (s *Scheduler) TriggerAll(eval evalFn) {
	for name := range s.queues {
		s.TriggerName(name, eval)
	}
}

// TriggerName evaluates every queued action of one named event type exactly
// once, ignoring fire times, then clears that type's queue (grounded on
// ConfigEvents::TriggerAll, invoked per name via Config::TriggerEvents).
func (s *Scheduler) TriggerName(name string, eval evalFn) {
	q := s.queueFor(name)
	for q.heap.Len() > 0 {
		ev := heap.Pop(&q.heap).(*TimedEvent)
		if err := eval(ev.Action); err != nil {
			s.log.WithFields(logrus.Fields{"event": name, "id": ev.id}).Warn(err)
		}
	}
}

// Pending is one queued event as reported by Scheduler.Pending, for
// serialization (spec.md §6 "Event queue is emitted after the root scope").
type Pending struct {
	EventName string
	Action    ast.Node
	First     float64
	Repeat    float64
	Max       float64
}

// Pending returns a snapshot of every queued event across all types.
func (s *Scheduler) Pending() []Pending {
	var out []Pending
	for name, q := range s.queues {
		for _, ev := range q.heap {
			out = append(out, Pending{EventName: name, Action: ev.Action, First: ev.NextFire, Repeat: ev.Repeat, Max: ev.Max})
		}
	}
	return out
}

// Header renders the "@Name(first[, repeat[, max]]) " prefix of one pending
// event's line. It does not render the action; the engine's Write follows
// the header with ";" only, so the action is not written out.
func (p Pending) Header() string {
	switch {
	case p.Max >= 0:
		return fmt.Sprintf("@%s(%s, %s, %s) ", p.EventName, trimNum(p.First), trimNum(p.Repeat), trimNum(p.Max))
	case p.Repeat != 0:
		return fmt.Sprintf("@%s(%s, %s) ", p.EventName, trimNum(p.First), trimNum(p.Repeat))
	default:
		return fmt.Sprintf("@%s(%s) ", p.EventName, trimNum(p.First))
	}
}

func trimNum(v float64) string {
	return fmt.Sprintf("%g", v)
}
