package sim

import "time"

// minTaskStep bounds how often a periodic task can fire so a zero or
// negative interval cannot stall Advance.
const minTaskStep = time.Millisecond

// Task is a scheduled callback. now is the simulated time it fired at.
type Task func(now time.Duration)

// TaskID identifies a scheduled task.
type TaskID uint64

type scheduled struct {
	id       TaskID
	name     string
	due      time.Duration
	interval func() time.Duration // nil for one-shot tasks
	fn       Task
}

// Scheduler runs callbacks on simulated time. It replaces per-callback
// timers: everything a round needs while playing is registered here and
// torn down with a single Stop.
//
// Tasks fire in order of due time; ties fire in registration order.
// Not safe for concurrent use; a game owns one scheduler and drives it from
// its Step.
type Scheduler struct {
	now   time.Duration
	seq   TaskID
	tasks []*scheduled
}

// NewScheduler creates an empty scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Fixed returns an interval function with a constant period.
func Fixed(d time.Duration) func() time.Duration {
	return func() time.Duration { return d }
}

// Now returns the current simulated time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Every registers a periodic task. The interval is evaluated again after
// each run, so it may shrink over time (accelerating spawns).
func (s *Scheduler) Every(name string, interval func() time.Duration, fn Task) TaskID {
	s.seq++
	s.tasks = append(s.tasks, &scheduled{
		id:       s.seq,
		name:     name,
		due:      s.now + clampStep(interval()),
		interval: interval,
		fn:       fn,
	})
	return s.seq
}

// After registers a one-shot task.
func (s *Scheduler) After(name string, delay time.Duration, fn Task) TaskID {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	s.tasks = append(s.tasks, &scheduled{
		id:   s.seq,
		name: name,
		due:  s.now + delay,
		fn:   fn,
	})
	return s.seq
}

// Cancel removes a task. It returns false if the task already ran or was
// never registered.
func (s *Scheduler) Cancel(id TaskID) bool {
	for i, t := range s.tasks {
		if t.id == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Stop cancels every pending task. A Stop issued from inside a task also
// prevents any task still due in the current Advance from running.
func (s *Scheduler) Stop() {
	s.tasks = s.tasks[:0]
}

// Pending returns the number of registered tasks.
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// Has reports whether a task with the given name is registered.
func (s *Scheduler) Has(name string) bool {
	for _, t := range s.tasks {
		if t.name == name {
			return true
		}
	}
	return false
}

// Advance moves simulated time forward by dt, running every task that
// comes due on the way.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		return
	}
	target := s.now + dt
	for {
		t := s.earliest(target)
		if t == nil {
			break
		}
		s.now = t.due
		if t.interval == nil {
			s.Cancel(t.id)
		} else {
			t.due += clampStep(t.interval())
		}
		t.fn(s.now)
	}
	s.now = target
}

func (s *Scheduler) earliest(limit time.Duration) *scheduled {
	var best *scheduled
	for _, t := range s.tasks {
		if t.due > limit {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.id < best.id) {
			best = t
		}
	}
	return best
}

func clampStep(d time.Duration) time.Duration {
	if d < minTaskStep {
		return minTaskStep
	}
	return d
}
