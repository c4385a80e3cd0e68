package sim

import (
	"testing"
	"time"
)

func TestSchedulerOrdering(t *testing.T) {
	s := NewScheduler()
	var got []string

	s.After("b", 200*time.Millisecond, func(time.Duration) { got = append(got, "b") })
	s.After("a", 100*time.Millisecond, func(time.Duration) { got = append(got, "a") })
	s.After("c", 200*time.Millisecond, func(time.Duration) { got = append(got, "c") })

	s.Advance(time.Second)

	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("fired %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("fired[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	if s.Pending() != 0 {
		t.Errorf("one-shot tasks should be gone, %d pending", s.Pending())
	}
	if s.Now() != time.Second {
		t.Errorf("Now() = %v, want 1s", s.Now())
	}
}

func TestSchedulerEvery(t *testing.T) {
	s := NewScheduler()
	var times []time.Duration
	s.Every("tick", Fixed(250*time.Millisecond), func(now time.Duration) {
		times = append(times, now)
	})

	// Advance in uneven steps; firing times must not depend on step size.
	s.Advance(100 * time.Millisecond)
	s.Advance(600 * time.Millisecond)
	s.Advance(300 * time.Millisecond)

	want := []time.Duration{250 * time.Millisecond, 500 * time.Millisecond, 750 * time.Millisecond, time.Second}
	if len(times) != len(want) {
		t.Fatalf("fired at %v, want %v", times, want)
	}
	for i := range want {
		if times[i] != want[i] {
			t.Errorf("fire %d at %v, want %v", i, times[i], want[i])
		}
	}
}

func TestSchedulerShrinkingInterval(t *testing.T) {
	s := NewScheduler()
	interval := 400 * time.Millisecond
	fired := 0
	s.Every("spawn", func() time.Duration { return interval }, func(time.Duration) {
		fired++
		interval /= 2
	})

	// The next due time is taken before the task runs, so a new interval
	// applies from the following run.
	s.Advance(400 * time.Millisecond) // fires at 400ms, next at 800ms
	s.Advance(400 * time.Millisecond) // fires at 800ms, next at 1000ms
	s.Advance(200 * time.Millisecond) // fires at 1000ms, next at 1100ms

	if fired != 3 {
		t.Errorf("fired %d times, want 3", fired)
	}
}

func TestSchedulerStopInsideTask(t *testing.T) {
	s := NewScheduler()
	late := 0
	s.After("end", 100*time.Millisecond, func(time.Duration) { s.Stop() })
	s.Every("motion", Fixed(50*time.Millisecond), func(now time.Duration) {
		if now > 100*time.Millisecond {
			late++
		}
	})

	s.Advance(time.Second)

	if late != 0 {
		t.Errorf("tasks fired %d times after Stop", late)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d after Stop, want 0", s.Pending())
	}
}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler()
	fired := false
	id := s.After("x", 10*time.Millisecond, func(time.Duration) { fired = true })

	if !s.Has("x") {
		t.Fatal("task x should be registered")
	}
	if !s.Cancel(id) {
		t.Fatal("Cancel should report success")
	}
	if s.Cancel(id) {
		t.Error("second Cancel should report false")
	}
	s.Advance(time.Second)
	if fired {
		t.Error("cancelled task fired")
	}
}

func TestSchedulerZeroInterval(t *testing.T) {
	s := NewScheduler()
	fired := 0
	s.Every("zero", Fixed(0), func(time.Duration) { fired++ })

	s.Advance(10 * time.Millisecond)

	if fired != 10 {
		t.Errorf("zero interval should clamp to 1ms steps, fired %d", fired)
	}
}
