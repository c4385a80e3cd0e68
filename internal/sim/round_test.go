package sim

import (
	"testing"
	"time"
)

func TestRoundTransitions(t *testing.T) {
	var resets, begins, ends int
	r := NewRound(RoundConfig{Countdown: 3, TimeLimit: 5 * time.Second}, Hooks{
		Reset: func() { resets++ },
		Begin: func(*Round) { begins++ },
		End:   func(*Round) { ends++ },
	})

	if r.Status() != StatusIdle {
		t.Fatalf("new round status = %v, want idle", r.Status())
	}
	r.Advance(10 * time.Second)
	if r.Status() != StatusIdle {
		t.Fatal("idle round should ignore Advance")
	}

	if !r.Start() {
		t.Fatal("Start from idle should succeed")
	}
	if r.Status() != StatusCountdown || r.Countdown() != 3 {
		t.Fatalf("after Start: %v countdown %d", r.Status(), r.Countdown())
	}
	if r.Start() {
		t.Error("Start during countdown should be refused")
	}

	r.Advance(time.Second)
	if r.Countdown() != 2 {
		t.Errorf("countdown = %d after 1s, want 2", r.Countdown())
	}
	r.Advance(2 * time.Second)
	if r.Status() != StatusPlaying {
		t.Fatalf("status = %v after countdown, want playing", r.Status())
	}
	if r.TimeLeft() != 5*time.Second {
		t.Errorf("TimeLeft = %v, want 5s", r.TimeLeft())
	}

	r.Advance(2 * time.Second)
	if r.TimeLeft() != 3*time.Second {
		t.Errorf("TimeLeft = %v after 2s, want 3s", r.TimeLeft())
	}
	if r.Elapsed() != 2*time.Second {
		t.Errorf("Elapsed = %v, want 2s", r.Elapsed())
	}

	r.Advance(3 * time.Second)
	if r.Status() != StatusEnded {
		t.Fatalf("status = %v, want ended", r.Status())
	}
	if r.Elapsed() != 5*time.Second {
		t.Errorf("Elapsed frozen at %v, want 5s", r.Elapsed())
	}
	if r.Scheduler().Pending() != 0 {
		t.Errorf("%d tasks still pending after end", r.Scheduler().Pending())
	}

	if !r.Restart() {
		t.Fatal("Restart from ended should succeed")
	}
	if r.Status() != StatusCountdown {
		t.Errorf("status = %v after Restart, want countdown", r.Status())
	}
	r.Reset()
	if r.Status() != StatusIdle {
		t.Errorf("status = %v after Reset, want idle", r.Status())
	}

	if resets != 3 || begins != 1 || ends != 1 {
		t.Errorf("hooks ran reset=%d begin=%d end=%d, want 3/1/1", resets, begins, ends)
	}
}

func TestRoundPause(t *testing.T) {
	r := NewRound(RoundConfig{TimeLimit: 10 * time.Second}, Hooks{})
	r.Start()
	if r.Status() != StatusPlaying {
		t.Fatalf("zero countdown should start playing at once, got %v", r.Status())
	}

	r.Pause()
	r.Advance(5 * time.Second)
	if r.TimeLeft() != 10*time.Second {
		t.Errorf("paused round lost time: %v", r.TimeLeft())
	}
	r.TogglePause()
	r.Advance(time.Second)
	if r.TimeLeft() != 9*time.Second {
		t.Errorf("TimeLeft = %v after resume, want 9s", r.TimeLeft())
	}
}

func TestRoundAddTime(t *testing.T) {
	r := NewRound(RoundConfig{TimeLimit: 5 * time.Second}, Hooks{})
	r.Start()

	r.AddTime(time.Second)
	if r.TimeLeft() != 6*time.Second {
		t.Errorf("TimeLeft = %v, want 6s", r.TimeLeft())
	}
	r.AddTime(-10 * time.Second)
	if r.TimeLeft() != 0 || r.Status() != StatusEnded {
		t.Errorf("penalty past zero should end the round, got %v %v", r.TimeLeft(), r.Status())
	}
}

func TestRoundSurvival(t *testing.T) {
	r := NewRound(RoundConfig{Countdown: 1}, Hooks{})
	r.Start()
	r.Advance(time.Minute)

	if !r.Survival() {
		t.Fatal("zero time limit should be survival")
	}
	if r.Status() != StatusPlaying {
		t.Fatalf("survival round ended on its own: %v", r.Status())
	}
	if r.Elapsed() != 59*time.Second {
		t.Errorf("Elapsed = %v, want 59s", r.Elapsed())
	}
	r.End()
	if r.Status() != StatusEnded {
		t.Errorf("End should finish a survival round, got %v", r.Status())
	}
}
