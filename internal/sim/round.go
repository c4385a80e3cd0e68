package sim

import "time"

// Status is the round state.
type Status int

const (
	StatusIdle Status = iota
	StatusCountdown
	StatusPlaying
	StatusEnded
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusCountdown:
		return "countdown"
	case StatusPlaying:
		return "playing"
	case StatusEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// RoundConfig parametrizes the round clock.
type RoundConfig struct {
	Countdown int           `yaml:"countdown"`  // seconds before play starts
	TimeLimit time.Duration `yaml:"time_limit"` // 0 runs until the game ends it
}

// Hooks let a game react to round transitions.
type Hooks struct {
	// Reset runs when a round is (re)started: clear score, entities and splats.
	Reset func()
	// Begin runs on entering playing. Register periodic work on r.Scheduler().
	Begin func(r *Round)
	// End runs after the round ended and the scheduler was stopped.
	End func(r *Round)
}

// Round is the round clock: idle → countdown → playing → ended → idle.
// It owns the scheduler that every playing-time task is registered on and
// stops it atomically whenever the round leaves a running state.
type Round struct {
	cfg       RoundConfig
	hooks     Hooks
	sched     *Scheduler
	status    Status
	countdown int
	timeLeft  time.Duration
	startedAt time.Duration
	elapsed   time.Duration
	paused    bool
}

// NewRound creates an idle round.
func NewRound(cfg RoundConfig, hooks Hooks) *Round {
	return &Round{cfg: cfg, hooks: hooks, sched: NewScheduler()}
}

// Status returns the current state.
func (r *Round) Status() Status { return r.status }

// Playing reports whether the simulation is live.
func (r *Round) Playing() bool { return r.status == StatusPlaying }

// Countdown returns the remaining countdown seconds.
func (r *Round) Countdown() int { return r.countdown }

// TimeLeft returns the remaining play time. It is 0 in survival rounds.
func (r *Round) TimeLeft() time.Duration { return r.timeLeft }

// Survival reports whether the round has no time limit.
func (r *Round) Survival() bool { return r.cfg.TimeLimit <= 0 }

// Paused reports whether simulated time is frozen.
func (r *Round) Paused() bool { return r.paused }

// Scheduler returns the round-owned scheduler.
func (r *Round) Scheduler() *Scheduler { return r.sched }

// Now returns the current simulated time.
func (r *Round) Now() time.Duration { return r.sched.Now() }

// Elapsed returns the time spent playing. It freezes once the round ends.
func (r *Round) Elapsed() time.Duration {
	if r.status == StatusPlaying {
		return r.sched.Now() - r.startedAt
	}
	return r.elapsed
}

// SetTimeLimit changes the limit used by the next round.
func (r *Round) SetTimeLimit(d time.Duration) {
	r.cfg.TimeLimit = d
}

// Start moves an idle or ended round into the countdown. It returns false
// when a round is already running.
func (r *Round) Start() bool {
	if r.status != StatusIdle && r.status != StatusEnded {
		return false
	}
	r.sched.Stop()
	r.paused = false
	r.timeLeft = 0
	r.elapsed = 0
	if r.hooks.Reset != nil {
		r.hooks.Reset()
	}

	r.status = StatusCountdown
	r.countdown = r.cfg.Countdown
	if r.countdown <= 0 {
		r.begin()
		return true
	}
	r.sched.Every("countdown", Fixed(time.Second), func(time.Duration) {
		if r.status != StatusCountdown {
			return
		}
		r.countdown--
		if r.countdown <= 0 {
			r.begin()
		}
	})
	return true
}

// Restart starts a new round after the previous one ended.
func (r *Round) Restart() bool {
	if r.status != StatusEnded {
		return false
	}
	return r.Start()
}

// Reset abandons any round in progress and returns to idle.
func (r *Round) Reset() {
	r.sched.Stop()
	r.status = StatusIdle
	r.countdown = 0
	r.timeLeft = 0
	r.elapsed = 0
	r.paused = false
	if r.hooks.Reset != nil {
		r.hooks.Reset()
	}
}

func (r *Round) begin() {
	r.sched.Stop()
	r.countdown = 0
	r.status = StatusPlaying
	r.startedAt = r.sched.Now()
	r.timeLeft = r.cfg.TimeLimit
	if r.cfg.TimeLimit > 0 {
		r.sched.Every("clock", Fixed(time.Second), func(time.Duration) {
			if r.status != StatusPlaying {
				return
			}
			r.AddTime(-time.Second)
		})
	}
	if r.hooks.Begin != nil {
		r.hooks.Begin(r)
	}
}

// End finishes a playing round: the scheduler is stopped before the End
// hook runs, so nothing registered for play fires afterwards.
func (r *Round) End() {
	if r.status != StatusPlaying {
		return
	}
	r.elapsed = r.sched.Now() - r.startedAt
	r.status = StatusEnded
	r.paused = false
	r.sched.Stop()
	if r.hooks.End != nil {
		r.hooks.End(r)
	}
}

// AddTime adjusts the remaining time of a time-limited round. Reaching zero
// ends the round.
func (r *Round) AddTime(d time.Duration) {
	if r.status != StatusPlaying || r.Survival() {
		return
	}
	r.timeLeft += d
	if r.timeLeft <= 0 {
		r.timeLeft = 0
		r.End()
	}
}

// Pause freezes simulated time during countdown or play.
func (r *Round) Pause() {
	if r.status == StatusCountdown || r.status == StatusPlaying {
		r.paused = true
	}
}

// Resume unfreezes simulated time.
func (r *Round) Resume() {
	r.paused = false
}

// TogglePause flips the pause state.
func (r *Round) TogglePause() {
	if r.paused {
		r.Resume()
	} else {
		r.Pause()
	}
}

// Advance moves simulated time forward by dt while the round is running.
func (r *Round) Advance(dt time.Duration) {
	if r.paused || (r.status != StatusCountdown && r.status != StatusPlaying) {
		return
	}
	r.sched.Advance(dt)
}
