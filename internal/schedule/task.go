package schedule

import (
	"errors"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// ErrSchedulerStopped is returned when starting a task on a stopped scheduler.
var ErrSchedulerStopped = errors.New("scheduler stopped")

// Task is a named repeating timer with an explicit start/stop contract.
// Stopping is synchronous: once Stop returns, no fire emitted afterwards
// carries the live generation, and Owns rejects anything already queued.
type Task struct {
	sched *Scheduler
	name  string
	every time.Duration

	entry   cron.EntryID
	gen     uint64
	running bool
}

// Name returns the task name carried by its fires.
func (t *Task) Name() string { return t.name }

// Every returns the task period.
func (t *Task) Every() time.Duration { return t.every }

// Start schedules the task. Starting a running task is a no-op so a widget
// can never hold two live timers.
func (t *Task) Start() error {
	s := t.sched
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return ErrSchedulerStopped
	}
	if t.running {
		return nil
	}

	t.gen++
	gen := t.gen
	name := t.name
	t.entry = s.cron.Schedule(cron.Every(t.every), cron.FuncJob(func() {
		s.emit(Fire{Task: name, Gen: gen, At: time.Now()})
	}))
	t.running = true
	slog.Debug("task started", "task", t.name, "every", t.every, "gen", gen)
	return nil
}

// Stop cancels the task. It is safe to call on a stopped task.
func (t *Task) Stop() {
	t.sched.mu.Lock()
	defer t.sched.mu.Unlock()
	t.stopLocked()
}

func (t *Task) stopLocked() {
	if !t.running {
		return
	}
	t.sched.cron.Remove(t.entry)
	t.running = false
	t.gen++
	slog.Debug("task stopped", "task", t.name)
}

// Running reports whether the task is scheduled.
func (t *Task) Running() bool {
	t.sched.mu.Lock()
	defer t.sched.mu.Unlock()
	return t.running
}

// Owns reports whether f was emitted by the current run of this task.
func (t *Task) Owns(f Fire) bool {
	t.sched.mu.Lock()
	defer t.sched.mu.Unlock()
	return t.running && f.Task == t.name && f.Gen == t.gen
}

// Tick returns a Fire for the current run without waiting for the period.
func (t *Task) Tick() Fire {
	t.sched.mu.Lock()
	f := Fire{Task: t.name, Gen: t.gen, At: time.Now()}
	t.sched.mu.Unlock()
	return f
}
