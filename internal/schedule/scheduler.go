package schedule

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultFireBuffer is the capacity of the Fires channel.
const DefaultFireBuffer = 16

// Fire is delivered each time a running Task's period elapses. Gen is the
// task generation at the time the fire was emitted, so receivers can reject
// fires that belong to a stopped or restarted task.
type Fire struct {
	Task string
	Gen  uint64
	At   time.Time
}

// Scheduler owns a cron runner and fans task fires into a single channel.
type Scheduler struct {
	cron *cron.Cron
	out  chan Fire
	done chan struct{}

	mu      sync.Mutex
	tasks   map[string]*Task
	started bool
	stopped bool
}

// New creates a stopped scheduler.
func New() *Scheduler {
	return &Scheduler{
		cron:  cron.New(),
		out:   make(chan Fire, DefaultFireBuffer),
		done:  make(chan struct{}),
		tasks: make(map[string]*Task),
	}
}

// Start begins running registered tasks. It is safe to call more than once.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || s.stopped {
		return
	}
	s.started = true
	s.cron.Start()
	slog.Debug("scheduler started")
}

// Stop halts the cron runner and releases anyone blocked on a fire.
// A stopped scheduler cannot be restarted.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.stopped = true
	for _, t := range s.tasks {
		t.stopLocked()
	}
	// Unblock in-flight jobs before waiting for them.
	close(s.done)
	if s.started {
		<-s.cron.Stop().Done()
	}
	slog.Debug("scheduler stopped")
}

// Fires returns the channel every task fire is delivered on.
func (s *Scheduler) Fires() <-chan Fire {
	return s.out
}

// Done is closed once the scheduler has stopped.
func (s *Scheduler) Done() <-chan struct{} {
	return s.done
}

// NewTask registers a named repeating task. The task does not run until
// Start is called on it. Names must be unique.
func (s *Scheduler) NewTask(name string, every time.Duration) (*Task, error) {
	if every <= 0 {
		return nil, fmt.Errorf("task %q: interval must be positive, got %s", name, every)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tasks[name]; exists {
		return nil, fmt.Errorf("task %q already registered", name)
	}

	t := &Task{sched: s, name: name, every: every}
	s.tasks[name] = t
	return t, nil
}

func (s *Scheduler) emit(f Fire) {
	select {
	case s.out <- f:
	case <-s.done:
	}
}
