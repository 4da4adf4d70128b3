package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/vnykmshr/gorate/pkg/common/validation"
	"github.com/vnykmshr/gorate/pkg/ratelimit"
)

// Window is a rate limit configuration applied on a cron schedule.
type Window struct {
	// Spec is the cron expression selecting when the window activates.
	// The six-field form with seconds is accepted, as are descriptors
	// like "@daily" and "@every 90s".
	Spec string

	// Capacity is the limiter capacity to install when the window fires.
	Capacity int

	// Rate is the limiter rate to install when the window fires.
	Rate float64
}

// Scheduler drives live reconfiguration of a limiter from cron-scheduled
// windows: a service can run a generous daytime limit and clamp down
// off-peak without replacing the limiter instance callers hold.
type Scheduler struct {
	cron    *cron.Cron
	limiter ratelimit.Reconfigurable

	mu      sync.Mutex
	windows map[cron.EntryID]Window

	onApply func(Window)
	onError func(Window, error)
}

// Config holds configuration options for creating a Scheduler.
type Config struct {
	// Limiter is the limiter reconfigured when windows fire. Required.
	Limiter ratelimit.Reconfigurable

	// Location is the timezone for cron evaluation. If nil, time.Local
	// is used.
	Location *time.Location

	// OnApply is called after a window's configuration is installed.
	OnApply func(Window)

	// OnError is called when installing a window's configuration fails.
	OnError func(Window, error)
}

// New creates a scheduler for the given limiter with the supplied
// windows. The scheduler is not started; call Start once all windows are
// registered.
func New(limiter ratelimit.Reconfigurable, windows ...Window) (*Scheduler, error) {
	s, err := NewWithConfig(Config{Limiter: limiter})
	if err != nil {
		return nil, err
	}
	for _, w := range windows {
		if _, err := s.Add(w); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// NewWithConfig creates a scheduler from a Config.
func NewWithConfig(config Config) (*Scheduler, error) {
	if err := validation.ValidateNotNil("schedule", "limiter", config.Limiter); err != nil {
		return nil, err
	}

	location := config.Location
	if location == nil {
		location = time.Local
	}

	parser := cron.NewParser(
		cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
	)

	return &Scheduler{
		cron:    cron.New(cron.WithParser(parser), cron.WithLocation(location)),
		limiter: config.Limiter,
		windows: make(map[cron.EntryID]Window),
		onApply: config.OnApply,
		onError: config.OnError,
	}, nil
}

// Add registers a window. The capacity and rate are validated eagerly so
// a window that could never be installed is rejected here rather than at
// fire time.
func (s *Scheduler) Add(w Window) (cron.EntryID, error) {
	if err := validation.ValidatePositive("schedule", "capacity", w.Capacity); err != nil {
		return 0, err
	}
	if err := validation.ValidatePositiveFloat("schedule", "rate", w.Rate); err != nil {
		return 0, err
	}

	id, err := s.cron.AddFunc(w.Spec, func() { s.apply(w) })
	if err != nil {
		return 0, fmt.Errorf("invalid cron expression %q: %w", w.Spec, err)
	}

	s.mu.Lock()
	s.windows[id] = w
	s.mu.Unlock()
	return id, nil
}

// Remove deregisters a window. Removing an unknown ID is a no-op.
func (s *Scheduler) Remove(id cron.EntryID) {
	s.cron.Remove(id)

	s.mu.Lock()
	delete(s.windows, id)
	s.mu.Unlock()
}

// Apply installs a window's configuration immediately, outside its cron
// schedule. This is useful at startup to seed the limiter with whichever
// window should currently be in force.
func (s *Scheduler) Apply(w Window) error {
	return s.limiter.UpdateConfig(w.Capacity, w.Rate)
}

// Windows returns the registered windows keyed by cron entry.
func (s *Scheduler) Windows() map[cron.EntryID]Window {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[cron.EntryID]Window, len(s.windows))
	for id, w := range s.windows {
		out[id] = w
	}
	return out
}

// Next returns the next activation time for a registered window, or the
// zero time if the ID is unknown or the scheduler is stopped.
func (s *Scheduler) Next(id cron.EntryID) time.Time {
	return s.cron.Entry(id).Next
}

// Start begins evaluating windows in their own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts window evaluation. Windows stay registered, so Start may
// be called again. The returned context is done once any in-flight
// window application has completed.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) apply(w Window) {
	if err := s.limiter.UpdateConfig(w.Capacity, w.Rate); err != nil {
		if s.onError != nil {
			s.onError(w, err)
		}
		return
	}
	if s.onApply != nil {
		s.onApply(w)
	}
}
