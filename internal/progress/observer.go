package progress

import (
	"sync"

	"github.com/agbru/bigcalc/internal/logging"
)

// ProgressObserver receives progress notifications for one engine.
// Update is called with the engine's index and its fractional progress.
type ProgressObserver interface {
	Update(engineIndex int, value float64)
}

// ProgressSubject fans progress values out to a set of observers. It is
// the decoupling point between an engine producing progress and the sinks
// consuming it (channels, logs, nothing at all).
//
// Register and Freeze are safe for concurrent use. A frozen callback
// notifies only the observers registered at the time of the freeze, so
// late registrations never race with an evaluation already under way.
type ProgressSubject struct {
	mu        sync.Mutex
	observers []ProgressObserver
}

// NewProgressSubject creates an empty subject.
func NewProgressSubject() *ProgressSubject {
	return &ProgressSubject{}
}

// Register adds an observer. Nil observers are ignored.
func (s *ProgressSubject) Register(o ProgressObserver) {
	if o == nil {
		return
	}
	s.mu.Lock()
	s.observers = append(s.observers, o)
	s.mu.Unlock()
}

// Freeze snapshots the current observer set and returns a callback bound
// to engineIndex. The callback notifies exactly that snapshot; observers
// registered after the freeze are not seen.
func (s *ProgressSubject) Freeze(engineIndex int) ProgressCallback {
	s.mu.Lock()
	snapshot := make([]ProgressObserver, len(s.observers))
	copy(snapshot, s.observers)
	s.mu.Unlock()

	return func(value float64) {
		for _, o := range snapshot {
			o.Update(engineIndex, value)
		}
	}
}

// ChannelObserver forwards progress updates to a channel, tagging each
// with the engine index it was notified for. Sends block, so the channel
// must be drained until the producing side is done.
type ChannelObserver struct {
	ch chan<- ProgressUpdate
}

// NewChannelObserver creates an observer sending on ch. A nil channel
// yields an observer that discards updates.
func NewChannelObserver(ch chan<- ProgressUpdate) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// Update sends the tagged update on the channel.
func (c *ChannelObserver) Update(engineIndex int, value float64) {
	if c.ch == nil {
		return
	}
	c.ch <- ProgressUpdate{EngineIndex: engineIndex, Value: value}
}

// LoggingObserver writes progress milestones to a logger at debug level.
// To keep logs readable it only reports when progress has advanced by at
// least logStep since the last report, or on completion.
type LoggingObserver struct {
	log  logging.Logger
	name string

	mu       sync.Mutex
	lastSeen float64
}

const logStep = 0.1

// NewLoggingObserver creates an observer logging progress for the named
// engine.
func NewLoggingObserver(log logging.Logger, name string) *LoggingObserver {
	return &LoggingObserver{log: log, name: name, lastSeen: -logStep}
}

// Update logs the value if it crossed the next milestone.
func (l *LoggingObserver) Update(engineIndex int, value float64) {
	if l.log == nil {
		return
	}
	l.mu.Lock()
	if value < 1 && value-l.lastSeen < logStep {
		l.mu.Unlock()
		return
	}
	if value >= 1 && l.lastSeen >= 1 {
		l.mu.Unlock()
		return
	}
	l.lastSeen = value
	l.mu.Unlock()

	l.log.Debug("evaluation progress",
		logging.String("engine", l.name),
		logging.Int("index", engineIndex),
		logging.Float64("progress", value),
	)
}

// NoOpObserver discards all progress notifications.
type NoOpObserver struct{}

// NewNoOpObserver creates an observer that does nothing.
func NewNoOpObserver() NoOpObserver {
	return NoOpObserver{}
}

// Update does nothing.
func (NoOpObserver) Update(int, float64) {}
