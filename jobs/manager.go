// Package jobs tracks the two long-running operations this tool ever runs
// at once — a directory scan and a reconstruction/export job — and fans
// out their progress to subscribed clients, generalizing the
// single-purpose channel-state tracking this codebase used to do for live
// broadcast scheduling into a small exclusive-job registry.
package jobs

import (
	"sync"
	"time"
)

// Kind identifies which of the two mutually exclusive long-running
// operations a job represents.
type Kind string

const (
	KindScan     Kind = "scan"
	KindRecovery Kind = "recovery"
)

// Event is one progress update, broadcast to every subscriber of a job's
// Kind.
type Event struct {
	Kind      Kind
	Stage     string
	Percent   float64
	Message   string
	Done      bool
	Err       string
	Timestamp int64
}

// Manager is the process-wide holder of the {scan_running, recovery_running}
// flag pair plus a progress-broadcaster registry per Kind. Only one job of
// each Kind may run at a time; Begin enforces that.
type Manager struct {
	mu      sync.RWMutex
	running map[Kind]bool
	subs    map[Kind]map[*subscriber]struct{}
}

type subscriber struct {
	ch chan Event
}

// NewManager returns an idle Manager with both flags clear.
func NewManager() *Manager {
	return &Manager{
		running: make(map[Kind]bool),
		subs:    make(map[Kind]map[*subscriber]struct{}),
	}
}

// Status reports the current value of both exclusive flags for the
// get_status host command.
func (m *Manager) Status() (scanRunning, recoveryRunning bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.running[KindScan], m.running[KindRecovery]
}

// Begin claims the exclusive flag for kind. It returns ok=false without
// side effects if a job of that kind is already running; otherwise it
// returns a release func the caller must defer to clear the flag when the
// job finishes, successfully or not.
func (m *Manager) Begin(kind Kind) (release func(), ok bool) {
	m.mu.Lock()
	if m.running[kind] {
		m.mu.Unlock()
		return nil, false
	}
	m.running[kind] = true
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			m.running[kind] = false
			m.mu.Unlock()
			m.Publish(Event{Kind: kind, Stage: "done", Percent: 100, Done: true})
		})
	}, true
}

// Subscribe registers a channel that receives every Event published for
// kind until unsubscribe is called. The channel holds 32 events; once a
// slow reader's buffer is full, newer events are dropped for that reader
// rather than blocking the job.
func (m *Manager) Subscribe(kind Kind) (events <-chan Event, unsubscribe func()) {
	sub := &subscriber{ch: make(chan Event, 32)}

	m.mu.Lock()
	if m.subs[kind] == nil {
		m.subs[kind] = make(map[*subscriber]struct{})
	}
	m.subs[kind][sub] = struct{}{}
	m.mu.Unlock()

	return sub.ch, func() {
		m.mu.Lock()
		delete(m.subs[kind], sub)
		m.mu.Unlock()
		close(sub.ch)
	}
}

// Publish fans out ev to every current subscriber of ev.Kind. A
// subscriber whose buffer is full is skipped rather than blocking the
// publisher, matching the broadcaster's drop-slow-clients behavior.
func (m *Manager) Publish(ev Event) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for sub := range m.subs[ev.Kind] {
		select {
		case sub.ch <- ev:
		default:
		}
	}
}

// Now returns the current Unix time in seconds and can be replaced in
// tests. Nothing in this package calls it: Publish delivers
// Event.Timestamp exactly as the caller set it.
var Now = func() int64 { return time.Now().Unix() }
