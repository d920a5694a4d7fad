package api

import "sync/atomic"

// Options are the live-reloadable serving options.
type Options struct {
	// Limit caps how many subnets a split response lists, 0 meaning no cap.
	// The reported total count always covers the full sequence.
	Limit int
}

// Updater stores current Options and hands them out atomically, so a config
// reload never races with in-flight requests.
type Updater struct {
	v atomic.Value
}

// Get returns current options.
func (u *Updater) Get() Options {
	return u.v.Load().(Options)
}

// Set replaces current options.
func (u *Updater) Set(o Options) {
	u.v.Store(o)
}

// NewUpdater initializes and returns new Updater.
func NewUpdater(o Options) *Updater {
	u := &Updater{}
	u.v.Store(o)
	return u
}
