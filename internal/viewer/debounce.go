package viewer

import (
	"sync"
	"time"
)

const DefaultDebounce = 300 * time.Millisecond

// Debouncer delays a commit until input has been quiet for the configured
// period. It holds at most one pending value; a newer Push replaces it.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	commit  func(string)
	timer   *time.Timer
	pending string
	armed   bool
	gen     uint64
}

func NewDebouncer(delay time.Duration, commit func(string)) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay, commit: commit}
}

func (d *Debouncer) Push(v string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = v
	d.armed = true
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Flush commits the pending value now, if any. It reports whether a value
// was committed.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	v, ok := d.takeLocked()
	d.mu.Unlock()
	if ok && d.commit != nil {
		d.commit(v)
	}
	return ok
}

// Stop drops the pending value without committing it.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.takeLocked()
}

func (d *Debouncer) peek() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending, d.armed
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || !d.armed {
		d.mu.Unlock()
		return
	}
	v, _ := d.takeLocked()
	d.mu.Unlock()
	if d.commit != nil {
		d.commit(v)
	}
}

func (d *Debouncer) takeLocked() (string, bool) {
	if !d.armed {
		return "", false
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	v := d.pending
	d.pending = ""
	d.armed = false
	d.gen++
	return v, true
}
