package viewer

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commitRecorder struct {
	mu     sync.Mutex
	values []string
	ch     chan string
}

func newCommitRecorder() *commitRecorder {
	return &commitRecorder{ch: make(chan string, 16)}
}

func (r *commitRecorder) commit(v string) {
	r.mu.Lock()
	r.values = append(r.values, v)
	r.mu.Unlock()
	r.ch <- v
}

func (r *commitRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.values...)
}

func TestDebouncer_CommitsOnlyLastValue(t *testing.T) {
	rec := newCommitRecorder()
	d := NewDebouncer(30*time.Millisecond, rec.commit)

	d.Push("g")
	d.Push("go")
	d.Push("go dev")

	select {
	case v := <-rec.ch:
		assert.Equal(t, "go dev", v)
	case <-time.After(time.Second):
		t.Fatal("debounced value was never committed")
	}

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, []string{"go dev"}, rec.snapshot())
}

func TestDebouncer_FlushCommitsImmediately(t *testing.T) {
	rec := newCommitRecorder()
	d := NewDebouncer(time.Hour, rec.commit)

	d.Push("remote")
	require.True(t, d.Flush())

	assert.Equal(t, []string{"remote"}, rec.snapshot())
	assert.False(t, d.Flush())
}

func TestDebouncer_StopDropsPending(t *testing.T) {
	rec := newCommitRecorder()
	d := NewDebouncer(20*time.Millisecond, rec.commit)

	d.Push("abc")
	d.Stop()
	time.Sleep(60 * time.Millisecond)

	assert.Empty(t, rec.snapshot())
	_, armed := d.peek()
	assert.False(t, armed)
}

func TestDebouncer_DefaultDelay(t *testing.T) {
	d := NewDebouncer(0, nil)
	assert.Equal(t, DefaultDebounce, d.delay)

	d.Push("x")
	v, armed := d.peek()
	assert.True(t, armed)
	assert.Equal(t, "x", v)
	d.Stop()
}
