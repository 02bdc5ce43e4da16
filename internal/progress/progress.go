// Package progress prints an elapsed-time indicator while a long call is
// outstanding.
package progress

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// DefaultInterval is the refresh period of the indicator.
const DefaultInterval = time.Second

// Ticker rewrites a single "Elapsed time: Ns" line on each tick.
// It must be stopped exactly once per Start; extra Stop calls are no-ops.
type Ticker struct {
	w     io.Writer
	start time.Time
	stop  chan struct{}
	done  chan struct{}
	once  sync.Once
}

// Start begins printing to w every interval. A nil w disables output but
// the ticker still has to be stopped.
func Start(w io.Writer, interval time.Duration) *Ticker {
	if w == nil {
		w = io.Discard
	}
	if interval <= 0 {
		interval = DefaultInterval
	}

	t := &Ticker{
		w:     w,
		start: time.Now(),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go t.run(interval)
	return t
}

func (t *Ticker) run(interval time.Duration) {
	defer close(t.done)

	tick := time.NewTicker(interval)
	defer tick.Stop()

	for {
		select {
		case <-t.stop:
			return
		case now := <-tick.C:
			elapsed := int(now.Sub(t.start) / time.Second)
			fmt.Fprintf(t.w, "\rElapsed time: %ds", elapsed)
		}
	}
}

// Stop halts the ticker, waits for its goroutine to exit and terminates
// the indicator line. It returns the total elapsed time.
func (t *Ticker) Stop() time.Duration {
	elapsed := time.Since(t.start)
	t.once.Do(func() {
		close(t.stop)
		<-t.done
		fmt.Fprintln(t.w)
	})
	return elapsed
}
