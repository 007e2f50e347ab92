package parallel

import (
	"sync/atomic"
	"testing"
)

func TestPoolRunsEveryJob(t *testing.T) {
	for _, workers := range []int{0, 1, 4} {
		pool := Start(workers)
		var n atomic.Int64
		for range 100 {
			pool.Do(func() { n.Add(1) })
		}
		pool.Wait(true)
		if got := n.Load(); got != 100 {
			t.Errorf("Start(%d): ran %d jobs, want 100", workers, got)
		}
	}
}
