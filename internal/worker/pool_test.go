package worker

import (
	"sync/atomic"
	"testing"
)

func TestPoolRunsAndDrains(t *testing.T) {
	p := NewPool(2)
	var n atomic.Int64
	for i := 0; i < 50; i++ {
		p.Submit(func() { n.Add(1) })
	}
	p.Stop()
	if got := n.Load(); got != 50 {
		t.Fatalf("ran %d jobs, want 50", got)
	}
}
