package core

import (
	"math"
	"testing"
	"time"
)

func TestFrameMetricsAverage(t *testing.T) {
	m := NewFrameMetrics()
	for i := 0; i < int(AVG_COUNT); i++ {
		m.Update(0.016)
	}
	if got := m.FrameTime(); math.Abs(got-16) > 1e-9 {
		t.Fatalf("FrameTime = %v, want 16", got)
	}
}

func TestFrameMetricsFPS(t *testing.T) {
	m := NewFrameMetrics()
	// 125ms per frame: the ninth frame crosses one second.
	for i := 0; i < 8; i++ {
		m.Update(0.125)
	}
	if m.FPS() != 0 {
		t.Fatalf("FPS before a full second = %v, want 0", m.FPS())
	}
	m.Update(0.125)
	if m.FPS() != 9 {
		t.Fatalf("FPS = %v, want 9", m.FPS())
	}
}

func TestClock(t *testing.T) {
	c := NewClock()
	c.Update()
	if c.Elapsed() != 0 {
		t.Fatal("unstarted clock should not advance")
	}

	c.Start()
	time.Sleep(5 * time.Millisecond)
	c.Update()
	elapsed := c.Elapsed()
	if elapsed <= 0 {
		t.Fatalf("Elapsed = %v after Start", elapsed)
	}

	c.Stop()
	time.Sleep(5 * time.Millisecond)
	c.Update()
	if c.Elapsed() != elapsed {
		t.Fatal("stopped clock should keep its elapsed time")
	}
}
