package timer

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vnykmshr/goasync/internal/testutil"
	"github.com/vnykmshr/goasync/pkg/future"
	"github.com/vnykmshr/goasync/pkg/metrics"
)

func TestDelayAlreadyElapsed(t *testing.T) {
	d := NewDelay(time.Now().Add(-time.Second))
	w := testutil.NewCountingWaker()

	p := d.Poll(future.NewContext(w))
	testutil.AssertEqual(t, p.IsReady(), true)

	// No timing goroutine may ever be spawned for a past deadline.
	testutil.AssertEqual(t, d.Armed(), false)
	testutil.AssertEqual(t, w.Count(), 0)
}

func TestDelayArmsAndFires(t *testing.T) {
	d := After(10 * time.Millisecond)
	w := testutil.NewCountingWaker()

	p := d.Poll(future.NewContext(w))
	testutil.AssertEqual(t, p.IsReady(), false)
	testutil.AssertEqual(t, d.Armed(), true)

	select {
	case <-w.Woken():
	case <-time.After(time.Second):
		t.Fatal("timing goroutine never fired")
	}

	p = d.Poll(future.NewContext(w))
	testutil.AssertEqual(t, p.IsReady(), true)
	testutil.AssertEqual(t, p.Value().(time.Time), d.Deadline())
}

func TestDelaySingleTimingGoroutine(t *testing.T) {
	d := After(20 * time.Millisecond)
	w := testutil.NewCountingWaker()
	ctx := future.NewContext(w)

	// Repeated polls while armed must not spawn additional goroutines;
	// a second goroutine would produce a second wake.
	testutil.AssertEqual(t, d.Poll(ctx).IsReady(), false)
	testutil.AssertEqual(t, d.Poll(ctx).IsReady(), false)
	testutil.AssertEqual(t, d.Poll(ctx).IsReady(), false)

	select {
	case <-w.Woken():
	case <-time.After(time.Second):
		t.Fatal("timing goroutine never fired")
	}
	time.Sleep(20 * time.Millisecond)
	testutil.AssertEqual(t, w.Count(), 1)
}

func TestDelayWakerReplacement(t *testing.T) {
	d := After(25 * time.Millisecond)
	first := testutil.NewCountingWaker()
	second := testutil.NewCountingWaker()

	// Armed under one task identity...
	testutil.AssertEqual(t, d.Poll(future.NewContext(first)).IsReady(), false)
	// ...then moved to another before the deadline. The stored handle
	// must be replaced, and the timing goroutine must invoke the latest.
	testutil.AssertEqual(t, d.Poll(future.NewContext(second)).IsReady(), false)

	select {
	case <-second.Woken():
	case <-time.After(time.Second):
		t.Fatal("replacement waker never fired")
	}
	testutil.AssertEqual(t, first.Count(), 0)
	testutil.AssertEqual(t, second.Count(), 1)
}

func TestDelayMockedClock(t *testing.T) {
	clk := testutil.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	d := NewDelay(clk.Now().Add(time.Hour))
	d.now = clk.Now
	w := testutil.NewCountingWaker()

	testutil.AssertEqual(t, d.Poll(future.NewContext(w)).IsReady(), false)

	// Once the clock passes the deadline, the armed branch reports ready
	// regardless of the timing goroutine.
	clk.Advance(2 * time.Hour)
	testutil.AssertEqual(t, d.Poll(future.NewContext(w)).IsReady(), true)
}

func TestTimerMetricsOptIn(t *testing.T) {
	testutil.AssertEqual(t, MetricsEnabled(), false)

	reg := prometheus.NewRegistry()
	testutil.AssertNoError(t, EnableMetrics(metrics.Config{Enabled: true, Registry: reg}))
	defer DisableMetrics()
	testutil.AssertEqual(t, MetricsEnabled(), true)

	// Past deadline: counted immediate, never armed.
	past := NewDelay(time.Now().Add(-time.Second))
	past.Poll(future.NewContext(future.NoopWaker()))

	d := After(5 * time.Millisecond)
	w := testutil.NewCountingWaker()
	testutil.AssertEqual(t, d.Poll(future.NewContext(w)).IsReady(), false)
	select {
	case <-w.Woken():
	case <-time.After(time.Second):
		t.Fatal("timing goroutine never fired")
	}

	r := registry.Load()
	testutil.AssertEqual(t, promtestutil.ToFloat64(r.DelaysImmediate.WithLabelValues("delay")), 1.0)
	testutil.AssertEqual(t, promtestutil.ToFloat64(r.DelaysArmed.WithLabelValues("delay")), 1.0)
	testutil.AssertEqual(t, promtestutil.ToFloat64(r.DelaysFired.WithLabelValues("delay")), 1.0)
}

func TestDelayRecomputesSleepAtSpawn(t *testing.T) {
	// The deadline is measured against current time inside fire, so a
	// delay armed late must still resolve on time rather than oversleep.
	start := time.Now()
	d := NewDelay(start.Add(5 * time.Millisecond))

	// Simulate the arming poll running late.
	time.Sleep(3 * time.Millisecond)

	w := testutil.NewCountingWaker()
	if d.Poll(future.NewContext(w)).IsReady() {
		// The deadline may already have elapsed on slow machines;
		// nothing left to verify in that case.
		return
	}

	select {
	case <-w.Woken():
	case <-time.After(time.Second):
		t.Fatal("timing goroutine never fired")
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("delay overslept: %v", elapsed)
	}
}
