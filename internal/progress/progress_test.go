package progress

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/agbru/bigcalc/internal/logging"
)

func TestReportStepProgress(t *testing.T) {
	t.Parallel()

	var got []float64
	cb := func(v float64) { got = append(got, v) }

	ReportStepProgress(cb, 1, 4)
	ReportStepProgress(cb, 4, 4)
	ReportStepProgress(cb, 7, 4)  // clamped to 1
	ReportStepProgress(cb, -1, 4) // clamped to 0

	want := []float64{0.25, 1, 1, 0}
	if len(got) != len(want) {
		t.Fatalf("expected %d reports, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("report %d = %f, want %f", i, got[i], want[i])
		}
	}
}

func TestReportStepProgress_Disabled(t *testing.T) {
	t.Parallel()

	// Nil callback must not panic.
	ReportStepProgress(nil, 1, 4)

	called := false
	cb := func(float64) { called = true }
	ReportStepProgress(cb, 1, 0)
	ReportStepProgress(cb, 1, -3)
	if called {
		t.Error("expected no report when totalSteps is not positive")
	}
}

func TestProgressSubject(t *testing.T) {
	t.Parallel()

	s := NewProgressSubject()
	var a, b []float64
	s.Register(observerFunc(func(_ int, v float64) { a = append(a, v) }))
	s.Register(observerFunc(func(_ int, v float64) { b = append(b, v) }))
	s.Register(nil) // ignored

	cb := s.Freeze(0)
	cb(0.5)
	cb(1.0)

	for name, got := range map[string][]float64{"first": a, "second": b} {
		if len(got) != 2 || got[0] != 0.5 || got[1] != 1.0 {
			t.Errorf("%s observer saw %v, want [0.5 1]", name, got)
		}
	}
}

func TestFreezeCarriesEngineIndex(t *testing.T) {
	t.Parallel()

	s := NewProgressSubject()
	var indexes []int
	s.Register(observerFunc(func(i int, _ float64) { indexes = append(indexes, i) }))

	s.Freeze(2)(0.5)
	s.Freeze(7)(0.5)

	if len(indexes) != 2 || indexes[0] != 2 || indexes[1] != 7 {
		t.Errorf("observer saw indexes %v, want [2 7]", indexes)
	}
}

// TestFreezeSnapshotImmutability verifies that after Freeze, registering
// new observers does NOT affect the frozen callback. The frozen callback
// notifies only observers registered at the time of the freeze.
func TestFreezeSnapshotImmutability(t *testing.T) {
	t.Parallel()

	subject := NewProgressSubject()
	obs1 := &countingObserver{}
	subject.Register(obs1)

	// Freeze with 1 observer
	callback := subject.Freeze(0)

	// Register another observer AFTER freeze
	obs2 := &countingObserver{}
	subject.Register(obs2)

	callback(0.5)

	if obs1.count.Load() != 1 {
		t.Errorf("obs1 should have count 1, got %d", obs1.count.Load())
	}
	if obs2.count.Load() != 0 {
		t.Errorf("obs2 should have count 0, got %d", obs2.count.Load())
	}
}

// TestFreezeConcurrentRegister verifies that concurrent Freeze and Register
// calls do not cause data races. This test should be run with -race.
func TestFreezeConcurrentRegister(t *testing.T) {
	t.Parallel()

	subject := NewProgressSubject()

	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			subject.Register(&countingObserver{})
		}()
	}

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			cb := subject.Freeze(idx)
			cb(0.5)
		}(i)
	}

	wg.Wait()
}

// TestMultipleFrozenCallbacksConcurrent verifies that multiple frozen
// callbacks can be invoked concurrently without data races or lost updates.
func TestMultipleFrozenCallbacksConcurrent(t *testing.T) {
	t.Parallel()

	subject := NewProgressSubject()
	obs := &countingObserver{}
	subject.Register(obs)

	callbacks := make([]ProgressCallback, 10)
	for i := range callbacks {
		callbacks[i] = subject.Freeze(i)
	}

	var wg sync.WaitGroup
	for _, cb := range callbacks {
		wg.Add(1)
		go func(fn ProgressCallback) {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				fn(float64(j) / 1000.0)
			}
		}(cb)
	}
	wg.Wait()

	expected := int64(10 * 1000)
	if obs.count.Load() != expected {
		t.Errorf("expected %d updates, got %d", expected, obs.count.Load())
	}
}

func TestChannelObserver(t *testing.T) {
	t.Parallel()

	ch := make(chan ProgressUpdate, 2)
	obs := NewChannelObserver(ch)
	obs.Update(3, 0.25)
	obs.Update(3, 1.0)
	close(ch)

	var got []ProgressUpdate
	for u := range ch {
		got = append(got, u)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 updates, got %d", len(got))
	}
	for _, u := range got {
		if u.EngineIndex != 3 {
			t.Errorf("EngineIndex = %d, want 3", u.EngineIndex)
		}
	}
	if got[0].Value != 0.25 || got[1].Value != 1.0 {
		t.Errorf("values = [%f %f], want [0.25 1]", got[0].Value, got[1].Value)
	}
}

func TestChannelObserver_NilChannel(t *testing.T) {
	t.Parallel()

	obs := NewChannelObserver(nil)
	obs.Update(0, 0.5) // must not panic or block
}

func TestLoggingObserver_Milestones(t *testing.T) {
	t.Parallel()

	rec := &recordingLogger{}
	obs := NewLoggingObserver(rec, "bignum")

	// Fine-grained updates collapse to ~10% milestones plus completion.
	for i := 0; i <= 100; i++ {
		obs.Update(0, float64(i)/100)
	}

	if len(rec.debugs) < 10 || len(rec.debugs) > 12 {
		t.Errorf("expected roughly one log per 10%%, got %d", len(rec.debugs))
	}

	// Completion must not be logged twice.
	obs.Update(0, 1.0)
	final := len(rec.debugs)
	obs.Update(0, 1.0)
	if len(rec.debugs) != final {
		t.Error("completion logged more than once")
	}
}

func TestLoggingObserver_NilLogger(t *testing.T) {
	t.Parallel()

	obs := NewLoggingObserver(nil, "x")
	obs.Update(0, 0.5) // must not panic
}

func TestNoOpObserver(t *testing.T) {
	t.Parallel()

	NewNoOpObserver().Update(0, 0.5)
}

// observerFunc adapts a function to the ProgressObserver interface.
type observerFunc func(engineIndex int, value float64)

func (f observerFunc) Update(i int, v float64) { f(i, v) }

// countingObserver tracks the number of Update calls using an atomic
// counter, making it safe for concurrent use.
type countingObserver struct {
	count atomic.Int64
}

func (o *countingObserver) Update(int, float64) { o.count.Add(1) }

// recordingLogger captures debug messages for assertions.
type recordingLogger struct {
	debugs []string
}

func (r *recordingLogger) Debug(msg string, _ ...logging.Field) { r.debugs = append(r.debugs, msg) }

func (r *recordingLogger) Info(string, ...logging.Field)         {}
func (r *recordingLogger) Error(string, error, ...logging.Field) {}
func (r *recordingLogger) Printf(string, ...any)                 {}
func (r *recordingLogger) Println(...any)                        {}
