package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_ConcurrentCallersShareOneExecution(t *testing.T) {
	var g SingleFlight
	var executions int32
	var shared int32

	const callers = 16
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(callers)

	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			<-start
			value, err, wasShared := g.Do("stats:lg-1", func() (any, error) {
				atomic.AddInt32(&executions, 1)
				time.Sleep(10 * time.Millisecond)
				return 42, nil
			})
			if err != nil {
				t.Errorf("shared call failed: %v", err)
			}
			if value != 42 {
				t.Errorf("unexpected shared value: %v", value)
			}
			if wasShared {
				atomic.AddInt32(&shared, 1)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&executions); got != 1 {
		t.Fatalf("expected exactly one execution, got %d", got)
	}
	if got := atomic.LoadInt32(&shared); got != callers-1 {
		t.Fatalf("expected %d callers to share the result, got %d", callers-1, got)
	}
}

func TestSingleFlight_KeyReusableAfterCompletion(t *testing.T) {
	var g SingleFlight
	var executions int32

	run := func() {
		_, err, _ := g.Do("stats:lg-2", func() (any, error) {
			atomic.AddInt32(&executions, 1)
			return nil, nil
		})
		if err != nil {
			t.Fatalf("call failed: %v", err)
		}
	}

	run()
	run()

	if got := atomic.LoadInt32(&executions); got != 2 {
		t.Fatalf("expected sequential calls to run independently, got %d", got)
	}
}
