package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_Do(t *testing.T) {
	var g SingleFlight[string]
	var counter atomic.Int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err, _ := g.Do("rescore", func() (string, error) {
				counter.Add(1)
				time.Sleep(50 * time.Millisecond)
				return "ok", nil
			})
			if err != nil || v != "ok" {
				t.Errorf("singleflight call failed: %q %v", v, err)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := counter.Load(); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
}

func TestSingleFlight_ReturnsErrorAndForgetsKey(t *testing.T) {
	var g SingleFlight[string]
	wantErr := errors.New("store down")

	_, err, shared := g.Do("k", func() (string, error) { return "", wantErr })
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
	if shared {
		t.Fatalf("first call must not be shared")
	}

	v, err, _ := g.Do("k", func() (string, error) { return "again", nil })
	if err != nil || v != "again" {
		t.Fatalf("expected fresh call after completion, got %q %v", v, err)
	}
}
