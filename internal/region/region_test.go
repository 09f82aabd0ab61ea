package region

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/taiwoajasa245/march16-verse-api/internal/events"
)

type countingSource struct {
	calls atomic.Int32
	code  string
	err   error
	delay time.Duration
}

func (c *countingSource) Country(context.Context) (string, error) {
	c.calls.Add(1)
	time.Sleep(c.delay)
	return c.code, c.err
}

func TestDetector_RunsOnce(t *testing.T) {
	src := &countingSource{code: "GBR", delay: 20 * time.Millisecond}
	broker := events.NewBroker()
	sub, cancel := broker.Subscribe(4)
	defer cancel()

	d := NewDetector(src, broker, nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			code, err := d.Detect(context.Background())
			if err != nil || code != "GBR" {
				t.Errorf("Detect = %q, %v", code, err)
			}
		}()
	}
	wg.Wait()

	if n := src.calls.Load(); n != 1 {
		t.Fatalf("source called %d times, want 1", n)
	}

	select {
	case ev := <-sub:
		if ev.Kind != events.RegionDetected || ev.Data["country"] != "GBR" {
			t.Errorf("unexpected event %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("region_detected not published")
	}
}

func TestDetector_SourceErrorMeansUnknown(t *testing.T) {
	d := NewDetector(&countingSource{err: errors.New("offline")}, nil, nil)

	code, err := d.Detect(context.Background())
	if err != nil || code != "" {
		t.Fatalf("Detect = %q, %v", code, err)
	}
	if _, checked := d.Code(); !checked {
		t.Fatal("detection should be marked finished")
	}
}

func TestDetector_CallerTimeout(t *testing.T) {
	src := &countingSource{code: "USA", delay: 200 * time.Millisecond}
	d := NewDetector(src, nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := d.Detect(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline, got %v", err)
	}

	// Detection continues for the next caller.
	code, err := d.Detect(context.Background())
	if err != nil || code != "USA" {
		t.Fatalf("Detect = %q, %v", code, err)
	}
}

func TestStaticSource(t *testing.T) {
	code, _ := StaticSource(" gbr ").Country(context.Background())
	if code != "GBR" {
		t.Errorf("got %q", code)
	}
}
