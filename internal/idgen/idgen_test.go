package idgen

import (
	"testing"
	"time"
)

func TestNextIsStrictlyIncreasingWithFrozenClock(t *testing.T) {
	frozen := time.UnixMilli(1714521600000)
	seq := New(func() time.Time { return frozen })

	first := seq.Next()
	if first != frozen.UnixMilli() {
		t.Fatalf("expected first id to be the clock millis, got %d", first)
	}
	second := seq.Next()
	third := seq.Next()
	if second != first+1 || third != first+2 {
		t.Fatalf("expected consecutive ids, got %d %d %d", first, second, third)
	}
}

func TestObserveSkipsExistingIDs(t *testing.T) {
	seq := New(func() time.Time { return time.UnixMilli(100) })
	seq.Observe(500)
	if got := seq.Next(); got != 501 {
		t.Fatalf("expected 501, got %d", got)
	}
	seq.Observe(10)
	if got := seq.Next(); got != 502 {
		t.Fatalf("expected 502, got %d", got)
	}
}
