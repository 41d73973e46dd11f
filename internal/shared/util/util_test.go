package util

import (
	"context"
	"reflect"
	"testing"
	"time"
)

func TestSortedStringKeys(t *testing.T) {
	m := map[string]int{"python": 1, "go": 2, "java": 3}
	got := SortedStringKeys(m)
	want := []string{"go", "java", "python"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	if keys := SortedStringKeys(map[string]struct{}{}); len(keys) != 0 {
		t.Errorf("expected no keys for empty map, got %v", keys)
	}
}

func TestLimiterAllow(t *testing.T) {
	l := NewLimiter(1, 1)
	if !l.Allow(1) {
		t.Error("expected first event to be allowed")
	}
	if l.Allow(1) {
		t.Error("expected second immediate event to be throttled")
	}
}

func TestLimiterWaitRespectsContext(t *testing.T) {
	l := NewLimiter(0.001, 1)
	l.Allow(1) // drain the bucket

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx, 1); err == nil {
		t.Error("expected Wait to fail once the context deadline passes")
	}
}
