package network

import (
	"errors"
	"testing"
	"time"
)

func TestRotatorRoundRobin(t *testing.T) {
	r, err := NewRotator([]string{"http://a:1", "http://b:2"}, time.Minute)
	if err != nil {
		t.Fatalf("NewRotator() error = %v", err)
	}
	first, _ := r.Next()
	second, _ := r.Next()
	third, _ := r.Next()
	if first.Host != "a:1" || second.Host != "b:2" || third.Host != "a:1" {
		t.Fatalf("unexpected order: %s %s %s", first.Host, second.Host, third.Host)
	}
}

func TestRotatorBansOnRateLimit(t *testing.T) {
	r, err := NewRotator([]string{"http://a:1", "http://b:2"}, time.Minute)
	if err != nil {
		t.Fatalf("NewRotator() error = %v", err)
	}
	a, _ := r.Next()
	r.Report(a, 429)

	for i := 0; i < 3; i++ {
		next, err := r.Next()
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if next.Host != "b:2" {
			t.Fatalf("Next() = %s, want banned proxy skipped", next.Host)
		}
	}

	b, _ := r.Next()
	r.Report(b, 403)
	if _, err := r.Next(); !errors.Is(err, ErrNoProxies) {
		t.Fatalf("Next() error = %v, want ErrNoProxies", err)
	}
}

func TestRotatorIgnoresOtherStatuses(t *testing.T) {
	r, _ := NewRotator([]string{"http://a:1"}, time.Minute)
	a, _ := r.Next()
	r.Report(a, 500)
	if _, err := r.Next(); err != nil {
		t.Fatalf("Next() error = %v, want proxy still usable", err)
	}
}

func TestRotatorEmpty(t *testing.T) {
	r, _ := NewRotator(nil, time.Minute)
	if _, err := r.Next(); !errors.Is(err, ErrNoProxies) {
		t.Fatalf("Next() error = %v, want ErrNoProxies", err)
	}
}

func TestRotatorAvailable(t *testing.T) {
	r, _ := NewRotator([]string{"http://a:1", "http://b:2", "http://c:3"}, time.Minute)
	a, _ := r.Next()
	r.Report(a, 429)
	if got := r.Available(); got != 2 {
		t.Fatalf("Available() = %d, want 2", got)
	}
}

func TestRotatorBanExpires(t *testing.T) {
	r, _ := NewRotator([]string{"http://a:1"}, time.Nanosecond)
	a, _ := r.Next()
	r.Report(a, 429)
	time.Sleep(time.Millisecond)
	if _, err := r.Next(); err != nil {
		t.Fatalf("Next() error = %v, want ban expired", err)
	}
}
