package httpx

import (
	"testing"
	"time"
)

func TestMemoryRateLimiterAllowsUpToLimit(t *testing.T) {
	rl := NewMemoryRateLimiter()
	defer rl.Close()

	for i := 0; i < 3; i++ {
		decision := rl.Allow("ip:10.0.0.1", 3, time.Minute)
		if !decision.allowed {
			t.Fatalf("request %d unexpectedly denied", i+1)
		}
		if decision.count != i+1 {
			t.Fatalf("count = %d, want %d", decision.count, i+1)
		}
	}
	if decision := rl.Allow("ip:10.0.0.1", 3, time.Minute); decision.allowed {
		t.Fatalf("expected denial past the limit")
	}
}

func TestMemoryRateLimiterIsolatesKeys(t *testing.T) {
	rl := NewMemoryRateLimiter()
	defer rl.Close()

	if decision := rl.Allow("ip:10.0.0.1", 1, time.Minute); !decision.allowed {
		t.Fatalf("first key denied")
	}
	if decision := rl.Allow("ip:10.0.0.2", 1, time.Minute); !decision.allowed {
		t.Fatalf("second key throttled by first key's counter")
	}
}

func TestMemoryRateLimiterZeroLimitDisables(t *testing.T) {
	rl := NewMemoryRateLimiter()
	defer rl.Close()

	for i := 0; i < 10; i++ {
		if decision := rl.Allow("ip:10.0.0.1", 0, time.Minute); !decision.allowed {
			t.Fatalf("zero limit should disable throttling")
		}
	}
}

func TestMemoryRateLimiterCleanupDropsExpiredWindows(t *testing.T) {
	rl := NewMemoryRateLimiter().(*memoryRateLimiter)
	defer rl.Close()

	rl.Allow("ip:10.0.0.1", 1, 10*time.Millisecond)
	rl.cleanup(time.Now().Add(time.Second))

	rl.mu.Lock()
	remaining := len(rl.entries)
	rl.mu.Unlock()
	if remaining != 0 {
		t.Fatalf("expected expired entries swept, %d left", remaining)
	}
}

func TestRateMetricKeyStripsIdentifier(t *testing.T) {
	cases := map[string]string{
		"ip:10.0.0.1": "ip",
		"user:42":     "user",
		"":            "unknown",
		"plain":       "plain",
	}
	for key, want := range cases {
		if got := rateMetricKey(key); got != want {
			t.Fatalf("rateMetricKey(%q) = %q, want %q", key, got, want)
		}
	}
}
