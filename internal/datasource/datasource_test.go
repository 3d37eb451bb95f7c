package datasource

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	c := NewCache(1 * time.Second)

	c.Set("key1", "value1")
	v, ok := c.Get("key1")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if v != "value1" {
		t.Fatalf("got %v, want value1", v)
	}
}

func TestCacheMiss(t *testing.T) {
	c := NewCache(1 * time.Second)
	if _, ok := c.Get("nonexistent"); ok {
		t.Fatal("expected cache miss for nonexistent key")
	}
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(1 * time.Millisecond)
	c.Set("key", "val")

	time.Sleep(5 * time.Millisecond)
	if _, ok := c.Get("key"); ok {
		t.Fatal("expected cache miss after TTL expiry")
	}
}

func TestCacheDisabled(t *testing.T) {
	c := NewCache(0)
	c.Set("key", "val")
	if _, ok := c.Get("key"); ok {
		t.Fatal("zero TTL should disable caching")
	}
}

func TestCacheSetSweepsExpired(t *testing.T) {
	c := NewCache(1 * time.Hour)
	for i := 0; i < sweepThreshold; i++ {
		c.SetWithTTL(fmt.Sprintf("short%d", i), i, 1*time.Millisecond)
	}
	c.Set("long", "val")
	time.Sleep(5 * time.Millisecond)
	c.Set("trigger", "val")

	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.entries) != 2 {
		t.Errorf("got %d entries after sweep, want 2 (long, trigger)", len(c.entries))
	}
	if _, ok := c.entries["long"]; !ok {
		t.Error("live entry should survive the sweep")
	}
}

func TestLimiterCancelled(t *testing.T) {
	l := NewLimiter("test", 1)
	ctx, cancel := context.WithCancel(context.Background())

	if err := l.Wait(ctx); err != nil {
		t.Fatalf("first Wait should use the burst token: %v", err)
	}
	cancel()
	if err := l.Wait(ctx); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

func TestLimiterUnlimited(t *testing.T) {
	l := NewLimiter("test", 0)
	for i := 0; i < 100; i++ {
		if err := l.Wait(context.Background()); err != nil {
			t.Fatalf("unlimited limiter returned %v", err)
		}
	}
}

func TestDoGetHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != DefaultUserAgent {
			t.Errorf("User-Agent = %q", r.Header.Get("User-Agent"))
		}
		http.Error(w, "nope", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := doGet(context.Background(), NewHTTPClient(time.Second), srv.URL, nil)
	var httpErr *ErrHTTP
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *ErrHTTP, got %v", err)
	}
	if httpErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d", httpErr.StatusCode)
	}
	if got, want := httpErr.Error(), "HTTP 429 Too Many Requests: nope\n"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrHTTPWithoutStatusText(t *testing.T) {
	err := &ErrHTTP{StatusCode: 502, Body: "bad gateway"}
	if got := err.Error(); got != "HTTP 502: bad gateway" {
		t.Errorf("Error() = %q", got)
	}
}
