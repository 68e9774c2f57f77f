package ratelimit

import (
	"testing"
	"time"
)

func TestNewLimiter(t *testing.T) {
	// NewLimiter must work with a nil client for unit testing; the client
	// is only touched on Allow.
	limiter := NewLimiter(nil, "test:")

	if limiter == nil {
		t.Fatal("NewLimiter returned nil")
	}
	if limiter.keyPrefix != "test:" {
		t.Errorf("keyPrefix = %q, want %q", limiter.keyPrefix, "test:")
	}
}

func TestHandler_Construction(t *testing.T) {
	limiter := NewLimiter(nil, "test:")

	handler := Handler(limiter, 10, time.Minute)
	if handler == nil {
		t.Fatal("Handler returned nil")
	}
}
