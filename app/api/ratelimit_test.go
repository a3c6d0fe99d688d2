package api

import "testing"

func TestRateLimiter_AllowsBurstThenDenies(t *testing.T) {
	rl := NewRateLimiter(5)

	for i := 0; i < 5; i++ {
		if !rl.Allow("client-1") {
			t.Fatalf("Expected request %d to be allowed", i+1)
		}
	}

	if rl.Allow("client-1") {
		t.Error("Expected request over the budget to be denied")
	}
}

func TestRateLimiter_ClientsAreIndependent(t *testing.T) {
	rl := NewRateLimiter(1)

	if !rl.Allow("client-1") {
		t.Fatal("Expected first request to be allowed")
	}
	if rl.Allow("client-1") {
		t.Error("Expected second request from same client to be denied")
	}
	if !rl.Allow("client-2") {
		t.Error("Expected other client's request to be allowed")
	}
}
