package api

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// RateLimiter tracks per-client token buckets for the requests-per-minute
// budget. Idle clients expire from the store.
type RateLimiter struct {
	limiters  *gocache.Cache
	perMinute int
}

// NewRateLimiter creates a new per-client rate limiter
func NewRateLimiter(perMinute int) *RateLimiter {
	return &RateLimiter{
		limiters:  gocache.New(10*time.Minute, 15*time.Minute),
		perMinute: perMinute,
	}
}

// Allow reports whether the client may make another request right now.
func (rl *RateLimiter) Allow(clientID string) bool {
	var limiter *rate.Limiter
	if v, ok := rl.limiters.Get(clientID); ok {
		limiter = v.(*rate.Limiter)
	} else {
		limiter = rate.NewLimiter(rate.Limit(float64(rl.perMinute))/60, rl.perMinute)
		rl.limiters.Set(clientID, limiter, gocache.DefaultExpiration)
	}
	return limiter.Allow()
}
