package api

import (
	"strings"

	"github.com/daycast/daycast/app/auth"
	"github.com/daycast/daycast/app/cfg"
	"github.com/gin-gonic/gin"
)

// SharedClientID is the single client used when authentication is disabled
// (personal single-user deployments).
const SharedClientID = "00000000-0000-4000-a000-000000000001"

// clientAuth resolves the client id for every request. With auth disabled
// every request maps to the shared client; otherwise a bearer JWT is
// required.
func clientAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		opts := cfg.Get()

		if opts.AuthMode == "none" {
			c.Set("client_id", SharedClientID)
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			respondError(c, 401, "Missing bearer token")
			return
		}

		userID, err := auth.DecodeToken(opts.JWTSecret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			respondError(c, 401, "Invalid or expired token")
			return
		}

		c.Set("client_id", userID)
		c.Next()
	}
}

// apiRateLimit enforces the per-client requests-per-minute budget.
func apiRateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(clientID(c)) {
			respondError(c, 429, "Rate limit exceeded")
			return
		}
		c.Next()
	}
}
