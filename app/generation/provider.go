package generation

import (
	"context"
	"time"
)

// Request is one completion call to the text-generation provider.
type Request struct {
	Prompt      string
	Images      []Attachment
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// Response is the provider's raw payload with call metadata.
type Response struct {
	Raw       string
	Model     string
	LatencyMs int
}

// Provider performs a single completion round trip. Implementations do not
// retry; the retry policy lives in the service.
type Provider interface {
	Complete(ctx context.Context, req Request) (*Response, error)
}
