package generation

import (
	"errors"
	"fmt"
)

// Precondition failures surfaced to handlers as client errors.
var (
	ErrNoInputItems       = errors.New("no input items for this date")
	ErrNoChannels         = errors.New("no active channels")
	ErrGenerationNotFound = errors.New("generation not found")
)

// UnknownChannelError reports a requested channel id missing from the
// product catalog.
type UnknownChannelError struct {
	ChannelID string
}

func (e *UnknownChannelError) Error() string {
	return fmt.Sprintf("Unknown channel: %s", e.ChannelID)
}

// ProviderError wraps a transport or HTTP failure from the text-generation
// provider. Never retried.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("AI provider error: %v", e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// InvalidResponseError reports that every attempt produced a payload that
// failed parsing or validation.
type InvalidResponseError struct {
	Attempts int
	LastErr  error
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("AI returned invalid JSON after %d attempts: %v", e.Attempts, e.LastErr)
}

func (e *InvalidResponseError) Unwrap() error {
	return e.LastErr
}
