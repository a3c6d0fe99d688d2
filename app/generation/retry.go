package generation

import (
	"errors"
	"log/slog"
)

// attempt runs op up to n times and returns the first success. Provider
// failures abort immediately; only invalid payloads are worth another round
// trip. The last error is returned after exhaustion.
func attempt[T any](n int, op func(attempt int) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for i := 1; i <= n; i++ {
		v, err := op(i)
		if err == nil {
			return v, nil
		}

		var pe *ProviderError
		if errors.As(err, &pe) {
			return zero, err
		}

		lastErr = err
		slog.Warn("Invalid provider payload", "attempt", i, "error", err)
	}

	return zero, lastErr
}
