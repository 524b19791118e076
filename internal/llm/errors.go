package llm

import (
	"errors"
	"net"
)

// Sentinel errors returned by LLMClient.Generate. Compare with errors.Is.
var (
	// ErrProviderUnavailable: disabled, unconfigured or unreachable provider.
	ErrProviderUnavailable = errors.New("llm provider unavailable")
	// ErrTimeout: the last attempt ran past the task timeout or the caller
	// cancelled.
	ErrTimeout = errors.New("llm request timed out")
	// ErrInvalidOutput: the response held no usable JSON for the task.
	ErrInvalidOutput = errors.New("invalid llm output format")
	// ErrRetryExhausted: every attempt failed for another reason.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")
)

// isConnectionError reports whether err came from dialing or talking to the
// provider's socket.
func isConnectionError(err error) bool {
	var opErr *net.OpError
	return err != nil && errors.As(err, &opErr)
}

// errorCode is the short code reported on failed LLMCallEvents.
func errorCode(err error) string {
	codes := []struct {
		target error
		code   string
	}{
		{ErrTimeout, "TIMEOUT"},
		{ErrProviderUnavailable, "UNAVAILABLE"},
		{ErrInvalidOutput, "INVALID_OUTPUT"},
		{ErrRetryExhausted, "RETRY_EXHAUSTED"},
	}
	if err == nil {
		return ""
	}
	for _, c := range codes {
		if errors.Is(err, c.target) {
			return c.code
		}
	}
	return "UNKNOWN"
}
