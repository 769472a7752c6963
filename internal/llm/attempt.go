package llm

import "strings"

// AttemptStatus classifies the outcome of a single model round trip.
type AttemptStatus int

const (
	AttemptSuccess AttemptStatus = iota
	AttemptRetryable
	AttemptFatal
)

// Attempt is the tagged outcome of one model call. Callers decide between
// retrying and giving up with ShouldRetry, keeping the bound and the
// decision testable in isolation from the network.
type Attempt struct {
	Status AttemptStatus
	Reason string
}

func Success() Attempt {
	return Attempt{Status: AttemptSuccess}
}

func Retryable(reason string) Attempt {
	return Attempt{Status: AttemptRetryable, Reason: reason}
}

func Fatal(reason string) Attempt {
	return Attempt{Status: AttemptFatal, Reason: reason}
}

// CheckCompletion applies the cheap shape checks shared by every model
// round trip: the content must be non-empty and must end with a closing
// brace. A response failing the trailing-brace heuristic is treated as
// truncated and therefore invalid.
func CheckCompletion(content string) Attempt {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return Retryable("empty response")
	}
	if !strings.HasSuffix(trimmed, "}") {
		return Retryable("response appears truncated: missing closing brace")
	}
	return Success()
}

// ShouldRetry reports whether another attempt is warranted. attempt is
// zero-based; maxAttempts is the total bound.
func ShouldRetry(a Attempt, attempt, maxAttempts int) bool {
	return a.Status == AttemptRetryable && attempt+1 < maxAttempts
}
