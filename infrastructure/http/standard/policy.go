package standard

import (
	"math"
	"net/http"
	"time"
)

// RetryPolicy decides which requests are retried and how long to wait
// between attempts. It is a value type; one policy is shared by every
// request a client issues.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, the first one included
	MaxAttempts int

	// BackoffFactor is the base of the exponential delay
	BackoffFactor float64

	// BackoffUnit scales BackoffFactor^attempt, normally one second
	BackoffUnit time.Duration

	// RetryableStatus lists status codes that trigger another attempt
	RetryableStatus map[int]bool

	// RetryableMethods lists the idempotent methods that may be retried
	RetryableMethods map[string]bool
}

// DefaultRetryPolicy returns the policy used by the access layer:
// 3 attempts, factor 1.5, retrying throttling and gateway errors.
func DefaultRetryPolicy() RetryPolicy {
	return NewRetryPolicy(3, 1.5, time.Second)
}

// NewRetryPolicy builds a policy with the standard retryable status codes
// and methods.
func NewRetryPolicy(maxAttempts int, backoffFactor float64, unit time.Duration) RetryPolicy {
	return RetryPolicy{
		MaxAttempts:   maxAttempts,
		BackoffFactor: backoffFactor,
		BackoffUnit:   unit,
		RetryableStatus: map[int]bool{
			http.StatusTooManyRequests:     true,
			http.StatusInternalServerError: true,
			http.StatusBadGateway:          true,
			http.StatusServiceUnavailable:  true,
			http.StatusGatewayTimeout:      true,
		},
		RetryableMethods: map[string]bool{
			http.MethodHead:    true,
			http.MethodGet:     true,
			http.MethodOptions: true,
		},
	}
}

// Backoff returns the delay after the given failed attempt (1-based):
// BackoffUnit * BackoffFactor^attempt.
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	if p.BackoffFactor <= 0 || attempt < 1 {
		return 0
	}
	return time.Duration(float64(p.BackoffUnit) * math.Pow(p.BackoffFactor, float64(attempt)))
}

// AttemptsFor returns how many attempts a request with method may use
func (p RetryPolicy) AttemptsFor(method string) int {
	if !p.RetryableMethods[method] {
		return 1
	}
	return max(p.MaxAttempts, 1)
}

// RetriesStatus reports whether a response with code should be retried
func (p RetryPolicy) RetriesStatus(code int) bool {
	return p.RetryableStatus[code]
}
