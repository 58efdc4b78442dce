package quizgen

import (
	"encoding/json"
	"fmt"
	"time"
)

// ErrRateLimit indicates the provider returned a rate limit or quota
// error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrCredential indicates the API key was rejected (401/403).
type ErrCredential struct {
	Err error
}

func (e *ErrCredential) Error() string {
	return fmt.Sprintf("credential rejected: %v", e.Err)
}

func (e *ErrCredential) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the LLM returned content that is not valid
// JSON or does not conform to the quiz schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrCredentialsExhausted is returned when every rotation attempt failed
// with a quota or credential error.
type ErrCredentialsExhausted struct {
	Attempts int
	Err      error
}

func (e *ErrCredentialsExhausted) Error() string {
	return fmt.Sprintf("all API keys exhausted after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ErrCredentialsExhausted) Unwrap() error { return e.Err }
