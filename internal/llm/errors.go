package llm

import (
	"encoding/json"
	"fmt"
	"time"
)

// The generation paths surface four failure shapes: the backend throttled
// us, the backend is down, the output broke its contract (curriculum and
// quiz text have strict formats, intent decisions a schema), or the
// output was cut off at the token ceiling. Callers branch with errors.As.

// ErrRateLimit reports provider throttling. RetryAfter is the provider's
// requested wait when it sent one, zero otherwise.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("generation throttled, retry after %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("generation throttled: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse reports output that broke its contract: JSON that
// fails the requested schema, an intent decision naming an unknown
// action, or a response with no usable content. Content carries the
// offending output for the request log.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("malformed generation output: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable reports a backend that could not serve the
// request at all. Provider names the backend when known.
type ErrProviderUnavailable struct {
	Provider string
	Err      error
}

func (e *ErrProviderUnavailable) Error() string {
	name := e.Provider
	if name == "" {
		name = "generation backend"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s unavailable: %v", name, e.Err)
	}
	return fmt.Sprintf("%s unavailable", name)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrTruncated reports structured output that hit the MaxTokens ceiling
// before completing. Truncated JSON cannot be validated or parsed, so
// the partial Content is carried for diagnosis only. Raising the
// request's MaxTokens is the fix; retrying is not.
type ErrTruncated struct {
	Content json.RawMessage
}

func (e *ErrTruncated) Error() string {
	return "generation cut off at the token limit"
}
