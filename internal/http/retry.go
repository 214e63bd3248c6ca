package http

import (
	"context"
	"math/rand"
	"net/http"
	"time"

	"github.com/stackplane-io/spapi/pkg/spapi"
)

// retryableStatuses is the fixed set of response codes treated as transient.
// Everything else, 4xx in particular, is terminal on the first response.
var retryableStatuses = map[int]bool{
	http.StatusTooManyRequests:    true,
	http.StatusBadGateway:         true,
	http.StatusServiceUnavailable: true,
	http.StatusGatewayTimeout:     true,
}

// RetryPolicy decides whether an attempt should be retried. It is a pure
// function of the response (or transport error) so retry behavior can be
// tested without sockets. Connection-level failures are retryable unless the
// request context is done; responses are retryable only for the fixed
// transient status set.
func RetryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil {
		return true, nil
	}

	return resp != nil && retryableStatuses[resp.StatusCode], nil
}

// ExponentialBackoff computes the wait before the next attempt: a parsable
// Retry-After header wins, otherwise min(backoffCap, backoffBase*2^attempt).
// The attempt number is zero-based.
func ExponentialBackoff(backoffBase, backoffCap time.Duration, attempt int, resp *http.Response) time.Duration {
	if resp != nil {
		if wait, ok := spapi.ParseRetryAfter(resp.Header.Get("Retry-After")); ok {
			return wait
		}
	}

	delay := backoffBase << uint(attempt)
	if delay > backoffCap || delay <= 0 {
		delay = backoffCap
	}

	return delay
}

// JitterBackoff is ExponentialBackoff randomized within [delay/2, delay] so
// many clients retrying in lockstep do not hammer the server in sync. A
// server-supplied Retry-After hint is honored exactly, without jitter.
func JitterBackoff(backoffBase, backoffCap time.Duration, attempt int, resp *http.Response) time.Duration {
	if resp != nil {
		if wait, ok := spapi.ParseRetryAfter(resp.Header.Get("Retry-After")); ok {
			return wait
		}
	}

	delay := ExponentialBackoff(backoffBase, backoffCap, attempt, nil)

	half := delay / 2
	if half <= 0 {
		return delay
	}

	return half + time.Duration(rand.Int63n(int64(half)+1))
}
