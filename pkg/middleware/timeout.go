package middleware

import (
	"net/http"
	"time"
)

// Timeout cancels the request context after timeout and answers 503 with a
// JSON body if the handler has not written a response by then.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if timeout <= 0 {
			return next
		}
		return http.TimeoutHandler(next, timeout, `{"error":"request timeout"}`)
	}
}
