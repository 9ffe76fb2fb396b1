package middleware

import (
	"net/http"
	"strconv"

	goGuard "github.com/MrEthical07/goGuard"
)

// ClientIP resolves the caller identity with guard's identity policy and
// stores it in the request context for [goGuard.ClientIPFromContext].
func ClientIP(guard *goGuard.Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(guard, r)
			next.ServeHTTP(w, r.WithContext(goGuard.WithClientIP(r.Context(), ip)))
		})
	}
}

// RejectBlocked answers 429 with a Retry-After header when the caller's IP
// is blocked. It does not record anything; handlers record outcomes.
func RejectBlocked(guard *goGuard.Guard) func(http.Handler) http.Handler {
	return RejectBlockedAccount(guard, nil)
}

// RejectBlockedAccount is RejectBlocked that also checks the account named by
// accountFrom, following guard's limiter mode. accountFrom may be nil.
func RejectBlockedAccount(guard *goGuard.Guard, accountFrom func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if guard == nil {
				http.Error(w, "service unavailable", http.StatusServiceUnavailable)
				return
			}

			var account string
			if accountFrom != nil {
				account = accountFrom(r)
			}

			check := guard.CheckLogin(r.Context(), clientIP(guard, r), account)
			if !check.Allowed {
				w.Header().Set("Retry-After", strconv.FormatInt(goGuard.RetryAfterSeconds(check.RetryAfter), 10))
				http.Error(w, "too many attempts", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(guard *goGuard.Guard, r *http.Request) string {
	if ip := goGuard.ClientIPFromContext(r.Context()); ip != "" {
		return ip
	}
	return guard.ResolveClientIP(r)
}
