package middlewares

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/qa-resolver/internal/logger"
)

// SubjectExtractor derives a caller subject from a request token.
type SubjectExtractor interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetSubject(ctx context.Context, tokenString string) (string, error)
}

// contextKey is an unexported type for keys in context
type contextKey struct{}

var subjectKey = contextKey{}

// IdentityMiddleware extracts a bearer-token subject into the request
// context. It never rejects: events may carry their identity inline,
// and the resolver enforces the identity requirement itself.
func IdentityMiddleware(extractor SubjectExtractor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := extractor.GetTokenFromRequest(ctx, r)
			if err == nil {
				sub, err := extractor.GetSubject(ctx, tokenString)
				if err != nil {
					logger.Log.Errorw("bearer token rejected", "err", err)
				} else {
					ctx = context.WithValue(ctx, subjectKey, sub)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SubjectFromContext returns the bearer-token subject, if any.
func SubjectFromContext(ctx context.Context) (string, bool) {
	sub, ok := ctx.Value(subjectKey).(string)
	return sub, ok && sub != ""
}
