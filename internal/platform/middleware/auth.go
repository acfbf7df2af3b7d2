package middleware

import (
	"log/slog"
	"net/http"

	dErrors "custody/pkg/domain-errors"
	"custody/pkg/platform/httputil"
	"custody/pkg/requestcontext"
)

// ActorResolver extracts the acting user's id from a request.
// Implementations return a CodeUnauthorized error when no actor can be established.
type ActorResolver interface {
	ResolveActor(r *http.Request) (string, error)
}

// GetActorID retrieves the actor id set by RequireActor.
func GetActorID(r *http.Request) string {
	return requestcontext.ActorID(r.Context())
}

// RequireActor rejects requests without a resolvable actor with 401 and
// stores the actor id in the request context otherwise.
func RequireActor(resolver ActorResolver, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			actorID, err := resolver.ResolveActor(r)
			if err != nil || actorID == "" {
				logger.WarnContext(ctx, "unauthorized access - actor not resolved",
					"error", err,
					"request_id", GetRequestID(ctx),
				)
				if err == nil || !dErrors.HasCode(err, dErrors.CodeUnauthorized) {
					err = dErrors.New(dErrors.CodeUnauthorized, "actor identity required")
				}
				httputil.WriteError(w, err)
				return
			}

			ctx = requestcontext.WithActorID(ctx, actorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
