// Package actor reads the caller identity set by the upstream gateway.
// Authentication happens before requests reach this service.
package actor

import (
	"log/slog"
	"net/http"

	id "doctorat/pkg/domain"
	dErrors "doctorat/pkg/domain-errors"
	"doctorat/pkg/platform/httputil"
	"doctorat/pkg/platform/middleware/request"
	"doctorat/pkg/requestcontext"
)

const (
	HeaderActorID   = "X-Actor-ID"
	HeaderActorRole = "X-Actor-Role"
)

// RequireActor rejects requests without a well-formed actor and stores it in the context.
func RequireActor(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			rawID := r.Header.Get(HeaderActorID)
			rawRole := r.Header.Get(HeaderActorRole)
			if rawID == "" || rawRole == "" {
				logger.WarnContext(ctx, "request without actor headers",
					"request_id", request.GetRequestID(ctx),
					"path", r.URL.Path,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "actor headers are required"))
				return
			}

			actorID, err := id.ParseActorID(rawID)
			if err != nil {
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid actor id"))
				return
			}
			role, err := id.ParseRole(rawRole)
			if err != nil || role == id.RoleSystem {
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid actor role"))
				return
			}

			ctx = requestcontext.WithActor(ctx, actorID, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
