package middleware

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/marinehub/fleetdesk/modules/core/domain/entities/session"
	"github.com/marinehub/fleetdesk/modules/core/services"
	"github.com/marinehub/fleetdesk/pkg/composables"
	"github.com/marinehub/fleetdesk/pkg/configuration"
	"github.com/marinehub/fleetdesk/pkg/httpapi"
	"github.com/marinehub/fleetdesk/pkg/serrors"
)

// RequestParams stores common request attributes in the context so
// services and controllers can use them without touching *http.Request.
func RequestParams() mux.MiddlewareFunc {
	conf := configuration.Use()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				bearer, _ := session.BearerFromHeader(r.Header.Get("Authorization"))
				params := &composables.Params{
					IP:            getRealIP(r, conf),
					UserAgent:     r.UserAgent(),
					Bearer:        bearer,
					Authenticated: bearer != "",
					Request:       r,
					Writer:        w,
				}
				next.ServeHTTP(w, r.WithContext(composables.WithParams(r.Context(), params)))
			},
		)
	}
}

// Authenticate resolves the caller's principal from the bearer token and
// stores it in the context. Requests without a resolvable principal are
// rejected before reaching the controller.
func Authenticate(identity *services.IdentityService) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				bearer, ok := composables.UseBearer(r.Context())
				if !ok {
					_ = httpapi.WriteErr(w, serrors.ErrAuthExpired)
					return
				}
				p, err := identity.Authenticate(r.Context(), bearer)
				if err != nil {
					_ = httpapi.WriteErr(w, err)
					return
				}
				next.ServeHTTP(w, r.WithContext(composables.WithPrincipal(r.Context(), p)))
			},
		)
	}
}
