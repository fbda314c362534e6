// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"net/http"

	kithttp "github.com/go-kit/kit/transport/http"
	"github.com/justinas/alice"
)

// Outcome labels the decision the middleware made for a request.
type Outcome string

const (
	OutcomeExcluded     Outcome = "excluded"
	OutcomeUnauthorized Outcome = "unauthorized"
	OutcomeForbidden    Outcome = "forbidden"
	OutcomeAccepted     Outcome = "accepted"
)

// DefaultExcludedPaths never require authentication.
var DefaultExcludedPaths = []string{
	"/api/v1/status/",
	"/api/v1/unauthorized/",
	"/api/v1/forbidden/",
}

// Options configures Middleware.
type Options struct {
	// Authenticator defaults to Base.
	Authenticator Authenticator

	// Excluded is passed to RequireAuth as is, so nil protects every path.
	Excluded []string

	// ErrorEncoder defaults to EncodeError.
	ErrorEncoder kithttp.ErrorEncoder

	// OnDecision, if set, is called once per request.
	OnDecision func(*http.Request, Outcome)
}

// Middleware enforces authentication on every path that is not excluded.
// A missing credential is answered with 401 and an unresolved user with 403.
// Accepted requests carry the user in their context.
func Middleware(o Options) alice.Constructor {
	if o.Authenticator == nil {
		o.Authenticator = Base{}
	}
	if o.ErrorEncoder == nil {
		o.ErrorEncoder = EncodeError
	}
	if o.OnDecision == nil {
		o.OnDecision = func(*http.Request, Outcome) {}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a := o.Authenticator
			if !a.RequireAuth(r.URL.Path, o.Excluded) {
				o.OnDecision(r, OutcomeExcluded)
				next.ServeHTTP(w, r)
				return
			}

			if _, ok := a.AuthorizationHeader(r); !ok {
				o.OnDecision(r, OutcomeUnauthorized)
				o.ErrorEncoder(r.Context(), ErrUnauthorized, w)
				return
			}

			user, ok := a.CurrentUser(r)
			if !ok {
				o.OnDecision(r, OutcomeForbidden)
				o.ErrorEncoder(r.Context(), ErrForbidden, w)
				return
			}

			o.OnDecision(r, OutcomeAccepted)
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}
