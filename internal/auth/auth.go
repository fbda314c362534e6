// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// Package auth decides which request paths need authentication and pulls the
// raw credential off a request.
package auth

import (
	"context"
	"net/http"
	"strings"
)

// HeaderKey is the header a credential is read from.
const HeaderKey = "Authorization"

// User is whatever identity an Authenticator resolves a request to.
type User interface {
	String() string
}

// Authenticator is implemented by every authentication scheme.  Base is the
// default; schemes embed it and override what they need.
type Authenticator interface {
	// RequireAuth reports whether path must be authenticated given the
	// excluded paths.
	RequireAuth(path string, excluded []string) bool

	// AuthorizationHeader returns the raw Authorization header value.
	AuthorizationHeader(r *http.Request) (string, bool)

	// CurrentUser resolves the user behind the request.
	CurrentUser(r *http.Request) (User, bool)
}

// Base is the fallback Authenticator.  It never resolves a user.
type Base struct{}

var _ Authenticator = Base{}

func (Base) RequireAuth(path string, excluded []string) bool {
	return RequireAuth(path, excluded)
}

func (Base) AuthorizationHeader(r *http.Request) (string, bool) {
	return ExtractAuthorization(r)
}

func (Base) CurrentUser(*http.Request) (User, bool) {
	return nil, false
}

// RequireAuth reports whether path is protected.  An empty path or a nil
// excluded list always requires authentication.
//
// Trailing slashes are stripped from every excluded entry.  Entries ending in
// '*' are prefix matches against the unmodified path and are checked first;
// the exact match compares the path with its trailing slashes stripped.
func RequireAuth(path string, excluded []string) bool {
	if path == "" || excluded == nil {
		return true
	}

	stripped := make([]string, len(excluded))
	for i, p := range excluded {
		stripped[i] = strings.TrimRight(p, "/")
	}

	for _, p := range stripped {
		if strings.HasSuffix(p, "*") && strings.HasPrefix(path, strings.TrimRight(p, "*")) {
			return false
		}
	}

	path = strings.TrimRight(path, "/")
	for _, p := range stripped {
		if p == path {
			return false
		}
	}

	return true
}

// ExtractAuthorization returns the Authorization header of r verbatim.  A nil
// request or an empty header yields false.
func ExtractAuthorization(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}

	value := r.Header.Get(HeaderKey)
	return value, len(value) > 0
}

type contextKey struct{}

// WithUser stores u in ctx.
func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, contextKey{}, u)
}

// UserFromContext returns the user stored by the middleware, if any.
func UserFromContext(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(contextKey{}).(User)
	return u, ok
}
