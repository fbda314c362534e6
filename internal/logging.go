// SPDX-FileCopyrightText: 2022 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package redactgate

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/justinas/alice"
	"github.com/xmidt-org/candlelight"
	"github.com/xmidt-org/redactgate/internal/auth"
	"github.com/xmidt-org/redactgate/internal/redact"
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

const querySeparator = "&"

func sanitizeHeaders(headers http.Header) (filtered http.Header) {
	filtered = headers.Clone()
	if authHeader := filtered.Get(auth.HeaderKey); authHeader != "" {
		filtered.Del(auth.HeaderKey)
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 {
			filtered.Set("Authorization-Type", parts[0])
		}
	}
	return
}

// sanitizeQuery masks PII query parameters.  The trailing separator lets the
// last parameter match too.
func sanitizeQuery(r *redact.Redactor, rawQuery string) string {
	if len(rawQuery) == 0 {
		return rawQuery
	}
	return strings.TrimSuffix(r.Redact(rawQuery+querySeparator), querySeparator)
}

func newQueryRedactor() (*redact.Redactor, error) {
	return redact.New(redact.PIIFields, redact.DefaultMarker, querySeparator)
}

// SetLogger stores a request scoped logger in the request context.  The
// logger never sees the Authorization header or PII query values.  Trace
// and span ids are attached when the request carries a valid span.
func SetLogger(logger *zap.Logger, queries *redact.Redactor) alice.Constructor {
	return func(delegate http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				l := logger.With(
					zap.Any("requestHeaders", sanitizeHeaders(r.Header)),
					zap.String("requestURL", r.URL.EscapedPath()),
					zap.String("query", sanitizeQuery(queries, r.URL.RawQuery)),
					zap.String("method", r.Method),
					zap.String("req_id", middleware.GetReqID(r.Context())),
				)
				if kvs, ok := candlelight.AppendTraceInfo(r.Context(), nil); ok {
					l = l.Sugar().With(kvs...).Desugar()
				}
				delegate.ServeHTTP(w, r.WithContext(sallust.With(r.Context(), l)))
			})
	}
}
