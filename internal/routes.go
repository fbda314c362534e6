// SPDX-FileCopyrightText: 2022 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package redactgate

import (
	"context"
	"net/http"

	"github.com/go-kit/kit/endpoint"
	kithttp "github.com/go-kit/kit/transport/http"
	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"github.com/xmidt-org/arrange"
	"github.com/xmidt-org/candlelight"
	"github.com/xmidt-org/redactgate/internal/auth"
	"github.com/xmidt-org/touchstone"
	"github.com/xmidt-org/touchstone/touchhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.uber.org/fx"
)

type primaryEndpointIn struct {
	fx.In
	PrimaryRouter *mux.Router `name:"server_primary"`
	AuthChain     alice.Chain `name:"auth_chain"`
	Tracing       candlelight.Tracing
	Metrics       touchhttp.Handler
}

type statusResponse struct {
	Status string `json:"status"`
}

// ProvideHandlers registers the API routes on the primary router.
func ProvideHandlers() fx.Option {
	return fx.Options(
		touchstone.Provide(),
		touchhttp.Provide(),
		fx.Provide(
			arrange.UnmarshalKey(prometheusKey, touchstone.Config{}),
			arrange.UnmarshalKey(prometheusHTTP, touchhttp.Config{}),
		),
		fx.Invoke(handlePrimaryEndpoint),
	)
}

func handlePrimaryEndpoint(in primaryEndpointIn) {
	in.PrimaryRouter.Use(
		otelmux.Middleware("mainSpan",
			otelmux.WithTracerProvider(in.Tracing.TracerProvider()),
			otelmux.WithPropagators(in.Tracing.Propagator()),
		),
	)

	in.PrimaryRouter.Handle("/metrics", in.Metrics).Methods(http.MethodGet)
	configAPIRoutes(in.PrimaryRouter, in.AuthChain)
}

// configAPIRoutes registers every API route behind the auth chain.  Routes
// answer with and without a trailing slash.
func configAPIRoutes(r *mux.Router, chain alice.Chain) {
	api := r.PathPrefix("/" + apiBase).Subrouter()

	encodeError := auth.ErrorLogEncoder(auth.GetLogger, auth.EncodeError)
	statusHandler := kithttp.NewServer(
		makeStatusEndpoint(),
		kithttp.NopRequestDecoder,
		kithttp.EncodeJSONResponse,
		kithttp.ServerErrorEncoder(encodeError),
	)

	routes := map[string]http.Handler{
		"/status":       statusHandler,
		"/unauthorized": errorHandler(encodeError, auth.ErrUnauthorized),
		"/forbidden":    errorHandler(encodeError, auth.ErrForbidden),
	}

	for path, h := range routes {
		api.Handle(path, chain.Then(h)).Methods(http.MethodGet)
		api.Handle(path+"/", chain.Then(h)).Methods(http.MethodGet)
	}

	notFound := chain.Then(errorHandler(encodeError, auth.ErrNotFound))
	r.NotFoundHandler = notFound
	api.NotFoundHandler = notFound
}

func makeStatusEndpoint() endpoint.Endpoint {
	return func(context.Context, interface{}) (interface{}, error) {
		return statusResponse{Status: "OK"}, nil
	}
}

func errorHandler(ee kithttp.ErrorEncoder, err error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ee(r.Context(), err, w)
	})
}
