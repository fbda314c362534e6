// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package redactgate

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/xmidt-org/arrange"
	"github.com/xmidt-org/redactgate/internal/auth"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type authChainIn struct {
	fx.In
	Logger        *zap.Logger
	Authenticator auth.Authenticator
	ExcludedPaths []string              `name:"excludedPaths"`
	Decisions     *prometheus.CounterVec `name:"auth_decisions"`
}

type authChainOut struct {
	fx.Out
	AuthChain alice.Chain `name:"auth_chain"`
}

// ProvideAuthChain wires the request id, request logging and authentication
// enforcement middleware into the "auth_chain" alice.Chain.
func ProvideAuthChain() fx.Option {
	return fx.Options(
		provideMetrics(),
		arrange.ProvideKey(excludedPathsKey, []string{}),
		fx.Provide(
			func() auth.Authenticator {
				return auth.Base{}
			},
			provideAuthChain,
		),
	)
}

func provideAuthChain(in authChainIn) (authChainOut, error) {
	queries, err := newQueryRedactor()
	if err != nil {
		return authChainOut{}, err
	}

	in.Logger.Info("authentication enforced", zap.Strings("excludedPaths", in.ExcludedPaths))

	return authChainOut{
		AuthChain: alice.New(
			middleware.RequestID,
			SetLogger(in.Logger, queries),
			auth.Middleware(auth.Options{
				Authenticator: in.Authenticator,
				Excluded:      in.ExcludedPaths,
				ErrorEncoder:  auth.ErrorLogEncoder(auth.GetLogger, auth.EncodeError),
				OnDecision:    countDecision(in.Decisions),
			}),
		),
	}, nil
}

func countDecision(c *prometheus.CounterVec) func(*http.Request, auth.Outcome) {
	return func(_ *http.Request, o auth.Outcome) {
		c.With(prometheus.Labels{outcomeLabel: string(o)}).Inc()
	}
}
