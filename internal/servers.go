// SPDX-FileCopyrightText: 2022 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package redactgate

import (
	"github.com/justinas/alice"
	"github.com/xmidt-org/arrange"
	"github.com/xmidt-org/arrange/arrangehttp"
	"github.com/xmidt-org/touchstone"
	"github.com/xmidt-org/touchstone/touchhttp"
	"go.uber.org/fx"
)

const primaryServerName = "server_primary"

type primaryMetricMiddlewareIn struct {
	fx.In
	Primary alice.Chain `name:"middleware_primary_metrics"`
}

type metricMiddlewareOut struct {
	fx.Out
	Primary alice.Chain `name:"middleware_primary_metrics"`
}

// ProvideServers supplies the primary server, configured from the "server"
// key, and its *mux.Router named "server_primary".  Every request through
// the server is instrumented with the touchhttp server metrics.
func ProvideServers() fx.Option {
	return fx.Options(
		fx.Provide(metricMiddleware),
		arrangehttp.Server{
			Name: primaryServerName,
			Key:  serverKey,
			Inject: arrange.Inject{
				primaryMetricMiddlewareIn{},
			},
		}.Provide(),
	)
}

func metricMiddleware(f *touchstone.Factory) (out metricMiddlewareOut, err error) {
	var bundle touchhttp.ServerBundle

	primary, err := bundle.NewInstrumenter(
		touchhttp.ServerLabel, primaryServerName,
	)(f)
	if err != nil {
		return
	}

	out.Primary = alice.New(primary.Then)
	return
}
