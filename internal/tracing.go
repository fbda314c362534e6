// SPDX-FileCopyrightText: 2022 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package redactgate

import (
	"github.com/xmidt-org/arrange"
	"github.com/xmidt-org/candlelight"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type TracingConfigIn struct {
	fx.In
	TracingConfig candlelight.Config
	Logger        *zap.Logger
}

// ProvideTracing supplies the candlelight.Tracing configured under the
// "tracing" key.  An empty section yields the noop provider.
func ProvideTracing() fx.Option {
	return fx.Provide(
		arrange.UnmarshalKey(TracingConfigKey, candlelight.Config{}),
		loadTracing,
	)
}

func loadTracing(in TracingConfigIn) (candlelight.Tracing, error) {
	traceConfig := in.TracingConfig
	traceConfig.ApplicationName = ApplicationName
	tracing, err := candlelight.New(traceConfig)
	if err != nil {
		return candlelight.Tracing{}, err
	}
	in.Logger.Info("tracing status", zap.Bool("enabled", !tracing.IsNoop()))
	return tracing, nil
}
