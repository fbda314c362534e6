// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package redactgate

import (
	"github.com/spf13/viper"
	"github.com/xmidt-org/arrange"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Options assembles the complete service from a configuration and logger
// produced by Setup.
func Options(v *viper.Viper, l *zap.Logger) fx.Option {
	return fx.Options(
		arrange.LoggerFunc(l.Sugar().Infof),
		fx.Supply(l),
		fx.Supply(v),
		arrange.ForViper(v),
		ProvideTracing(),
		ProvideAuthChain(),
		ProvideServers(),
		ProvideHandlers(),
	)
}
