// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package redactgate

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/xmidt-org/touchstone"
	"go.uber.org/fx"
)

const (
	// metric names
	authDecisionsCounter = "auth_decisions"

	// metric labels
	outcomeLabel = "outcome"
)

func provideMetrics() fx.Option {
	return touchstone.CounterVec(
		prometheus.CounterOpts{
			Name: authDecisionsCounter,
			Help: "Count of authentication decisions by outcome.",
		},
		[]string{outcomeLabel}...,
	)
}
