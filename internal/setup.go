// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package redactgate

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/xmidt-org/redactgate/internal/auth"
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

// convenient global values
const (
	ApplicationName = "redactgate"
	apiVersion      = "v1"
	apiBase         = "api/" + apiVersion
)

const (
	serverKey        = "server"
	excludedPathsKey = "excludedPaths"
	loggingKey       = "logging"
	prometheusKey    = "prometheus"
	prometheusHTTP   = "prometheus.handler"
	TracingConfigKey = "tracing"
)

var defaults = map[string]interface{}{
	serverKey + ".address":           ":6100",
	serverKey + ".readHeaderTimeout": "5s",
	excludedPathsKey:                 auth.DefaultExcludedPaths,
}

func setupFlagSet(fs *pflag.FlagSet) {
	fs.StringP("file", "f", "", "the configuration file to use.  Overrides the search path.")
	fs.BoolP("debug", "d", false, "enables debug logging.  Overrides configuration.")
	fs.BoolP("version", "v", false, "print version and exit")
}

// Setup parses args, reads the configuration file and builds the service
// logger from the "logging" section.
func Setup(args []string) (*viper.Viper, *zap.Logger, *pflag.FlagSet, error) {
	fs := pflag.NewFlagSet(ApplicationName, pflag.ContinueOnError)
	setupFlagSet(fs)
	err := fs.Parse(args)
	if err != nil {
		return nil, nil, fs, fmt.Errorf("failed to create parse args: %w", err)
	}

	v := viper.New()
	for k, va := range defaults {
		v.SetDefault(k, va)
	}

	if file, _ := fs.GetString("file"); len(file) > 0 {
		v.SetConfigFile(file)
		err = v.ReadInConfig()
	} else {
		v.SetConfigName(ApplicationName)
		v.AddConfigPath(fmt.Sprintf("/etc/%s", ApplicationName))
		v.AddConfigPath(fmt.Sprintf("$HOME/.%s", ApplicationName))
		v.AddConfigPath(".")
		err = v.ReadInConfig()
	}
	if err != nil {
		return v, nil, fs, fmt.Errorf("failed to read config file: %w", err)
	}

	if debug, _ := fs.GetBool("debug"); debug {
		v.Set(loggingKey+".level", "DEBUG")
	}

	var c sallust.Config
	if err = v.UnmarshalKey(loggingKey, &c); err != nil {
		return v, nil, fs, fmt.Errorf("failed to unmarshal logging config: %w", err)
	}

	l, err := c.Build()
	if err != nil {
		return v, nil, fs, fmt.Errorf("failed to build logger: %w", err)
	}

	return v, l, fs, nil
}
