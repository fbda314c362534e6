// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/xmidt-org/redactgate/internal/redact"
	"github.com/xmidt-org/redactgate/internal/userdata"
	"go.uber.org/zap/zapcore"
)

// CLI reads the database location from flags or the environment.
type CLI struct {
	Username string `env:"PERSONAL_DATA_DB_USERNAME" default:"root" help:"Database user."`
	Password string `env:"PERSONAL_DATA_DB_PASSWORD" default:"" help:"Database password."`
	Host     string `env:"PERSONAL_DATA_DB_HOST" default:"localhost" help:"Database host, optionally with a port."`
	Name     string `env:"PERSONAL_DATA_DB_NAME" required:"" help:"Database name."`
}

func (c CLI) config() userdata.Config {
	return userdata.Config{
		Username: c.Username,
		Password: c.Password,
		Host:     c.Host,
		Name:     c.Name,
	}
}

func run(ctx context.Context, c CLI, w io.Writer) error {
	logger, err := redact.NewLogger(userdata.LoggerName, w, zapcore.InfoLevel, redact.EncoderConfig{})
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	db, err := userdata.Open(ctx, c.config())
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err = userdata.Dump(ctx, db, logger, redact.DefaultSeparator); err != nil {
		return fmt.Errorf("failed to dump users: %w", err)
	}

	return nil
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("userdata"),
		kong.Description("Logs every row of the users table with PII fields redacted."),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kctx.FatalIfErrorf(run(ctx, cli, os.Stderr))
}
