// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmidt-org/redactgate/internal/userdata"
)

func parse(t *testing.T, args ...string) (CLI, error) {
	t.Helper()

	var cli CLI
	parser, err := kong.New(&cli, kong.Name("userdata"))
	require.NoError(t, err)

	_, err = parser.Parse(args)
	return cli, err
}

func TestCLIEnvironment(t *testing.T) {
	t.Setenv("PERSONAL_DATA_DB_USERNAME", "holberton")
	t.Setenv("PERSONAL_DATA_DB_PASSWORD", "secret")
	t.Setenv("PERSONAL_DATA_DB_HOST", "db.example.com:3307")
	t.Setenv("PERSONAL_DATA_DB_NAME", "my_db")

	cli, err := parse(t)
	require.NoError(t, err)
	assert.Equal(t, userdata.Config{
		Username: "holberton",
		Password: "secret",
		Host:     "db.example.com:3307",
		Name:     "my_db",
	}, cli.config())
}

func TestCLIDefaults(t *testing.T) {
	t.Setenv("PERSONAL_DATA_DB_NAME", "my_db")

	cli, err := parse(t)
	require.NoError(t, err)
	assert.Equal(t, userdata.Config{
		Username: "root",
		Host:     "localhost",
		Name:     "my_db",
	}, cli.config())
}

func TestCLIFlagsOverride(t *testing.T) {
	t.Setenv("PERSONAL_DATA_DB_NAME", "from_env")

	cli, err := parse(t, "--name", "from_flag", "--host", "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "from_flag", cli.Name)
	assert.Equal(t, "127.0.0.1", cli.Host)
}

func TestCLIRequiresName(t *testing.T) {
	// register the restore, then clear the variable entirely
	t.Setenv("PERSONAL_DATA_DB_NAME", "")
	require.NoError(t, os.Unsetenv("PERSONAL_DATA_DB_NAME"))

	_, err := parse(t)
	assert.Error(t, err)
}

func TestRunInvalidConfig(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), CLI{Username: "root", Host: "localhost"}, &out)
	assert.Error(t, err)
	assert.Empty(t, out.String())
}
