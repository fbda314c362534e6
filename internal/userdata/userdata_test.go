// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package userdata

import (
	"bytes"
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmidt-org/redactgate/internal/redact"
	"go.uber.org/zap/zapcore"
	_ "modernc.org/sqlite"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	require := require.New(t)

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(err)
	// every connection to :memory: is a fresh database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE users (
		name TEXT, email TEXT, phone TEXT, ssn TEXT, password TEXT,
		ip TEXT, last_login TEXT, user_agent TEXT)`)
	require.NoError(err)

	_, err = db.Exec(`INSERT INTO users VALUES
		('Marlene Wood', 'hwestiii@att.net', '(473) 401-4253', '261-72-6780', 'K5?BMNv',
		 '60ed:c396:2ff:244:bbd0:9208:26f2:93ea', '2019-11-14 06:14:24', 'Mozilla/5.0'),
		('Belen Bailey', 'bcevc@yahoo.com', '(539) 233-4942', '203-38-5395', '^3EZ~TkX',
		 'f724:c5d1:a14d:c4c5:bae2:9457:3769:1969', '2019-11-14 06:16:19', 'Mozilla/5.0')`)
	require.NoError(err)

	return db
}

func TestDump(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	var out bytes.Buffer
	logger, err := redact.NewLogger(LoggerName, &out, zapcore.InfoLevel, redact.EncoderConfig{})
	require.NoError(err)

	count, err := Dump(context.Background(), newTestDB(t), logger, redact.DefaultSeparator)
	require.NoError(err)
	assert.Equal(2, count)

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(lines, 2)

	for _, line := range lines {
		assert.True(strings.HasPrefix(line, "[HOLBERTON] user_data INFO "))
	}
	assert.True(strings.HasSuffix(lines[0],
		": name=***;email=***;phone=***;ssn=***;password=***;ip=60ed:c396:2ff:244:bbd0:9208:26f2:93ea;last_login=2019-11-14 06:14:24;user_agent=Mozilla/5.0"))
	assert.NotContains(out.String(), "Belen Bailey")
	assert.NotContains(out.String(), "^3EZ~TkX")
}

func TestDumpQueryError(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	logger, err := redact.NewLogger(LoggerName, &bytes.Buffer{}, zapcore.InfoLevel, redact.EncoderConfig{})
	require.NoError(t, err)

	count, err := Dump(context.Background(), db, logger, redact.DefaultSeparator)
	assert.Error(t, err)
	assert.Zero(t, count)
}

func TestDumpCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	logger, err := redact.NewLogger(LoggerName, &bytes.Buffer{}, zapcore.InfoLevel, redact.EncoderConfig{})
	require.NoError(t, err)

	_, err = Dump(ctx, newTestDB(t), logger, redact.DefaultSeparator)
	assert.Error(t, err)
}

func TestDumpLastColumn(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(err)
	db.SetMaxOpenConns(1)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE users (ip TEXT, email TEXT)`)
	require.NoError(err)
	_, err = db.Exec(`INSERT INTO users VALUES ('10.0.0.1', 'bob@dylan.com')`)
	require.NoError(err)

	var out bytes.Buffer
	logger, err := redact.NewLogger(LoggerName, &out, zapcore.InfoLevel, redact.EncoderConfig{})
	require.NoError(err)

	_, err = Dump(context.Background(), db, logger, redact.DefaultSeparator)
	require.NoError(err)
	assert.True(strings.HasSuffix(out.String(), ": ip=10.0.0.1;email=bob@dylan.com\n"))
}

func TestFormatRow(t *testing.T) {
	tests := []struct {
		description string
		columns     []string
		values      []interface{}
		expected    string
	}{
		{
			description: "Mixed types",
			columns:     []string{"name", "age", "blob", "missing"},
			values:      []interface{}{"bob", int64(42), []byte("raw"), nil},
			expected:    "name=bob;age=42;blob=raw;missing=",
		},
		{
			description: "Single column",
			columns:     []string{"ssn"},
			values:      []interface{}{"123"},
			expected:    "ssn=123",
		},
		{
			description: "No columns",
			expected:    "",
		},
		{
			description: "Fewer values than columns",
			columns:     []string{"a", "b"},
			values:      []interface{}{1},
			expected:    "a=1;b=",
		},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatRow(tc.columns, tc.values, ";"))
		})
	}
}

func TestConfigDSN(t *testing.T) {
	assert := assert.New(t)
	dsn := Config{
		Username: "root",
		Password: "pw",
		Host:     "localhost",
		Name:     "my_db",
	}.DSN()

	assert.True(strings.HasPrefix(dsn, "root:pw@tcp(localhost"))
	assert.Contains(dsn, "/my_db")
}

func TestOpenInvalidConfig(t *testing.T) {
	db, err := Open(context.Background(), Config{Username: "root", Host: "localhost"})
	assert.Error(t, err)
	assert.Nil(t, db)
}

func TestOpenUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := Open(ctx, Config{Username: "root", Host: "127.0.0.1:1", Name: "my_db"})
	assert.ErrorContains(t, err, "failed to connect to 127.0.0.1:1")
	assert.Nil(t, db)
}
