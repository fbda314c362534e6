// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// Package userdata reads the users table and logs every row through a
// redacting logger.
package userdata

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gopkg.in/dealancer/validate.v2"
)

const (
	// LoggerName is the name the row logger is registered under.
	LoggerName = "user_data"

	usersQuery = "SELECT * FROM users;"
	driverName = "mysql"
)

// Config locates the personal data database.
type Config struct {
	Username string `validate:"empty=false"`
	Password string
	Host     string `validate:"empty=false"`
	Name     string `validate:"empty=false"`
}

// DSN renders c as a MySQL data source name.  A host without a port gets the
// driver's default port.
func (c Config) DSN() string {
	return c.mysqlConfig().FormatDSN()
}

func (c Config) mysqlConfig() *mysql.Config {
	mc := mysql.NewConfig()
	mc.User = c.Username
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = c.Host
	mc.DBName = c.Name
	return mc
}

// Open connects to the database described by c and verifies the connection.
func Open(ctx context.Context, c Config) (*sql.DB, error) {
	if err := validate.Validate(&c); err != nil {
		return nil, fmt.Errorf("invalid database config: %w", err)
	}

	db, err := sql.Open(driverName, c.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to %s: %w", c.Host, err)
	}

	return db, nil
}

// FormatRow renders a row as column=value tokens joined by separator, in
// column order.  The last token is not followed by separator, so a redactor
// keyed on the same separator leaves the last column as it is.  NULL columns
// render as an empty value.
func FormatRow(columns []string, values []interface{}, separator string) string {
	tokens := make([]string, len(columns))
	for i, col := range columns {
		var v string
		if i < len(values) {
			v = cast.ToString(values[i])
		}
		tokens[i] = col + "=" + v
	}

	return strings.Join(tokens, separator)
}

// Dump logs one INFO line per row of the users table, columns in table order.
// It returns the number of rows logged.
func Dump(ctx context.Context, db *sql.DB, logger *zap.Logger, separator string) (int, error) {
	rows, err := db.QueryContext(ctx, usersQuery)
	if err != nil {
		return 0, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return 0, fmt.Errorf("failed to read columns: %w", err)
	}

	var (
		values = make([]interface{}, len(columns))
		ptrs   = make([]interface{}, len(columns))
		count  int
	)
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return count, fmt.Errorf("failed to scan row %d: %w", count, err)
		}

		logger.Info(FormatRow(columns, values, separator))
		count++
	}

	if err := rows.Err(); err != nil {
		return count, fmt.Errorf("failed to iterate users: %w", err)
	}

	return count, nil
}
