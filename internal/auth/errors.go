// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	kithttp "github.com/go-kit/kit/transport/http"
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

var (
	ErrUnauthorized = NewCodedError(errors.New("Unauthorized"), http.StatusUnauthorized)
	ErrForbidden    = NewCodedError(errors.New("Forbidden"), http.StatusForbidden)
	ErrNotFound     = NewCodedError(errors.New("Not found"), http.StatusNotFound)
)

// CodedError is an error that carries the HTTP status code it should be
// reported with.
type CodedError interface {
	error
	StatusCode() int
}

type codedError struct {
	error
	statusCode int
}

type GetLoggerFunc func(context.Context) *zap.Logger

func (c *codedError) StatusCode() int {
	return c.statusCode
}

// MarshalJSON renders the error as {"error": "<message>"}.
func (c *codedError) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		"error": c.Error(),
	})
}

func (c *codedError) Unwrap() error {
	return c.error
}

// NewCodedError upgrades an Error to a CodedError
// e must be non-nil to avoid panics
func NewCodedError(e error, code int) CodedError {
	return &codedError{
		error:      e,
		statusCode: code,
	}
}

// EncodeError writes err through go-kit's default encoder, which honors
// StatusCoder and json.Marshaler.
func EncodeError(ctx context.Context, err error, w http.ResponseWriter) {
	kithttp.DefaultErrorEncoder(ctx, err, w)
}

// ErrorLogEncoder decorates the errorEncoder in such a way that
// errors are logged with their corresponding request identifier
func ErrorLogEncoder(getLogger GetLoggerFunc, ee kithttp.ErrorEncoder) kithttp.ErrorEncoder {
	if getLogger == nil {
		getLogger = func(_ context.Context) *zap.Logger {
			return nil
		}
	}

	return func(ctx context.Context, e error, w http.ResponseWriter) {
		code := http.StatusInternalServerError
		var sc kithttp.StatusCoder
		if errors.As(e, &sc) {
			code = sc.StatusCode()
		}
		logger := getLogger(ctx)
		if logger != nil && code != http.StatusNotFound {
			logger.Info("sending non-200, non-404 response",
				zap.Int("code", code),
				zap.String("error", e.Error()),
				zap.String("req_id", middleware.GetReqID(ctx)),
			)
		}
		ee(ctx, e, w)
	}
}

// GetLogger returns the request scoped logger.
func GetLogger(ctx context.Context) *zap.Logger {
	return sallust.Get(ctx)
}
