// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package redact

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	DefaultPrefix     = "[HOLBERTON]"
	DefaultTimeLayout = "2006-01-02 15:04:05,000"
)

var bufferPool = buffer.NewPool()

// EncoderConfig describes the line layout and what gets scrubbed from it.
// Zero values fall back to the package defaults.
type EncoderConfig struct {
	Prefix     string
	Fields     []string
	Marker     string
	Separator  string
	TimeLayout string
}

func (c EncoderConfig) withDefaults() EncoderConfig {
	if c.Prefix == "" {
		c.Prefix = DefaultPrefix
	}
	if c.Fields == nil {
		c.Fields = PIIFields
	}
	if c.Marker == "" {
		c.Marker = DefaultMarker
	}
	if c.Separator == "" {
		c.Separator = DefaultSeparator
	}
	if c.TimeLayout == "" {
		c.TimeLayout = DefaultTimeLayout
	}
	return c
}

// encoder renders "<prefix> <logger> <LEVEL> <time>: <message>" and passes the
// finished line through a Redactor.  Context fields are kept in the embedded
// map encoder and written after the message as key=value tokens.
type encoder struct {
	*zapcore.MapObjectEncoder
	cfg      EncoderConfig
	redactor *Redactor
}

// NewEncoder returns a zapcore.Encoder that redacts every line it produces.
func NewEncoder(cfg EncoderConfig) (zapcore.Encoder, error) {
	cfg = cfg.withDefaults()
	r, err := New(cfg.Fields, cfg.Marker, cfg.Separator)
	if err != nil {
		return nil, err
	}

	return &encoder{
		MapObjectEncoder: zapcore.NewMapObjectEncoder(),
		cfg:              cfg,
		redactor:         r,
	}, nil
}

func (e *encoder) Clone() zapcore.Encoder {
	return &encoder{
		MapObjectEncoder: e.cloneFields(),
		cfg:              e.cfg,
		redactor:         e.redactor,
	}
}

func (e *encoder) cloneFields() *zapcore.MapObjectEncoder {
	m := zapcore.NewMapObjectEncoder()
	for k, v := range e.Fields {
		m.Fields[k] = v
	}
	return m
}

func (e *encoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	all := e.cloneFields()
	for _, f := range fields {
		f.AddTo(all)
	}

	var line strings.Builder
	line.WriteString(e.cfg.Prefix)
	line.WriteByte(' ')
	line.WriteString(ent.LoggerName)
	line.WriteByte(' ')
	line.WriteString(ent.Level.CapitalString())
	line.WriteByte(' ')
	line.WriteString(ent.Time.Format(e.cfg.TimeLayout))
	line.WriteString(": ")
	line.WriteString(ent.Message)

	if len(all.Fields) > 0 {
		if !strings.HasSuffix(ent.Message, e.cfg.Separator) && len(ent.Message) > 0 {
			line.WriteString(e.cfg.Separator)
		}
		writeFields(&line, all.Fields, e.cfg.Separator)
	}

	if ent.Stack != "" {
		line.WriteByte('\n')
		line.WriteString(ent.Stack)
	}

	buf := bufferPool.Get()
	buf.AppendString(e.redactor.Redact(line.String()))
	buf.AppendString(zapcore.DefaultLineEnding)
	return buf, nil
}

func writeFields(w *strings.Builder, fields map[string]interface{}, separator string) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(w, "%s=%v%s", k, fields[k], separator)
	}
}

// NewLogger builds a logger named name that writes redacted lines to w.
func NewLogger(name string, w io.Writer, level zapcore.LevelEnabler, cfg EncoderConfig) (*zap.Logger, error) {
	enc, err := NewEncoder(cfg)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), level)
	return zap.New(core).Named(name), nil
}
