// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// Package redact scrubs personally identifiable values out of key=value log
// lines before they are written to a sink.
package redact

import (
	"fmt"
	"regexp"
)

const (
	// DefaultMarker replaces every redacted value.
	DefaultMarker = "***"

	// DefaultSeparator terminates each key=value token.
	DefaultSeparator = ";"
)

// PIIFields are the field names considered sensitive by default.
var PIIFields = []string{"name", "email", "phone", "ssn", "password"}

type rule struct {
	re          *regexp.Regexp
	replacement string
}

// Redactor holds a precompiled set of field patterns.
type Redactor struct {
	rules []rule
}

// New compiles one pattern per field.  Field names and the separator are not
// quoted, so regular expression syntax inside them changes what matches.
func New(fields []string, marker, separator string) (*Redactor, error) {
	r := &Redactor{
		rules: make([]rule, 0, len(fields)),
	}

	for _, field := range fields {
		re, err := compile(field, separator)
		if err != nil {
			return nil, fmt.Errorf("invalid redaction field %q: %w", field, err)
		}

		r.rules = append(r.rules, rule{
			re:          re,
			replacement: field + "=" + marker + separator,
		})
	}

	return r, nil
}

// Redact applies every rule to message, in field order.
func (r *Redactor) Redact(message string) string {
	if r == nil {
		return message
	}

	for _, rl := range r.rules {
		message = rl.re.ReplaceAllLiteralString(message, rl.replacement)
	}

	return message
}

// Redact rewrites each field=value<separator> occurrence in message to
// field=marker<separator>.  Matching stops at the first separator after the
// '='.  Fields whose pattern does not compile are skipped.
func Redact(fields []string, marker, message, separator string) string {
	for _, field := range fields {
		re, err := compile(field, separator)
		if err != nil {
			continue
		}

		message = re.ReplaceAllLiteralString(message, field+"="+marker+separator)
	}

	return message
}

func compile(field, separator string) (*regexp.Regexp, error) {
	return regexp.Compile(field + "=.*?" + separator)
}
