// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestSlogHandler_Handle(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	slogger := slog.New(NewSlogHandlerWithLogger(zerolog.New(&buf)))

	slogger.Warn("service restarted",
		"service", "http",
		"attempt", 3,
		"ok", true,
		"backoff", 2*time.Second,
		"err", errors.New("listener closed"),
	)

	out := buf.String()
	for _, want := range []string{
		`"level":"warn"`,
		`"message":"service restarted"`,
		`"service":"http"`,
		`"attempt":3`,
		`"ok":true`,
		`"err":"listener closed"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		logger zerolog.Level
		level  slog.Level
		want   bool
	}{
		{"warn logger drops info", zerolog.WarnLevel, slog.LevelInfo, false},
		{"warn logger keeps error", zerolog.WarnLevel, slog.LevelError, true},
		{"info logger keeps warn", zerolog.InfoLevel, slog.LevelWarn, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := NewSlogHandlerWithLogger(zerolog.New(nil).Level(tt.logger))
			if got := h.Enabled(t.Context(), tt.level); got != tt.want {
				t.Errorf("Enabled(%v) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestSlogHandler_AttrsAndGroups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	var h slog.Handler = NewSlogHandlerWithLogger(zerolog.New(&buf))
	h = h.WithAttrs([]slog.Attr{slog.String("supervisor", "collegerank")})
	h = h.WithGroup("event")

	slog.New(h).Info("tick",
		"kind", "backoff",
		slog.Group("service", slog.String("name", "http")),
	)

	out := buf.String()
	if strings.Contains(out, "event.supervisor") {
		t.Errorf("attribute added before the group was nested: %s", out)
	}
	for _, want := range []string{
		`"supervisor":"collegerank"`,
		`"event.kind":"backoff"`,
		`"event.service.name":"http"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestSlogHandler_WithAttrsDoesNotShare(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := NewSlogHandlerWithLogger(zerolog.New(&buf))
	_ = base.WithAttrs([]slog.Attr{slog.String("leaked", "yes")})

	slog.New(base).Info("plain")
	if strings.Contains(buf.String(), "leaked") {
		t.Errorf("WithAttrs modified the parent handler: %s", buf.String())
	}
}

func TestSlogToZerologLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   slog.Level
		want zerolog.Level
	}{
		{slog.LevelDebug - 4, zerolog.TraceLevel},
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
		{slog.LevelError + 4, zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		if got := slogToZerologLevel(tt.in); got != tt.want {
			t.Errorf("slogToZerologLevel(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
