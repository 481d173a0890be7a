// Package slogexpect plugs an expect.Layer into the log/slog pipeline.
//
// Handler is a passive observer: it formats every record into a single
// payload string, offers it to the assertion layer, and optionally forwards
// the record to a wrapped handler. The engine never inspects record metadata
// itself; payload extraction happens entirely here.
//
//	layer := expect.NewLayer()
//	logger := slog.New(slogexpect.New(layer, slog.NewTextHandler(os.Stderr, nil)))
//
//	listening := layer.Matches("server listening addr=:8080")
//	logger.Info("server listening", "addr", ":8080")
//	listening.Assert(t)
package slogexpect

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/roach88/logexpect/expect"
)

// Handler is a slog.Handler that delivers every record's payload to an
// assertion layer before forwarding it to an optional inner handler.
type Handler struct {
	layer  *expect.Layer
	next   slog.Handler
	fixed  string   // pre-rendered WithAttrs attributes
	groups []string // groups currently open, applied to record attributes
}

var _ slog.Handler = (*Handler)(nil)

// New wraps next with assertion delivery to layer. next may be nil, in which
// case records are consumed after delivery.
func New(layer *expect.Layer, next slog.Handler) *Handler {
	return &Handler{layer: layer, next: next}
}

// Enabled always reports true: level filtering belongs to the inner handler
// and to the logger, and an expectation must be able to observe every record
// the program emits. Forwarding still honors the inner handler's level.
func (h *Handler) Enabled(context.Context, slog.Level) bool {
	return true
}

// Handle formats the record as "msg key=value ..." (WithAttrs attributes
// first, then record attributes, group names dot-joined into keys), delivers
// the payload, and forwards the record when the inner handler wants it.
func (h *Handler) Handle(ctx context.Context, rec slog.Record) error {
	var b strings.Builder
	b.WriteString(rec.Message)
	b.WriteString(h.fixed)
	rec.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, h.groups, a)
		return true
	})
	h.layer.Deliver(b.String())

	if h.next != nil && h.next.Enabled(ctx, rec.Level) {
		return h.next.Handle(ctx, rec)
	}
	return nil
}

// WithAttrs returns a handler that includes attrs, qualified by the groups
// open right now, in every payload.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var b strings.Builder
	for _, a := range attrs {
		writeAttr(&b, h.groups, a)
	}
	clone := *h
	clone.fixed = h.fixed + b.String()
	if h.next != nil {
		clone.next = h.next.WithAttrs(attrs)
	}
	return &clone
}

// WithGroup returns a handler that prefixes subsequent attribute keys with
// name, dot-separated.
func (h *Handler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.groups = append(append([]string(nil), h.groups...), name)
	if h.next != nil {
		clone.next = h.next.WithGroup(name)
	}
	return &clone
}

func writeAttr(b *strings.Builder, groups []string, a slog.Attr) {
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		for _, ga := range v.Group() {
			writeAttr(b, append(groups, a.Key), ga)
		}
		return
	}
	b.WriteByte(' ')
	for _, g := range groups {
		b.WriteString(g)
		b.WriteByte('.')
	}
	b.WriteString(a.Key)
	b.WriteByte('=')
	fmt.Fprintf(b, "%v", v.Any())
}
