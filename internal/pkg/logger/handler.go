package logger

import (
	"context"
	"errors"
	log "log/slog"
)

// fanoutHandler 同一条记录写给所有启用的下游，错误合并返回
type fanoutHandler []log.Handler

func (f fanoutHandler) Enabled(ctx context.Context, level log.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanoutHandler) Handle(ctx context.Context, r log.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (f fanoutHandler) WithAttrs(attrs []log.Attr) log.Handler {
	return f.each(func(h log.Handler) log.Handler { return h.WithAttrs(attrs) })
}

func (f fanoutHandler) WithGroup(name string) log.Handler {
	return f.each(func(h log.Handler) log.Handler { return h.WithGroup(name) })
}

func (f fanoutHandler) each(fn func(log.Handler) log.Handler) fanoutHandler {
	out := make(fanoutHandler, len(f))
	for i, h := range f {
		out[i] = fn(h)
	}
	return out
}

// tracedOnlyHandler 丢弃不属于任何请求的日志，远端只收请求链路
type tracedOnlyHandler struct {
	next log.Handler
}

func (t tracedOnlyHandler) Enabled(ctx context.Context, level log.Level) bool {
	return t.next.Enabled(ctx, level)
}

func (t tracedOnlyHandler) Handle(ctx context.Context, r log.Record) error {
	if TraceIDFrom(ctx) == "" && !recordHasTrace(r) {
		return nil
	}
	return t.next.Handle(ctx, r)
}

func (t tracedOnlyHandler) WithAttrs(attrs []log.Attr) log.Handler {
	return tracedOnlyHandler{next: t.next.WithAttrs(attrs)}
}

func (t tracedOnlyHandler) WithGroup(name string) log.Handler {
	return tracedOnlyHandler{next: t.next.WithGroup(name)}
}

func recordHasTrace(r log.Record) bool {
	found := false
	r.Attrs(func(a log.Attr) bool {
		found = a.Key == TraceIDKey && a.Value.String() != ""
		return !found
	})
	return found
}
