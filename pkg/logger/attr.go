package logger

import (
	"log/slog"
	"strconv"
)

// MaxSignatureLen caps how much of a self-reported signature ends up in logs.
const MaxSignatureLen = 256

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under the key "request_id".
// If id is nil, it returns an empty Attr.
func RequestID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}

// EnvironmentID records the classified environment under the key "environment_id".
// If id is nil, it returns an empty Attr.
func EnvironmentID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("environment_id", id)
}

// Family records the assigned family under the key "family".
func Family(name string) slog.Attr {
	return slog.String("family", name)
}

// Category records the display category under the key "category".
func Category(name string) slog.Attr {
	return slog.String("category", name)
}

// Signature records the self-reported signature under the key "signature",
// truncated to MaxSignatureLen bytes. Empty signatures produce an empty Attr.
func Signature(sig string) slog.Attr {
	if sig == "" {
		return slog.Attr{}
	}
	if len(sig) > MaxSignatureLen {
		sig = sig[:MaxSignatureLen] + "..."
	}
	return slog.String("signature", sig)
}

// Sink records the report sink name under the key "sink".
func Sink(name string) slog.Attr {
	return slog.String("sink", name)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
