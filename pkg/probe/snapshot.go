package probe

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Reserved snapshot keys.
const (
	// FuncKey marks a function: {"$fn": <return value>}.
	FuncKey = "$fn"
	// ProtoKey holds inherited properties: {"$proto": {...}}.
	ProtoKey = "$proto"
)

// Snapshot is a serialisable description of an environment, as captured by
// a client-side collector. Window is the global object tree; Elements backs
// document.createElement by tag; Events lists the event interfaces that
// document.createEvent accepts.
type Snapshot struct {
	Window   map[string]any            `json:"window" yaml:"window"`
	Elements map[string]map[string]any `json:"elements,omitempty" yaml:"elements,omitempty"`
	Events   []string                  `json:"events,omitempty" yaml:"events,omitempty"`
}

// Probe builds an Oracle over the snapshot.
func (s Snapshot) Probe() *Probe {
	if s.Window == nil {
		return New(nil)
	}
	window, _ := convert(s.Window).(*Object)
	if doc, ok := window.Lookup("document"); ok || len(s.Elements) > 0 || len(s.Events) > 0 {
		d, _ := doc.(*Object)
		window = window.With("document", s.document(d))
	}
	return New(window)
}

// document attaches createElement and createEvent unless the snapshot
// already described them.
func (s Snapshot) document(d *Object) *Object {
	if d == nil {
		d = NewObject(nil)
	}
	if !d.HasOwn("createElement") {
		elements := make(map[string]*Object, len(s.Elements))
		for tag, props := range s.Elements {
			obj, _ := convert(props).(*Object)
			elements[strings.ToLower(tag)] = obj
		}
		d = d.With("createElement", Func(func(args ...any) any {
			tag, _ := first(args).(string)
			if el, ok := elements[strings.ToLower(tag)]; ok && el != nil {
				return el
			}
			return NewObject(nil)
		}))
	}
	if !d.HasOwn("createEvent") && len(s.Events) > 0 {
		events := slices.Clone(s.Events)
		d = d.With("createEvent", Func(func(args ...any) any {
			kind, _ := first(args).(string)
			if slices.Contains(events, kind) {
				return NewObject(map[string]any{"type": kind})
			}
			return false
		}))
	}
	return d
}

// ParseJSON decodes a JSON snapshot into an Oracle.
func ParseJSON(data []byte) (*Probe, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Join(ErrInvalidSnapshot, err)
	}
	return s.Probe(), nil
}

// ParseYAML decodes a YAML snapshot into an Oracle.
func ParseYAML(data []byte) (*Probe, error) {
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Join(ErrInvalidSnapshot, err)
	}
	return s.Probe(), nil
}

// LoadFile reads a snapshot from disk, choosing the decoder by extension.
func LoadFile(path string) (*Probe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrInvalidSnapshot, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseJSON(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	}
	return nil, ErrUnsupportedFormat
}

func convert(v any) any {
	switch x := v.(type) {
	case map[string]any:
		if ret, ok := x[FuncKey]; ok && len(x) == 1 {
			out := convert(ret)
			return Func(func(...any) any { return out })
		}
		props := make(map[string]any, len(x))
		var proto *Object
		for k, val := range x {
			if k == ProtoKey {
				proto, _ = convert(val).(*Object)
				continue
			}
			props[k] = convert(val)
		}
		return NewObject(props).WithProto(proto)
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = convert(val)
		}
		return out
	}
	return v
}

func first(args []any) any {
	if len(args) == 0 {
		return nil
	}
	return args[0]
}
