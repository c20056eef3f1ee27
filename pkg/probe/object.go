package probe

import (
	"maps"
	"math"
	"slices"
)

// Object is a property bag with an optional prototype, modelling the
// own-versus-inherited distinction of browser objects.
// Objects are immutable once built; use NewObject and WithProto.
type Object struct {
	props map[string]any
	proto *Object
}

var _ Scope = (*Object)(nil)

// NewObject copies props into a new Object.
func NewObject(props map[string]any) *Object {
	o := &Object{props: make(map[string]any, len(props))}
	maps.Copy(o.props, props)
	return o
}

// WithProto returns a copy of o inheriting from proto.
func (o *Object) WithProto(proto *Object) *Object {
	if o == nil {
		return &Object{props: map[string]any{}, proto: proto}
	}
	return &Object{props: o.props, proto: proto}
}

// With returns a copy of o with name set to v.
func (o *Object) With(name string, v any) *Object {
	props := map[string]any{}
	var proto *Object
	if o != nil {
		maps.Copy(props, o.props)
		proto = o.proto
	}
	props[name] = v
	return &Object{props: props, proto: proto}
}

func (o *Object) Lookup(name string) (any, bool) {
	// prototype chains from snapshots are shallow; the depth cap only stops cycles
	for cur, depth := o, 0; cur != nil && depth < 64; cur, depth = cur.proto, depth+1 {
		if v, ok := cur.props[name]; ok {
			return v, true
		}
	}
	return nil, false
}

func (o *Object) HasOwn(name string) bool {
	if o == nil {
		return false
	}
	v, ok := o.props[name]
	return ok && v != nil
}

// Keys returns the own property names of o in sorted order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(o.props))
}

// ForIn calls fn for every own property of obj in key order and stops
// early when fn returns false. Unsupported values are ignored.
func ForIn(obj any, fn func(key string, value any) bool) {
	switch s := obj.(type) {
	case *Object:
		for _, k := range s.Keys() {
			if !fn(k, s.props[k]) {
				return
			}
		}
	case map[string]any:
		for _, k := range slices.Sorted(maps.Keys(s)) {
			if !fn(k, s[k]) {
				return
			}
		}
	}
}

// Truthy reports whether v would pass a boolean test in a browser:
// nil, false, zero, NaN and the empty string are falsy.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case int:
		return x != 0
	case int32:
		return x != 0
	case int64:
		return x != 0
	case uint:
		return x != 0
	case uint64:
		return x != 0
	case float32:
		return x != 0 && !math.IsNaN(float64(x))
	case float64:
		return x != 0 && !math.IsNaN(x)
	case *Object:
		return x != nil
	}
	return true
}
