package probe

import "strings"

// Query is a named capability test evaluated against an Oracle.
// Queries compose into predicate and checkpoint tables.
type Query struct {
	Name string
	Test func(o Oracle) bool
}

// Eval runs the query. It never panics; a failing probe evaluates to false.
func (q Query) Eval(o Oracle) (ok bool) {
	if q.Test == nil || o == nil {
		return false
	}
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return q.Test(o)
}

func (q Query) String() string { return q.Name }

// Resolve walks a dotted path from the root, e.g. "navigator.connection".
// An empty path resolves to nil, which Has and Can treat as the root.
func Resolve(o Oracle, path string) any {
	if path == "" {
		return nil
	}
	var cur any
	for part := range strings.SplitSeq(path, ".") {
		cur = o.Has(part, cur)
		if !Truthy(cur) {
			return false
		}
	}
	return cur
}

// Always matches every environment. It terminates tables with a floor entry.
func Always() Query {
	return Query{Name: "always", Test: func(Oracle) bool { return true }}
}

// Global is true when the named global holds a truthy value.
func Global(name string) Query {
	return Query{Name: name, Test: func(o Oracle) bool {
		return Truthy(o.Has(name, nil))
	}}
}

// Defined is true when the object at path defines name, even if falsy.
func Defined(path, name string) Query {
	return Query{Name: join(path, name), Test: func(o Oracle) bool {
		if path == "" {
			return definedAtRoot(o, name)
		}
		return o.Can(Resolve(o, path), name)
	}}
}

// Present is true when name on the object at path holds a truthy value.
func Present(path, name string) Query {
	return Query{Name: join(path, name), Test: func(o Oracle) bool {
		if path == "" {
			return Truthy(o.Has(name, nil))
		}
		scope := Resolve(o, path)
		if !Truthy(scope) {
			return false
		}
		return Truthy(o.Has(name, scope))
	}}
}

// Element is true when a freshly created element of tag defines name.
func Element(tag, name string) Query {
	return Query{Name: "<" + tag + ">." + name, Test: func(o Oracle) bool {
		return o.Can(CreateElement(o, tag), name)
	}}
}

// Not negates q.
func Not(q Query) Query {
	return Query{Name: "!" + q.Name, Test: func(o Oracle) bool { return !q.Eval(o) }}
}

// All is true when every query matches.
func All(qs ...Query) Query {
	return Query{Name: joinNames(qs, " && "), Test: func(o Oracle) bool {
		for _, q := range qs {
			if !q.Eval(o) {
				return false
			}
		}
		return true
	}}
}

// Any is true when at least one query matches.
func Any(qs ...Query) Query {
	return Query{Name: joinNames(qs, " || "), Test: func(o Oracle) bool {
		for _, q := range qs {
			if q.Eval(o) {
				return true
			}
		}
		return false
	}}
}

// CreateElement invokes document.createElement(tag) through the oracle.
func CreateElement(o Oracle, tag string) any {
	return o.Run(o.Has("document", nil), "createElement")(tag)
}

// CreateEvent invokes document.createEvent(kind) through the oracle.
// It returns false when the environment does not support the event type.
func CreateEvent(o Oracle, kind string) any {
	return o.Run(o.Has("document", nil), "createEvent")(kind)
}

// definedAtRoot answers can(window, name) for oracles rooted elsewhere.
func definedAtRoot(o Oracle, name string) bool {
	if p, ok := o.(*Probe); ok {
		return p.Can(p.Root(), name)
	}
	return o.Has(name, nil) != false
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func joinNames(qs []Query, sep string) string {
	names := make([]string, len(qs))
	for i, q := range qs {
		names[i] = q.Name
	}
	return "(" + strings.Join(names, sep) + ")"
}
