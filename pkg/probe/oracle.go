package probe

// Func is a safely invokable function value found in an environment.
type Func func(args ...any) any

// Scope is anything a probe can resolve names in: a window, a navigator,
// a document or any nested object of an environment.
type Scope interface {
	// Lookup resolves name on the scope or anything it inherits from.
	Lookup(name string) (any, bool)
	// HasOwn reports whether name is defined on the scope itself.
	HasOwn(name string) bool
}

// Oracle answers capability questions about a single environment.
// Every method is total: no call panics, whatever the receiver holds.
type Oracle interface {
	// Has returns the value of name in scope, or false when it is undefined.
	// A nil scope means the root (global) object.
	Has(name string, scope any) any
	// Can reports whether obj defines name, even when the value is falsy.
	Can(obj any, name string) bool
	// Own reports whether obj defines name itself rather than inheriting it.
	Own(obj any, name string) bool
	// Run returns the function obj.name, or a no-op returning false.
	// With an empty name, obj is taken as the name of a global function.
	Run(obj any, name string) Func
}

// Probe is the default Oracle over an in-memory environment model.
type Probe struct {
	root any
}

var _ Oracle = (*Probe)(nil)

// New returns a Probe rooted at the given global object.
// A nil root yields an environment where nothing is defined.
func New(root any) *Probe {
	return &Probe{root: root}
}

// Root returns the global object the probe resolves names against.
func (p *Probe) Root() any {
	if p == nil {
		return nil
	}
	return p.root
}

func (p *Probe) Has(name string, scope any) (v any) {
	defer func() {
		if recover() != nil {
			v = false
		}
	}()
	if scope == nil {
		scope = p.Root()
	}
	if val, ok := lookup(scope, name); ok {
		return val
	}
	return false
}

func (p *Probe) Can(obj any, name string) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	_, ok = lookup(obj, name)
	return ok
}

func (p *Probe) Own(obj any, name string) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	switch s := obj.(type) {
	case nil:
		return false
	case Scope:
		return s.HasOwn(name)
	case map[string]any:
		v, exists := s[name]
		return exists && v != nil
	}
	return false
}

func (p *Probe) Run(obj any, name string) (fn Func) {
	defer func() {
		if recover() != nil {
			fn = noop
		}
	}()
	if name == "" {
		global, ok := obj.(string)
		if !ok {
			return noop
		}
		obj, name = p.Root(), global
	}
	v, ok := lookup(obj, name)
	if !ok {
		return noop
	}
	return guard(asFunc(v))
}

func noop(...any) any { return false }

// guard shields callers from functions that panic.
func guard(f Func) Func {
	if f == nil {
		return noop
	}
	return func(args ...any) (v any) {
		defer func() {
			if recover() != nil {
				v = false
			}
		}()
		return f(args...)
	}
}

func asFunc(v any) Func {
	switch f := v.(type) {
	case Func:
		return f
	case func(...any) any:
		return f
	case func() any:
		return func(...any) any { return f() }
	}
	return nil
}

// lookup treats a nil value the same as an undefined property.
func lookup(scope any, name string) (any, bool) {
	var (
		v  any
		ok bool
	)
	switch s := scope.(type) {
	case nil:
		return nil, false
	case Scope:
		v, ok = s.Lookup(name)
	case map[string]any:
		v, ok = s[name]
	default:
		return nil, false
	}
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}
