package types

// Env is the scoped type environment the checker threads through a
// program's function bodies. Frames are copied by value on nesting
// (NewChild), so mutating a child frame never leaks into its parent —
// the checker never has to unwind a binding when leaving a scope.
type Env struct {
	frames []map[string]Type
}

// NewEnv returns an environment with a single, empty global frame.
func NewEnv() *Env {
	return &Env{frames: []map[string]Type{{}}}
}

// NewChild returns a new environment with one more frame than e,
// copying every existing frame's bindings by value. Inserting into
// the child's new innermost frame cannot affect e or any other child
// taken from it.
func (e *Env) NewChild() *Env {
	frames := make([]map[string]Type, len(e.frames)+1)
	for i, f := range e.frames {
		cp := make(map[string]Type, len(f))
		for k, v := range f {
			cp[k] = v
		}
		frames[i] = cp
	}
	frames[len(e.frames)] = make(map[string]Type)
	return &Env{frames: frames}
}

// Insert binds name in the innermost frame.
func (e *Env) Insert(name string, t Type) {
	e.frames[len(e.frames)-1][name] = t
}

// Lookup searches frames from innermost to outermost, returning
// (type, true) on the first match.
func (e *Env) Lookup(name string) (Type, bool) {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if t, ok := e.frames[i][name]; ok {
			return t, true
		}
	}
	return nil, false
}
