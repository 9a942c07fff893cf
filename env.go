// env.go — lexically scoped environment frames.
package cahlang

// Env is one scope's name→value bindings plus a link to the enclosing
// frame. Frames form an acyclic chain rooted at the interpreter's global
// frame; lookups walk parent-ward.
type Env struct {
	parent *Env
	table  map[string]Value
}

// NewEnv creates a new frame with the given parent (which may be nil).
func NewEnv(parent *Env) *Env {
	return &Env{parent: parent, table: make(map[string]Value)}
}

// Define binds name to v in this frame only, shadowing any outer binding.
// A later Define for the same name overwrites.
func (e *Env) Define(name string, v Value) {
	e.table[name] = v
}

// Get retrieves the nearest visible binding. The name token is kept for
// line attribution when the lookup fails.
func (e *Env) Get(name Token) (Value, error) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.table[name.Lexeme]; ok {
			return v, nil
		}
	}
	return None, &RuntimeError{Token: name, Msg: "Undefined variable '" + name.Lexeme + "'."}
}

// Assign mutates the nearest existing binding in place. It never
// implicitly declares; assigning an unknown name is a runtime error.
func (e *Env) Assign(name Token, v Value) error {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.table[name.Lexeme]; ok {
			env.table[name.Lexeme] = v
			return nil
		}
	}
	return &RuntimeError{Token: name, Msg: "Undefined variable '" + name.Lexeme + "'."}
}
