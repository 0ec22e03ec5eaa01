package interp

// Callable is any Lox value that can appear in call position: user
// functions, bound methods, classes (as constructors) and natives.
type Callable interface {
	Arity() int
	Call(in *Interpreter, args []interface{}) (interface{}, error)
	String() string
}
