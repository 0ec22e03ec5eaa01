package interp

import "time"

// clockFn is the native `clock()` builtin: wall-clock seconds as a double,
// installed into globals by Interpreter.EnableNatives.
type clockFn struct{}

func (clockFn) Arity() int { return 0 }

func (clockFn) Call(in *Interpreter, args []interface{}) (interface{}, error) {
	return float64(time.Now().UnixNano()) / float64(time.Second), nil
}

func (clockFn) String() string { return "<native fn clock>" }
