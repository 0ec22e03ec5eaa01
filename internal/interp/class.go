package interp

import (
	"fmt"

	"github.com/archlox/glox/internal/diag"
	"github.com/archlox/glox/internal/token"
)

// Class is a Lox class: a name, an optional superclass, and its own method
// table. Calling a class constructs an Instance.
type Class struct {
	Name          string
	Superclass    *Class
	Methods       map[string]*Function
	StaticMethods map[string]*Function
}

// NewClass builds a class, methods/staticMethods carrying their defining
// environment already (they are ordinary *Function values).
func NewClass(name string, superclass *Class, methods, staticMethods map[string]*Function) *Class {
	return &Class{Name: name, Superclass: superclass, Methods: methods, StaticMethods: staticMethods}
}

// FindMethod walks the superclass chain looking for an instance method.
func (c *Class) FindMethod(name string) (*Function, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

// findStaticMethod walks the superclass chain for a static/class method,
// used when a Get targets the class object itself rather than an instance.
func (c *Class) findStaticMethod(name string) (*Function, bool) {
	if m, ok := c.StaticMethods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.findStaticMethod(name)
	}
	return nil, false
}

func (c *Class) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

func (c *Class) Call(in *Interpreter, args []interface{}) (interface{}, error) {
	instance := NewInstance(c)
	if init, ok := c.FindMethod("init"); ok {
		if _, err := init.Bind(instance).Call(in, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

func (c *Class) String() string { return c.Name }

// Get implements property access on the class object itself: only static
// methods resolve here (instance methods need an Instance to bind to).
func (c *Class) Get(name token.Token) (interface{}, error) {
	if m, ok := c.findStaticMethod(name.Lexeme); ok {
		return m, nil
	}
	return nil, diag.NewRuntimeError(name, "Undefined property '%s'.", name.Lexeme)
}

// Instance is a runtime Lox object: a class pointer plus a mutable field
// table. Unset fields fall back to method lookup on the class.
type Instance struct {
	class  *Class
	fields map[string]interface{}
}

// NewInstance constructs a fresh, fieldless instance of class.
func NewInstance(class *Class) *Instance {
	return &Instance{class: class, fields: make(map[string]interface{})}
}

// Get reads a field, falling back to a bound method from the class (or its
// superclass chain) when no field of that name is set.
func (i *Instance) Get(name token.Token) (interface{}, error) {
	if v, ok := i.fields[name.Lexeme]; ok {
		return v, nil
	}
	if m, ok := i.class.FindMethod(name.Lexeme); ok {
		return m.Bind(i), nil
	}
	return nil, diag.NewRuntimeError(name, "Undefined property '%s'.", name.Lexeme)
}

// Set writes a field unconditionally; Lox instances are open maps.
func (i *Instance) Set(name token.Token, value interface{}) {
	i.fields[name.Lexeme] = value
}

func (i *Instance) String() string { return fmt.Sprintf("%s instance", i.class.Name) }
