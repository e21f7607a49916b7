package interp

import (
	"fmt"

	"github.com/dolthub/swiss"

	"github.com/mna/larch/lang/ast"
	"github.com/mna/larch/lang/token"
)

// Function is a user-defined function or method (spec.md §4.5): it
// captures its declaration node and the environment chain that was
// current at the point of declaration, its closure.
type Function struct {
	Decl          *ast.FunctionStmt
	Closure       *Environment
	IsInitializer bool
}

func (f *Function) Arity() int { return len(f.Decl.Params) }

func (f *Function) String() string { return fmt.Sprintf("<fn: %s>", f.Decl.Name.Lexeme) }

// Bind produces a bound method: a copy of f whose closure is a fresh frame
// holding "this" -> instance, parented on f's original closure (spec.md
// §4.5).
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnvironment(f.Closure)
	env.Define("this", instance)
	return &Function{Decl: f.Decl, Closure: env, IsInitializer: f.IsInitializer}
}

// Call builds a fresh environment parented on the closure, binds
// parameters to arguments, and executes the body as a block (spec.md
// §4.5). A `return` inside the body surfaces here as a panic(returnSignal)
// caught by the deferred recover below; init specially always yields the
// bound instance.
func (f *Function) Call(in *Interp, args []Value) (result Value, err error) {
	env := NewEnvironment(f.Closure)
	for i, p := range f.Decl.Params {
		env.Define(p.Lexeme, args[i])
	}

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		rs, ok := r.(returnSignal)
		if !ok {
			panic(r)
		}
		if f.IsInitializer {
			result, _ = f.Closure.GetAt(0, "this")
			return
		}
		result = rs.value
	}()

	if err := in.executeBlock(f.Decl.Body, env); err != nil {
		return nil, err
	}
	if f.IsInitializer {
		this, _ := f.Closure.GetAt(0, "this")
		return this, nil
	}
	return nil, nil
}

// NativeFunction wraps a host-provided Go function (spec.md §4.5): fixed
// arity, no closure, cannot raise a return signal.
type NativeFunction struct {
	Name  string
	Arity_ int
	Fn    func(in *Interp, args []Value) (Value, error)
}

func (n *NativeFunction) Arity() int { return n.Arity_ }
func (n *NativeFunction) String() string { return fmt.Sprintf("<native fn: %s>", n.Name) }
func (n *NativeFunction) Call(in *Interp, args []Value) (Value, error) { return n.Fn(in, args) }

// Class is a callable that constructs Instances (spec.md §4.5). Its
// method map never mutates after construction (spec.md §3).
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

func (c *Class) String() string { return fmt.Sprintf("<class: %s>", c.Name) }

// findMethod searches c's own method map, then its ancestor chain.
func (c *Class) findMethod(name string) (*Function, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.findMethod(name)
	}
	return nil, false
}

// Arity is init's arity, or 0 if the class has no initializer.
func (c *Class) Arity() int {
	if init, ok := c.findMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// Call constructs a new Instance and, if the class defines init, binds it
// to the instance and invokes it with the same arguments (spec.md §4.5).
func (c *Class) Call(in *Interp, args []Value) (Value, error) {
	instance := NewInstance(c)
	if init, ok := c.findMethod("init"); ok {
		if _, err := init.Bind(instance).Call(in, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// Instance holds a reference to its Class and an independent field map
// (spec.md §3/§4.5).
type Instance struct {
	Class  *Class
	fields *swiss.Map[string, Value]
}

func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, fields: swiss.NewMap[string, Value](4)}
}

func (i *Instance) String() string { return fmt.Sprintf("<class: %s instance>", i.Class.Name) }

// Get implements field lookup (spec.md §4.5): fields shadow methods.
func (i *Instance) Get(name token.Token) (Value, error) {
	if v, ok := i.fields.Get(name.Lexeme); ok {
		return v, nil
	}
	if m, ok := i.Class.findMethod(name.Lexeme); ok {
		return m.Bind(i), nil
	}
	return nil, runtimeErrorf(name, "Undefined property '%s'.", name.Lexeme)
}

// Set implements unconditional field write (spec.md §4.5).
func (i *Instance) Set(name token.Token, value Value) {
	i.fields.Put(name.Lexeme, value)
}
