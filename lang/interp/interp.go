// Package interp implements spec.md §4.4 through §4.7: the linked lexical
// environment, the callable model (functions, native functions, classes,
// instances), and the recursive tree-walking evaluator itself. It plays
// the role of the teacher's lang/machine package (github.com/mna/nenuphar/
// lang/machine) but walks the AST directly rather than driving a bytecode
// VM, per this spec's own architecture.
package interp

import (
	"io"
	"math"

	"github.com/mna/larch/lang/ast"
	"github.com/mna/larch/lang/resolver"
	"github.com/mna/larch/lang/token"
)

// Interp holds the two root-environment references spec.md §9 calls for:
// globals is the permanent frame unresolved names always bind against;
// environment is whichever frame is current as execution descends into
// blocks, functions and methods.
type Interp struct {
	globals     *Environment
	environment *Environment
	locals      resolver.Table
	Stdout      io.Writer
}

// New returns an Interp with the single native clock binding (spec.md §6)
// installed in its global frame.
func New(stdout io.Writer) *Interp {
	g := NewEnvironment(nil)
	in := &Interp{globals: g, environment: g, Stdout: stdout}
	defineNatives(g)
	return in
}

// GlobalNames returns the names bound directly in the global frame, for
// the REPL's tab completion.
func (in *Interp) GlobalNames() []string { return in.globals.Names() }

// Run executes stmts against the resolver's side-table. Per spec.md §7, a
// runtime error terminates execution of the remaining statements for this
// call; callers that want a REPL to survive a single bad input should call
// Run once per parsed chunk.
func (in *Interp) Run(stmts []ast.Stmt, locals resolver.Table) error {
	in.locals = locals
	for _, s := range stmts {
		if err := in.execute(s); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interp) execute(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := in.evaluate(s.Expr)
		return err

	case *ast.PrintStmt:
		v, err := in.evaluate(s.Expr)
		if err != nil {
			return err
		}
		io.WriteString(in.Stdout, stringify(v)+"\n")
		return nil

	case *ast.VarStmt:
		var value Value
		if s.Init != nil {
			v, err := in.evaluate(s.Init)
			if err != nil {
				return err
			}
			value = v
		}
		in.environment.Define(s.Name.Lexeme, value)
		return nil

	case *ast.BlockStmt:
		return in.executeBlock(s.Stmts, NewEnvironment(in.environment))

	case *ast.IfStmt:
		cond, err := in.evaluate(s.Cond)
		if err != nil {
			return err
		}
		if truthy(cond) {
			return in.execute(s.Then)
		}
		if s.Else != nil {
			return in.execute(s.Else)
		}
		return nil

	case *ast.WhileStmt:
		return in.executeWhile(s)

	case *ast.BreakStmt:
		panic(breakSignal{})

	case *ast.ContinueStmt:
		panic(continueSignal{})

	case *ast.ReturnStmt:
		var value Value
		if s.Value != nil {
			v, err := in.evaluate(s.Value)
			if err != nil {
				return err
			}
			value = v
		}
		panic(returnSignal{value: value})

	case *ast.FunctionStmt:
		fn := &Function{Decl: s, Closure: in.environment}
		in.environment.Define(s.Name.Lexeme, fn)
		return nil

	case *ast.ClassStmt:
		return in.executeClass(s)

	default:
		panic("interp: unexpected stmt type")
	}
}

// executeBlock runs stmts against env, restoring the previous frame on
// both normal return and on a non-local exit unwinding through it
// (spec.md §4.7).
func (in *Interp) executeBlock(stmts []ast.Stmt, env *Environment) error {
	previous := in.environment
	in.environment = env
	defer func() { in.environment = previous }()

	for _, s := range stmts {
		if err := in.execute(s); err != nil {
			return err
		}
	}
	return nil
}

// executeWhile implements spec.md §4.7's While/break/continue semantics:
// break exits the loop, continue unwinds the current iteration and
// re-tests the condition. When s is a desugared `for` loop, s.Post (the
// increment) still runs after a continue-shortened iteration, matching a
// real for-loop's semantics rather than the body's own scope.
func (in *Interp) executeWhile(s *ast.WhileStmt) error {
	for {
		cond, err := in.evaluate(s.Cond)
		if err != nil {
			return err
		}
		if !truthy(cond) {
			return nil
		}

		brk, err := in.runLoopIteration(s.Body)
		if err != nil {
			return err
		}
		if brk {
			return nil
		}

		if s.Post != nil {
			if _, err := in.evaluate(s.Post); err != nil {
				return err
			}
		}
	}
}

func (in *Interp) runLoopIteration(body ast.Stmt) (brk bool, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		switch r.(type) {
		case breakSignal:
			brk = true
		case continueSignal:
			// iteration ends early; loop re-tests the condition normally
		default:
			panic(r)
		}
	}()
	err = in.execute(body)
	return brk, err
}

// executeClass implements spec.md §4.7's Class declaration sequence,
// including the superclass "super" scope pushed around method closures.
func (in *Interp) executeClass(s *ast.ClassStmt) error {
	var superclass *Class
	if s.Superclass != nil {
		v, err := in.evaluate(s.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*Class)
		if !ok {
			return runtimeErrorf(s.Superclass.Name, "Superclass must be a class.")
		}
		superclass = sc
	}

	in.environment.Define(s.Name.Lexeme, nil)

	methodEnv := in.environment
	if superclass != nil {
		methodEnv = NewEnvironment(in.environment)
		methodEnv.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = &Function{
			Decl:          m,
			Closure:       methodEnv,
			IsInitializer: m.Name.Lexeme == "init",
		}
	}

	class := &Class{Name: s.Name.Lexeme, Superclass: superclass, Methods: methods}
	in.environment.AssignAt(0, s.Name.Lexeme, class)
	return nil
}

func (in *Interp) evaluate(expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return e.Value, nil

	case *ast.GroupingExpr:
		return in.evaluate(e.Expr)

	case *ast.UnaryExpr:
		return in.evalUnary(e)

	case *ast.BinaryExpr:
		return in.evalBinary(e)

	case *ast.LogicalExpr:
		return in.evalLogical(e)

	case *ast.ConditionalExpr:
		cond, err := in.evaluate(e.Cond)
		if err != nil {
			return nil, err
		}
		if truthy(cond) {
			return in.evaluate(e.Then)
		}
		return in.evaluate(e.Else)

	case *ast.VariableExpr:
		return in.lookUpVariable(e.Name, e)

	case *ast.AssignExpr:
		return in.evalAssign(e)

	case *ast.CallExpr:
		return in.evalCall(e)

	case *ast.GetExpr:
		return in.evalGet(e)

	case *ast.SetExpr:
		return in.evalSet(e)

	case *ast.ThisExpr:
		return in.lookUpVariable(e.Keyword, e)

	case *ast.SuperExpr:
		return in.evalSuper(e)

	default:
		panic("interp: unexpected expr type")
	}
}

func (in *Interp) lookUpVariable(name token.Token, expr ast.Expr) (Value, error) {
	if distance, ok := in.locals[expr.ExprID()]; ok {
		v, ok := in.environment.GetAt(distance, name.Lexeme)
		if !ok {
			return nil, runtimeErrorf(name, "Undefined variable '%s'.", name.Lexeme)
		}
		return v, nil
	}
	v, ok := in.globals.GetAt(0, name.Lexeme)
	if !ok {
		return nil, runtimeErrorf(name, "Undefined variable '%s'.", name.Lexeme)
	}
	return v, nil
}

func (in *Interp) evalAssign(e *ast.AssignExpr) (Value, error) {
	value, err := in.evaluate(e.Value)
	if err != nil {
		return nil, err
	}

	if distance, ok := in.locals[e.ExprID()]; ok {
		in.environment.AssignAt(distance, e.Name.Lexeme, value)
		return value, nil
	}

	// Unresolved (global) name: per spec.md §9's Open Question decision,
	// assigning to a name not yet declared silently defines it globally.
	if !in.globals.AssignAt(0, e.Name.Lexeme, value) {
		in.globals.Define(e.Name.Lexeme, value)
	}
	return value, nil
}

func (in *Interp) evalUnary(e *ast.UnaryExpr) (Value, error) {
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Type {
	case token.MINUS:
		n, ok := right.(float64)
		if !ok {
			return nil, runtimeErrorf(e.Op, "Operand must be a number.")
		}
		return -n, nil
	case token.BANG:
		return !truthy(right), nil
	default:
		panic("interp: unexpected unary operator")
	}
}

func (in *Interp) evalLogical(e *ast.LogicalExpr) (Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}

	if e.Op.Type == token.OR {
		if truthy(left) {
			return left, nil
		}
	} else {
		if !truthy(left) {
			return left, nil
		}
	}
	return in.evaluate(e.Right)
}

func (in *Interp) evalBinary(e *ast.BinaryExpr) (Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Type {
	case token.COMMA:
		return right, nil

	case token.EQUAL_EQUAL:
		return equalValues(left, right), nil
	case token.BANG_EQUAL:
		return !equalValues(left, right), nil

	case token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL, token.MINUS, token.STAR:
		ln, lok := left.(float64)
		rn, rok := right.(float64)
		if !lok || !rok {
			return nil, runtimeErrorf(e.Op, "Operands must be numbers.")
		}
		switch e.Op.Type {
		case token.GREATER:
			return ln > rn, nil
		case token.GREATER_EQUAL:
			return ln >= rn, nil
		case token.LESS:
			return ln < rn, nil
		case token.LESS_EQUAL:
			return ln <= rn, nil
		case token.MINUS:
			return ln - rn, nil
		case token.STAR:
			return ln * rn, nil
		}

	case token.SLASH:
		ln, lok := left.(float64)
		rn, rok := right.(float64)
		if !lok || !rok {
			return nil, runtimeErrorf(e.Op, "Operands must be numbers.")
		}
		if rn == 0 {
			return nil, runtimeErrorf(e.Op, "Division by zero.")
		}
		return ln / rn, nil

	case token.PERCENT:
		ln, lok := left.(float64)
		rn, rok := right.(float64)
		if !lok || !rok {
			return nil, runtimeErrorf(e.Op, "Operands must be numbers.")
		}
		return math.Mod(ln, rn), nil

	case token.PLUS:
		return evalPlus(left, right, e.Op)
	}
	panic("interp: unexpected binary operator")
}

func evalPlus(left, right Value, op token.Token) (Value, error) {
	ln, lIsNum := left.(float64)
	rn, rIsNum := right.(float64)
	ls, lIsStr := left.(string)
	rs, rIsStr := right.(string)

	switch {
	case lIsNum && rIsNum:
		return ln + rn, nil
	case lIsStr && rIsStr:
		return ls + rs, nil
	case lIsNum && rIsStr:
		return stringify(ln) + rs, nil
	case lIsStr && rIsNum:
		return ls + stringify(rn), nil
	default:
		return nil, runtimeErrorf(op, "Operands must be two numbers or two strings.")
	}
}

func (in *Interp) evalCall(e *ast.CallExpr) (Value, error) {
	callee, err := in.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(e.Args))
	for i, a := range e.Args {
		v, err := in.evaluate(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, runtimeErrorf(e.Paren, "Can only call functions and classes.")
	}
	if len(args) != callable.Arity() {
		return nil, runtimeErrorf(e.Paren, "Expected %d arguments but got %d.", callable.Arity(), len(args))
	}
	return callable.Call(in, args)
}

func (in *Interp) evalGet(e *ast.GetExpr) (Value, error) {
	obj, err := in.evaluate(e.Object)
	if err != nil {
		return nil, err
	}

	switch o := obj.(type) {
	case *Instance:
		return o.Get(e.Name)
	case *Class:
		// Static-style access on the class value itself: an unbound method
		// lookup (spec.md §4.6).
		if m, ok := o.findMethod(e.Name.Lexeme); ok {
			return m, nil
		}
		return nil, runtimeErrorf(e.Name, "Undefined property '%s'.", e.Name.Lexeme)
	default:
		return nil, runtimeErrorf(e.Name, "Only instances have properties.")
	}
}

func (in *Interp) evalSet(e *ast.SetExpr) (Value, error) {
	obj, err := in.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := obj.(*Instance)
	if !ok {
		return nil, runtimeErrorf(e.Name, "Only instances have fields.")
	}

	value, err := in.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	instance.Set(e.Name, value)
	return value, nil
}

func (in *Interp) evalSuper(e *ast.SuperExpr) (Value, error) {
	distance := in.locals[e.ExprID()]
	superVal, _ := in.environment.GetAt(distance, "super")
	super := superVal.(*Class)

	thisVal, _ := in.environment.GetAt(distance-1, "this")
	instance := thisVal.(*Instance)

	method, ok := super.findMethod(e.Method.Lexeme)
	if !ok {
		return nil, runtimeErrorf(e.Method, "Undefined property '%s'.", e.Method.Lexeme)
	}
	return method.Bind(instance), nil
}
