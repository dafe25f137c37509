package calc

// Config controls parser and evaluator bounds. The zero Config imposes no
// limits.
type Config struct {
	// RecursionLimit caps parenthesis nesting depth. Zero or negative means
	// unlimited.
	RecursionLimit int
	// StepQuota caps the number of nodes visited per evaluation. Zero or
	// negative means unlimited.
	StepQuota int
	// AllowTrailingInput ignores tokens left over after a complete
	// expression instead of rejecting them.
	AllowTrailingInput bool
}

// Engine compiles and evaluates arithmetic expressions. It holds only
// immutable configuration and may be shared between goroutines.
type Engine struct {
	config Config
}

// NewEngine constructs an Engine. Negative limits are treated as unlimited.
func NewEngine(cfg Config) *Engine {
	if cfg.RecursionLimit < 0 {
		cfg.RecursionLimit = 0
	}
	if cfg.StepQuota < 0 {
		cfg.StepQuota = 0
	}
	return &Engine{config: cfg}
}

func (e *Engine) Config() Config { return e.config }

// Expression is a parsed expression ready for evaluation.
type Expression struct {
	root   Node
	source string
	engine *Engine
}

func (x *Expression) Root() Node     { return x.root }
func (x *Expression) Source() string { return x.source }

// Compile tokenizes and parses text into an Expression.
func (e *Engine) Compile(text string) (*Expression, error) {
	p, err := newParser(text, e.config)
	if err != nil {
		return nil, err
	}
	root, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return &Expression{root: root, source: text, engine: e}, nil
}

// Eval walks the expression tree and returns its value.
func (x *Expression) Eval() (Value, error) {
	exec := &execution{source: x.source, quota: x.engine.config.StepQuota}
	return exec.eval(x.root)
}

// Evaluate compiles and evaluates text in one call.
func (e *Engine) Evaluate(text string) (Value, error) {
	expr, err := e.Compile(text)
	if err != nil {
		return Value{}, err
	}
	return expr.Eval()
}

var defaultEngine = NewEngine(Config{})

// Evaluate evaluates text with the default configuration. Failures are
// *Error values of kind LexicalError, ParsingError, DivisionByZeroError,
// OverflowError or LimitError.
func Evaluate(text string) (Value, error) {
	return defaultEngine.Evaluate(text)
}
