// parser.go — declarator AST and the single-pass parser.
//
// The parser consumes one token group (see lexer.go) in a fixed order of
// optional phases: base type, pointer chain, optional name or nested group,
// function parameter list, array dimensions, then recursion into the nested
// group for precedence (the "(*f)" in "int (*f)(char)"). Only the lexer ever
// speculates; the parser never backtracks.
//
// Nodes own exactly one child each (the thing the node's modifier applies
// to), so a declaration reads from the innermost name outward. Constructs
// that parse fine but are illegal C — returning a raw function, arrays of
// raw functions, raw function parameters — still produce an AST, annotated
// with a warning on the offending node.
package cdecl

import "fmt"

// Node is one variant of the declarator tree: *Type, *Pointer, *Array or
// *Function. The tree is immutable once Parse returns.
type Node interface {
	// Warnings lists grammatically-valid-but-illegal-in-C annotations
	// attached to this node. Never fatal.
	Warnings() []string

	declNode()
}

// base carries the warning list shared by every node variant.
type base struct {
	warnings []string
}

func (b *base) Warnings() []string    { return b.warnings }
func (b *base) addWarning(msg string) { b.warnings = append(b.warnings, msg) }

// Type is a terminal node: a primitive type name or struct tag, plus the
// modifiers folded onto it during lexing.
type Type struct {
	base
	Name      string
	Modifiers []Modifier
}

// Pointer wraps its child. A nil Child means pointer to void.
type Pointer struct {
	base
	Child Node
	Const bool
}

// Array wraps its child. A nil Size is an unspecified dimension.
type Array struct {
	base
	Child Node
	Size  *int
}

// Function's child is its return type; nil means it returns nothing.
// Params == nil means an unspecified parameter list (empty parens), while a
// non-nil empty slice is an explicit "(void)".
type Function struct {
	base
	Child  Node
	Params []Node
}

func (*Type) declNode()     {}
func (*Pointer) declNode()  {}
func (*Array) declNode()    {}
func (*Function) declNode() {}

// HasModifier reports whether the type carries the given modifier.
func (t *Type) HasModifier(m Modifier) bool {
	for _, have := range t.Modifiers {
		if have == m {
			return true
		}
	}
	return false
}

// ----- errors -----

// ParseError is a malformed token sequence. Offsets follow the same
// convention as LexError: 0-based, with a zero Length marking a position
// just past the last token.
type ParseError struct {
	Msg    string
	Offset int
	Length int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("PARSE ERROR at column %d: %s", e.Offset+1, e.Msg)
}

// ----- parser -----

// parser walks the flat token sequence inside one group. child holds the
// partially-built declarator; for recursive group resolution it starts out
// non-nil.
type parser struct {
	tokens *Token
	index  int
	child  Node
}

// Parse builds a declarator tree from a root token group. The returned
// error, if any, is a *ParseError.
//
// The group must be non-empty: callers skip blank input before parsing.
func Parse(tokens *Token) (Node, error) {
	return newParser(tokens, nil).parse()
}

// newParser panics when handed a non-group or empty group: that is a defect
// in the caller, not a user-facing diagnostic. User-visible empty groups
// like "int ()" are rejected by parse before recursing.
func newParser(tokens *Token, child Node) *parser {
	if !tokens.IsGroup() || len(tokens.Items) == 0 {
		panic("cdecl: internal error: parser needs a non-empty token group")
	}
	return &parser{tokens: tokens, child: child}
}

func (p *parser) current() *Token {
	if p.index >= len(p.tokens.Items) {
		return nil
	}
	return p.tokens.Items[p.index]
}

func (p *parser) next() *Token {
	p.index++
	return p.current()
}

// expect returns the current token, or an error just past the final token
// when the group has run out.
func (p *parser) expect() (*Token, error) {
	tok := p.current()
	if tok == nil {
		return nil, p.errHere("expected another token")
	}
	return tok, nil
}

func (p *parser) errAt(tok *Token, msg string) error {
	return &ParseError{Msg: msg, Offset: tok.Start, Length: tok.Length}
}

func (p *parser) errHere(msg string) error {
	if tok := p.current(); tok != nil {
		return p.errAt(tok, msg)
	}
	last := p.tokens.Items[len(p.tokens.Items)-1]
	return &ParseError{Msg: msg, Offset: last.Start + last.Length, Length: 0}
}

// checkVoidDecl rejects a deferred void that never got wrapped in a pointer.
func (p *parser) checkVoidDecl(voidTok *Token) error {
	if p.child == nil {
		return p.errAt(voidTok, "void on its own is not a valid type")
	}
	return nil
}

func (p *parser) parse() (Node, error) {
	var voidTok *Token // kept for anchoring the late void errors

	if p.child == nil {
		// Base type. "void" defers node construction: it is only valid
		// once a pointer wraps it.
		tok, err := p.expect()
		if err != nil {
			return nil, err
		}
		if !tok.IsType() {
			return nil, p.errHere("expected a type name")
		}
		if tok.Lexeme == "void" {
			voidTok = tok
		} else {
			p.child = &Type{Name: tok.Lexeme, Modifiers: tok.Modifiers}
		}
		if p.next() == nil {
			if err := p.checkVoidDecl(voidTok); err != nil {
				return nil, err
			}
			return p.child, nil
		}
	}

	// Pointer chain: each star wraps the current child, so "**p" ends up
	// pointer-to-(pointer-to-T).
	for p.current() != nil && p.current().Lexeme == "*" {
		p.child = &Pointer{Child: p.child, Const: p.current().HasModifier(ModConst)}
		p.next()
	}

	// At most one of: the declared name (discarded, it plays no part in
	// the explanation) or a parenthesized sub-declarator to resolve later.
	var parentGroup *Token
	if tok := p.current(); tok != nil {
		if tok.IsName() {
			if IsKeyword(tok.Lexeme) {
				return nil, p.errAt(tok, "cannot use '"+tok.Lexeme+"' as an identifier")
			}
			p.next()
		} else if tok.IsGroup() {
			parentGroup = tok
			p.next()
		}
	}

	// Function parameter lists. Successive groups stack, so "int f()()"
	// is a function returning a function (parsed, warned about below).
	// A nil element means that list was unspecified (empty parens).
	var paramLists [][]Node
	for tok := p.current(); tok != nil && tok.IsGroup(); tok = p.current() {
		params, err := p.parseParams(tok)
		if err != nil {
			return nil, err
		}
		paramLists = append(paramLists, params)
		p.next()
	}

	// Array dimensions. They wrap from the rightmost dimension outward:
	// a[3][4] is an array of 3 arrays of 4.
	var dims []*int
	for p.current() != nil && p.current().Lexeme == "[" {
		p.next()
		tok, err := p.expect()
		if err != nil {
			return nil, err
		}
		if tok.IsNum() {
			n := tok.Num()
			dims = append(dims, &n)
			p.next()
		} else {
			dims = append(dims, nil)
		}
		if tok, err = p.expect(); err != nil {
			return nil, err
		} else if tok.Lexeme != "]" {
			return nil, p.errHere("expected ]")
		}
		p.next()
	}
	for i := len(dims) - 1; i >= 0; i-- {
		if p.child == nil {
			return nil, p.errAt(voidTok, "arrays cannot store void")
		}
		arr := &Array{Child: p.child, Size: dims[i]}
		if _, ok := p.child.(*Function); ok {
			arr.addWarning("illegal in C: arrays cannot store raw functions")
		}
		p.child = arr
	}

	if p.current() != nil {
		return nil, p.errHere("unexpected tokens")
	}

	// Wrap from the rightmost parameter list inward: in "int f(a)(b)" the
	// (b) list belongs to the function f returns.
	for i := len(paramLists) - 1; i >= 0; i-- {
		fn := &Function{Child: p.child, Params: paramLists[i]}
		if _, ok := p.child.(*Function); ok {
			fn.addWarning("illegal in C: you cannot return a raw function")
		}
		p.child = fn
	}

	// Resolve the parenthesized sub-declarator, if any: re-enter parsing
	// on its tokens with everything built so far as the inner child. This
	// is what makes "(*f)(int)" a pointer to a function rather than a
	// function returning a pointer.
	if parentGroup != nil {
		if len(parentGroup.Items) == 0 {
			return nil, p.errAt(parentGroup, "expected more tokens here")
		}
		child, err := newParser(parentGroup, p.child).parse()
		if err != nil {
			return nil, err
		}
		p.child = child
	}

	if err := p.checkVoidDecl(voidTok); err != nil {
		return nil, err
	}
	return p.child, nil
}

// parseParams interprets a parameter-list group. Empty parens mean an
// unspecified list (nil); a lone "void" means explicitly no parameters
// (empty slice); anything else splits on top-level commas, each piece
// parsed as a nested declarator.
func (p *parser) parseParams(group *Token) ([]Node, error) {
	items := group.Items
	if len(items) == 0 {
		return nil, nil
	}
	if len(items) == 1 && items[0].Lexeme == "void" {
		return []Node{}, nil
	}

	params := []Node{}
	for i := 0; i < len(items); {
		sub := &Token{Start: items[i].Start}
		var comma *Token
		for i < len(items) {
			if items[i].Lexeme == "," {
				comma = items[i]
				i++
				break
			}
			sub.Items = append(sub.Items, items[i])
			i++
		}
		if len(sub.Items) == 0 {
			// A comma with nothing before it, e.g. "f(,int)".
			return nil, p.errAt(comma, "expected a parameter")
		}
		last := sub.Items[len(sub.Items)-1]
		sub.Length = last.Start + last.Length - sub.Start

		param, err := newParser(sub, nil).parse()
		if err != nil {
			return nil, err
		}
		if fn, ok := param.(*Function); ok {
			fn.addWarning("illegal in C: this is a raw function being passed as a parameter")
		}
		params = append(params, param)
	}
	return params, nil
}
