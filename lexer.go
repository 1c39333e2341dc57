// lexer.go — tokens and the declaration lexer.
//
// The lexer turns a C declaration string into a *tree* of tokens: a
// parenthesized span becomes a token group containing its children, so the
// parser never has to match parens itself. Compound type expressions
// ("unsigned long", "struct foo", "* const") are folded into single semantic
// tokens here as well, which keeps the parser a plain single pass.
package cdecl

import (
	"fmt"
	"strconv"
)

// Modifier is a type qualifier folded onto a token during lexing.
type Modifier int

const (
	ModUnsigned Modifier = iota
	ModSigned
	ModConst
	ModStruct
)

func (m Modifier) String() string {
	switch m {
	case ModUnsigned:
		return "unsigned"
	case ModSigned:
		return "signed"
	case ModConst:
		return "const"
	case ModStruct:
		return "struct"
	}
	return "unknown"
}

// primTypes are the primitive type names we recognize. Two-word names are
// produced by folding ("long" + "double" etc), never lexed directly.
var primTypes = map[string]bool{
	"bool":        true,
	"int":         true,
	"short":       true,
	"long":        true,
	"char":        true,
	"void":        true,
	"float":       true,
	"double":      true,
	"long double": true,
	"long long":   true,
	"long int":    true,
}

// longTypes can be prefixed with "long". `long long int` is deliberately not
// handled; the trailing "int" is left for the parser to reject.
var longTypes = map[string]bool{
	"double": true,
	"long":   true,
	"int":    true,
}

var modifierNames = map[string]Modifier{
	"unsigned": ModUnsigned,
	"signed":   ModSigned,
	"const":    ModConst,
	"struct":   ModStruct,
}

// IsKeyword reports whether name is reserved (a primitive type or modifier)
// and therefore unusable as an identifier.
func IsKeyword(name string) bool {
	if primTypes[name] {
		return true
	}
	_, ok := modifierNames[name]
	return ok
}

// Token is either a leaf (Lexeme non-empty) or a group of child tokens
// lexed from a matched "(...)" pair (Lexeme empty, Items set). Start and
// Length always span the exact characters consumed from the source; error
// underlining depends on that.
type Token struct {
	Start     int
	Length    int
	Lexeme    string // empty for groups
	Modifiers []Modifier
	Items     []*Token // nil for leaves
}

// IsGroup reports whether this token is a token group.
func (t *Token) IsGroup() bool { return t.Lexeme == "" }

// IsName reports whether this leaf is a type or variable name.
func (t *Token) IsName() bool {
	return t.Lexeme != "" && (t.Lexeme[0] == '_' || isAlpha(t.Lexeme[0]))
}

// IsNum reports whether this leaf is an integer literal.
func (t *Token) IsNum() bool { return t.Lexeme != "" && isDigit(t.Lexeme[0]) }

// IsType reports whether this leaf names a type: a primitive type name, or
// any identifier carrying the struct modifier (a struct tag).
func (t *Token) IsType() bool {
	return t.IsName() && (primTypes[t.Lexeme] || t.HasModifier(ModStruct))
}

// HasModifier reports whether m was folded onto this token.
func (t *Token) HasModifier(m Modifier) bool {
	for _, have := range t.Modifiers {
		if have == m {
			return true
		}
	}
	return false
}

// addModifier may only be called while the token is still being lexed.
func (t *Token) addModifier(m Modifier) {
	if t.HasModifier(m) {
		panic("cdecl: internal error: modifier added twice")
	}
	t.Modifiers = append(t.Modifiers, m)
}

// Num returns the integer a numeric leaf represents.
func (t *Token) Num() int {
	if t.IsGroup() || !t.IsNum() {
		panic("cdecl: internal error: Num on a non-numeric token")
	}
	n, err := strconv.Atoi(t.Lexeme)
	if err != nil {
		panic("cdecl: internal error: bad numeric token: " + t.Lexeme)
	}
	return n
}

// ----- errors -----

// LexError is a malformed character stream. Offset is a 0-based index into
// the input; Offset == len(input) with Length == 0 means the input ended
// where more was expected.
type LexError struct {
	Msg    string
	Offset int
	Length int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LEXICAL ERROR at column %d: %s", e.Offset+1, e.Msg)
}

// ----- lexer -----

// Lexer scans a single declaration string. The cursor is a plain index, so
// speculative scans snapshot it and assign it back to rewind.
type Lexer struct {
	src string
	pos int
}

// Lex converts input into a root token group. The returned error, if any,
// is a *LexError.
func Lex(input string) (*Token, error) {
	l := &Lexer{src: input}
	return l.lexGroup(false)
}

func (l *Lexer) cur() (byte, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos], true
}

// advance moves forward one character and returns the new current one.
func (l *Lexer) advance() (byte, bool) {
	l.pos++
	return l.cur()
}

func (l *Lexer) skipSpace() (byte, bool) {
	ch, ok := l.cur()
	for ok && (ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n') {
		ch, ok = l.advance()
	}
	return ch, ok
}

// errHere reports an error at the cursor: a one-character span, or a
// zero-length span just past the input when the cursor has run off the end.
func (l *Lexer) errHere(msg string) error {
	if l.pos >= len(l.src) {
		return &LexError{Msg: msg, Offset: len(l.src), Length: 0}
	}
	return &LexError{Msg: msg, Offset: l.pos, Length: 1}
}

func (l *Lexer) errAt(offset, length int, msg string) error {
	return &LexError{Msg: msg, Offset: offset, Length: length}
}

// lexGroup lexes tokens until the end of input, or until the matching ")"
// when nested. The group's span includes both parens when nested.
func (l *Lexer) lexGroup(nested bool) (*Token, error) {
	start := l.pos
	if nested {
		start = l.pos - 1 // include the "(" already consumed by the caller
	}
	group := &Token{Start: start}
	for {
		if ch, ok := l.cur(); nested && ok && ch == ')' {
			l.advance()
			group.Length = l.pos - group.Start
			return group, nil
		}

		tok, err := l.nextToken()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			if nested {
				return nil, l.errHere("expected closing )")
			}
			group.Length = l.pos - group.Start
			return group, nil
		}

		group.Items = append(group.Items, tok)
	}
}

// ident scans an identifier ([A-Za-z_][A-Za-z0-9_]*) after skipping
// whitespace, or returns nil without moving past non-identifier input.
func (l *Lexer) ident() *Token {
	ch, ok := l.skipSpace()
	if !ok || (ch != '_' && !isAlpha(ch)) {
		return nil
	}
	start := l.pos
	for ok && (ch == '_' || isAlpha(ch) || isDigit(ch)) {
		ch, ok = l.advance()
	}
	return &Token{
		Start:  start,
		Length: l.pos - start,
		Lexeme: l.src[start:l.pos],
	}
}

// nextToken returns the next token or token group, nil at end of input.
func (l *Lexer) nextToken() (*Token, error) {
	ch, ok := l.skipSpace()
	if !ok {
		return nil, nil
	}

	switch ch {
	case '*':
		// "* const" folds into a single star token carrying the const
		// modifier. Anything else after the star rewinds.
		start := l.pos
		l.advance()
		if id := l.ident(); id != nil && id.Lexeme == "const" {
			tok := &Token{Start: start, Length: l.pos - start, Lexeme: "*"}
			tok.addModifier(ModConst)
			return tok, nil
		}
		l.pos = start + 1
		return &Token{Start: start, Length: 1, Lexeme: "*"}, nil

	case '[', ']', ',':
		l.advance()
		return &Token{Start: l.pos - 1, Length: 1, Lexeme: string(ch)}, nil
	}

	if ch == '_' || isAlpha(ch) {
		tok := l.ident()
		if IsKeyword(tok.Lexeme) {
			return l.lexType(tok)
		}
		return tok, nil
	}

	if isDigit(ch) {
		start := l.pos
		for ok && isDigit(ch) {
			ch, ok = l.advance()
		}
		return &Token{
			Start:  start,
			Length: l.pos - start,
			Lexeme: l.src[start:l.pos],
		}, nil
	}

	if ch == '(' {
		l.advance()
		return l.lexGroup(true)
	}

	if ch == ')' {
		return nil, l.errHere("unmatched )")
	}
	return nil, l.errHere("invalid character")
}

// lexType folds a keyword leaf into a full semantic type token. There are a
// lot of ways to string modifiers and type keywords together, so this
// re-enters itself once a modifier run or struct keyword resolves.
func (l *Lexer) lexType(tok *Token) (*Token, error) {
	if tok.Lexeme == "struct" {
		name := l.ident()
		if name == nil {
			return nil, l.errHere("expected an identifier")
		}
		if IsKeyword(name.Lexeme) {
			return nil, l.errAt(name.Start, name.Length,
				"cannot use '"+name.Lexeme+"' as an identifier")
		}
		tok.Length = l.pos - tok.Start
		tok.addModifier(ModStruct)
		tok.Lexeme = name.Lexeme
		return tok, nil
	}

	if primTypes[tok.Lexeme] {
		// "long" may prefix a handful of types; otherwise rewind and keep
		// the plain "long".
		if tok.Lexeme == "long" {
			save := l.pos
			if next := l.ident(); next != nil && longTypes[next.Lexeme] {
				tok.Lexeme += " " + next.Lexeme
				tok.Length = l.pos - tok.Start
				return tok, nil
			}
			l.pos = save
		}
		return tok, nil
	}

	// A modifier: accumulate the run of modifiers that follows, then
	// resolve the primitive type they apply to.
	mods := []Modifier{modifierNames[tok.Lexeme]}
	beforeNext := l.pos
	next := l.ident()
	for next != nil {
		m, isMod := modifierNames[next.Lexeme]
		if !isMod {
			break
		}
		for _, have := range mods {
			if have == m {
				return nil, l.errAt(next.Start, next.Length, "cannot use modifiers twice")
			}
		}
		if m == ModStruct {
			// The only modifier allowed before struct is a single const,
			// in which case we re-enter struct-tag parsing keeping it.
			if len(mods) != 1 || mods[0] != ModConst {
				return nil, l.errAt(tok.Start, l.pos-tok.Start,
					"the only valid modifier for struct is 'const'")
			}
			tok.Length = l.pos - tok.Start
			tok.addModifier(ModConst)
			tok.Lexeme = "struct"
			return l.lexType(tok)
		}
		if (m == ModSigned || m == ModUnsigned) && hasSignModifier(mods) {
			// Modifiers are unique by now, so one check covers both orders.
			return nil, l.errAt(tok.Start, l.pos-tok.Start,
				"cannot have signed and unsigned")
		}
		mods = append(mods, m)
		beforeNext = l.pos
		next = l.ident()
	}

	if next == nil || !primTypes[next.Lexeme] {
		// A trailing signed/unsigned needs no type name: it defaults to
		// int (C's "unsigned x" rule). Rewind so next isn't consumed.
		if last := mods[len(mods)-1]; last == ModSigned || last == ModUnsigned {
			l.pos = beforeNext
			tok.Lexeme = "int"
		} else if next == nil {
			return nil, l.errHere("expected a type name or modifier")
		} else {
			return nil, l.errAt(next.Start, next.Length, "expected a type name or modifier")
		}
	} else {
		tok.Lexeme = next.Lexeme
	}

	tok.Length = l.pos - tok.Start
	for _, m := range mods {
		tok.addModifier(m)
	}
	// Re-enter as a primitive type so "unsigned long" can still fold a
	// following "long" or "int".
	return l.lexType(tok)
}

func hasSignModifier(mods []Modifier) bool {
	for _, m := range mods {
		if m == ModSigned || m == ModUnsigned {
			return true
		}
	}
	return false
}

// helpers

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }
