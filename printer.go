// printer.go — render a declarator tree as indented English.
package cdecl

import (
	"strconv"
	"strings"
)

// Version of the cdecl tool, reported by "cdecl version".
const Version = "1.0.0"

/* ---------- globals & tiny helpers ---------- */

var EnableColor = false // REPL-only; tests leave this false

const explainIndent = "    "

const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorYellow = "\033[33;1m"
)

func colorize(s, c string) string {
	if !EnableColor {
		return s
	}
	return c + s + colorReset
}

// nodeName bolds the node's display name; a node carrying warnings shows up
// yellow instead so the eye lands on it.
func nodeName(n Node, name string) string {
	if len(n.Warnings()) > 0 {
		return colorize(name, colorYellow)
	}
	return colorize(name, colorBold)
}

/* ---------- explanation writer ---------- */

// Explain walks the tree and produces the English reading of the
// declaration, one construct per line, children indented beneath their
// parents. Warnings appear directly under the node they annotate.
func Explain(n Node) string {
	var o out
	o.node(n, 0)
	return o.b.String()
}

type out struct {
	b strings.Builder
}

func (o *out) pad(depth int) {
	o.b.WriteString(strings.Repeat(explainIndent, depth))
}

func (o *out) warnings(n Node, depth int) {
	for _, w := range n.Warnings() {
		o.pad(depth)
		o.b.WriteString(colorize("Warning:", colorYellow) + " " + w + "\n")
	}
}

func (o *out) node(n Node, depth int) {
	switch n := n.(type) {
	case *Type:
		o.pad(depth)
		if n.HasModifier(ModConst) {
			o.b.WriteString("constant ")
		}
		for _, m := range n.Modifiers {
			// signed is the default and const was already said.
			if m != ModSigned && m != ModConst {
				o.b.WriteString(m.String() + " ")
			}
		}
		o.b.WriteString(nodeName(n, n.Name) + "\n")
		o.warnings(n, depth)

	case *Pointer:
		o.pad(depth)
		if n.Const {
			o.b.WriteString("constant ")
		}
		o.b.WriteString(nodeName(n, "pointer") + " to")
		if n.Child == nil {
			o.b.WriteString(" void\n")
			o.warnings(n, depth)
		} else {
			o.b.WriteString("\n")
			o.warnings(n, depth)
			o.node(n.Child, depth+1)
		}

	case *Array:
		size := "??"
		if n.Size != nil {
			size = strconv.Itoa(*n.Size)
		}
		o.pad(depth)
		o.b.WriteString(nodeName(n, "array") + " of size " + size + " containing\n")
		o.warnings(n, depth)
		o.node(n.Child, depth+1)

	case *Function:
		o.pad(depth)
		o.b.WriteString(nodeName(n, "function") + " that returns")
		if n.Child == nil {
			o.b.WriteString(" nothing\n")
			o.warnings(n, depth)
		} else {
			o.b.WriteString("\n")
			o.warnings(n, depth)
			o.node(n.Child, depth+1)
		}
		o.pad(depth)
		switch {
		case n.Params == nil:
			o.b.WriteString("and takes any number of parameters\n")
		case len(n.Params) == 0:
			o.b.WriteString("and takes no parameters\n")
		default:
			o.b.WriteString("and takes the parameters\n")
			for _, param := range n.Params {
				o.node(param, depth+1)
			}
		}
	}
}

/* ---------- token dump (debugging) ---------- */

// DumpTokens renders the lexed token tree, one token per line. Used by the
// "tokens" command to show what the lexer made of an input.
func DumpTokens(tok *Token) string {
	var b strings.Builder
	dumpToken(&b, tok, 0)
	return b.String()
}

func dumpToken(b *strings.Builder, tok *Token, depth int) {
	pad := strings.Repeat(explainIndent, depth)
	switch {
	case tok.IsGroup():
		b.WriteString(pad + "group: {\n")
		for _, item := range tok.Items {
			dumpToken(b, item, depth+1)
		}
		b.WriteString(pad + "}\n")
	case tok.IsNum():
		b.WriteString(pad + "num: " + tok.Lexeme + "\n")
	default:
		b.WriteString(pad + "tok: " + tok.Lexeme)
		for _, m := range tok.Modifiers {
			b.WriteString(" +" + m.String())
		}
		b.WriteString("\n")
	}
}
