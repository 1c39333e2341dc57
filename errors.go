// errors.go — user-facing error wrapping and caret-snippet rendering.
//
// Turns the lexer's and parser's span-carrying diagnostics into readable
// snippets with a caret row underlining the offending characters:
//
//	LEXICAL ERROR at column 14: expected closing )
//
//	  | int (*f)(char
//	  |              ^
//
// Offsets are 0-based character indices into the single input line; a span
// with Offset == len(input) and Length == 0 points just past the end (the
// "expected more input" case) and still renders one caret.
//
// The REPL doesn't use the snippet form — the input is already on screen
// after the prompt, so it prints CaretLine padded by the prompt width
// directly beneath the echoed line instead.
package cdecl

import (
	"errors"
	"fmt"
	"strings"
)

// WrapErrorWithSource returns an error whose message is a caret-annotated
// snippet of src when err is a *LexError or *ParseError. Any other error is
// returned unchanged.
func WrapErrorWithSource(err error, src string) error {
	switch e := err.(type) {
	case *LexError:
		return errors.New(prettyErrorString(src, "LEXICAL ERROR", e.Offset, e.Length, e.Msg))
	case *ParseError:
		return errors.New(prettyErrorString(src, "PARSE ERROR", e.Offset, e.Length, e.Msg))
	default:
		return err
	}
}

// CaretLine builds the underline row on its own: pad leading spaces (the
// prompt width when echoing under a REPL line), then the span's carets.
// Zero-length spans still get a single caret.
func CaretLine(pad, offset, length int) string {
	if offset < 0 {
		offset = 0
	}
	carets := length
	if carets < 1 {
		carets = 1
	}
	return strings.Repeat(" ", pad+offset) + strings.Repeat("^", carets)
}

func prettyErrorString(src, header string, offset, length int, msg string) string {
	if offset > len(src) {
		offset = len(src)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s at column %d: %s\n\n", header, offset+1, msg)
	fmt.Fprintf(&b, "  | %s\n", src)
	fmt.Fprintf(&b, "  |%s\n", CaretLine(1, offset, length))
	return b.String()
}
