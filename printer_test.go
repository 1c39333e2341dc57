// printer_test.go
package cdecl

import "testing"

func wantExplained(t *testing.T, src, want string) {
	t.Helper()
	got := Explain(parseOK(t, src))
	if got != want {
		t.Fatalf("\nsource: %s\nwant:\n%s\ngot:\n%s", src, want, got)
	}
}

func Test_Explain_PlainType(t *testing.T) {
	wantExplained(t, "int x", "int\n")
	wantExplained(t, "struct foo x", "struct foo\n")
}

func Test_Explain_Modifiers(t *testing.T) {
	wantExplained(t, "const unsigned int x", "constant unsigned int\n")
	// signed is the default, so it isn't spelled out.
	wantExplained(t, "signed int x", "int\n")
	wantExplained(t, "const struct foo x", "constant struct foo\n")
}

func Test_Explain_PointerAndArray(t *testing.T) {
	wantExplained(t, "char *p[10]",
		"array of size 10 containing\n"+
			"    pointer to\n"+
			"        char\n")
	wantExplained(t, "int x[]",
		"array of size ?? containing\n"+
			"    int\n")
	wantExplained(t, "int * const p",
		"constant pointer to\n"+
			"    int\n")
}

func Test_Explain_VoidPointer(t *testing.T) {
	wantExplained(t, "void *p", "pointer to void\n")
}

func Test_Explain_FunctionParamKinds(t *testing.T) {
	wantExplained(t, "void f(void)",
		"function that returns nothing\n"+
			"and takes no parameters\n")
	wantExplained(t, "int f()",
		"function that returns\n"+
			"    int\n"+
			"and takes any number of parameters\n")
}

func Test_Explain_PointerToFunction(t *testing.T) {
	wantExplained(t, "int (*f)(char, int*)",
		"pointer to\n"+
			"    function that returns\n"+
			"        int\n"+
			"    and takes the parameters\n"+
			"        char\n"+
			"        pointer to\n"+
			"            int\n")
}

func Test_Explain_WarningPlacement(t *testing.T) {
	// The warning sits directly under the node it annotates, at the same
	// indent level.
	wantExplained(t, "int f()()",
		"function that returns\n"+
			"Warning: illegal in C: you cannot return a raw function\n"+
			"    function that returns\n"+
			"        int\n"+
			"    and takes any number of parameters\n"+
			"and takes any number of parameters\n")
}

func Test_Explain_RawFunctionParameterWarning(t *testing.T) {
	wantExplained(t, "void f(int g())",
		"function that returns nothing\n"+
			"and takes the parameters\n"+
			"    function that returns\n"+
			"    Warning: illegal in C: this is a raw function being passed as a parameter\n"+
			"        int\n"+
			"    and takes any number of parameters\n")
}

func Test_DumpTokens(t *testing.T) {
	tokens, err := Lex("int (* const f)[10]")
	if err != nil {
		t.Fatal(err)
	}
	want := "group: {\n" +
		"    tok: int\n" +
		"    group: {\n" +
		"        tok: * +const\n" +
		"        tok: f\n" +
		"    }\n" +
		"    tok: [\n" +
		"    num: 10\n" +
		"    tok: ]\n" +
		"}\n"
	if got := DumpTokens(tokens); got != want {
		t.Fatalf("want:\n%s\ngot:\n%s", want, got)
	}
}

func Test_DumpTokens_Modifiers(t *testing.T) {
	tokens, err := Lex("const unsigned long long x")
	if err != nil {
		t.Fatal(err)
	}
	want := "group: {\n" +
		"    tok: long long +const +unsigned\n" +
		"    tok: x\n" +
		"}\n"
	if got := DumpTokens(tokens); got != want {
		t.Fatalf("want:\n%s\ngot:\n%s", want, got)
	}
}

func Test_Explain_ColorOff(t *testing.T) {
	// Color is opt-in; nothing here may emit escape codes.
	for _, src := range []string{"int x", "int f()()", "void *p"} {
		for _, ch := range Explain(parseOK(t, src)) {
			if ch == '\x1b' {
				t.Fatalf("escape code in uncolored output for %q", src)
			}
		}
	}
}
