package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	cdecl "github.com/hddharvey/cdecl"
)

const (
	appName     = "cdecl"
	historyFile = ".cdecl_history"
)

var banner = fmt.Sprintf(
	"cdecl %s — type a C declaration and see what it means.\nCtrl+C clears the line, Ctrl+D exits.",
	cdecl.Version)

func red(s string) string    { return "\x1b[31;1m" + s + "\x1b[0m" }
func yellow(s string) string { return "\x1b[33;1m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		os.Exit(cmdRepl())
	}

	switch cmd := os.Args[1]; cmd {
	case "repl":
		os.Exit(cmdRepl())
	case "explain":
		os.Exit(cmdExplain(os.Args[2:]))
	case "tokens":
		os.Exit(cmdTokens(os.Args[2:]))
	case "version":
		fmt.Println(cdecl.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`cdecl %s — explain C type declarations in plain English.

Usage:
  %s                        Start the REPL.
  %s explain <declaration>  Explain one declaration and exit.
  %s tokens <declaration>   Dump the lexed token tree (debugging).
  %s version                Print the version.

Settings are read from ~/%s (human JSON: comments allowed).

`, cdecl.Version, appName, appName, appName, appName, cdecl.ConfigFile)
}

// -----------------------------------------------------------------------------
// one-shot commands
// -----------------------------------------------------------------------------

// oneDecl joins the remaining args so both quoting styles work:
// cdecl explain 'int (*f)(char)' and cdecl explain int x.
func oneDecl(args []string) (string, bool) {
	decl := strings.TrimSpace(strings.Join(args, " "))
	return decl, decl != ""
}

func cmdExplain(args []string) int {
	decl, ok := oneDecl(args)
	if !ok {
		fmt.Fprintf(os.Stderr, "usage: %s explain <declaration>\n", appName)
		return 2
	}

	tokens, err := cdecl.Lex(decl)
	if err != nil {
		fmt.Fprintln(os.Stderr, cdecl.WrapErrorWithSource(err, decl).Error())
		return 1
	}
	tree, err := cdecl.Parse(tokens)
	if err != nil {
		fmt.Fprintln(os.Stderr, cdecl.WrapErrorWithSource(err, decl).Error())
		return 1
	}
	fmt.Print(cdecl.Explain(tree))
	return 0
}

func cmdTokens(args []string) int {
	decl, ok := oneDecl(args)
	if !ok {
		fmt.Fprintf(os.Stderr, "usage: %s tokens <declaration>\n", appName)
		return 2
	}

	tokens, err := cdecl.Lex(decl)
	if err != nil {
		fmt.Fprintln(os.Stderr, cdecl.WrapErrorWithSource(err, decl).Error())
		return 1
	}
	fmt.Print(cdecl.DumpTokens(tokens))
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl() int {
	home, _ := os.UserHomeDir()

	cfg, cfgErr := cdecl.LoadConfig(filepath.Join(home, cdecl.ConfigFile))
	if cfgErr != nil {
		fmt.Fprintf(os.Stderr, "%s: ignoring bad config: %v\n", appName, cfgErr)
	}
	if cfg.Color != nil {
		cdecl.EnableColor = *cfg.Color
	} else {
		cdecl.EnableColor = true
	}

	fmt.Println(banner)

	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if data, err := os.ReadFile(histPath); err == nil {
		_, _ = ln.ReadHistory(strings.NewReader(trimHistory(string(data), cfg.History)))
	}

	for {
		line, err := ln.Prompt(cfg.Prompt)
		if errors.Is(err, io.EOF) {
			fmt.Println("\nEnd of input")
			return 0
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			return 1
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)

		explainLine(cfg.Prompt, line)
	}
}

// trimHistory keeps only the most recent limit lines of a history file.
func trimHistory(data string, limit int) string {
	data = strings.TrimRight(data, "\n")
	if data == "" {
		return ""
	}
	lines := strings.Split(data, "\n")
	if limit > 0 && len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}
	return strings.Join(lines, "\n") + "\n"
}

// explainLine runs one declaration through the pipeline. The input is
// already on screen after the prompt, so errors print a caret row aligned
// beneath it rather than re-echoing the source.
func explainLine(prompt, line string) {
	report := func(kind string, offset, length int, msg string) {
		fmt.Println(cdecl.CaretLine(len(prompt), offset, length))
		label := kind + " failed"
		if cdecl.EnableColor {
			label = yellow(label)
		}
		fmt.Println(label + ": " + msg)
	}

	tokens, err := cdecl.Lex(line)
	if err != nil {
		var lexErr *cdecl.LexError
		if errors.As(err, &lexErr) {
			report("Lexer", lexErr.Offset, lexErr.Length, lexErr.Msg)
		} else {
			fmt.Println(red(err.Error()))
		}
		return
	}
	if len(tokens.Items) == 0 {
		return
	}

	tree, err := cdecl.Parse(tokens)
	if err != nil {
		var parseErr *cdecl.ParseError
		if errors.As(err, &parseErr) {
			report("Parser", parseErr.Offset, parseErr.Length, parseErr.Msg)
		} else {
			fmt.Println(red(err.Error()))
		}
		return
	}

	fmt.Print(cdecl.Explain(tree))
}
