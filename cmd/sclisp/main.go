// Command sclisp is a minimal host for the SCLisp interpreter: a REPL
// and a one-shot file evaluator over the public API. It is the
// smallest harness the core needs to be runnable, not the full
// interactive line editor (paren-balancing, history) that spec.md
// scopes out of the core.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/shwnchpl/sclisp"
)

type args struct {
	inputPath *string
}

func readArgs() *args {
	a := &args{
		inputPath: flag.String("input", "", "Path to a source file to evaluate (one expression)"),
	}
	flag.Parse()
	return a
}

func main() {
	a := readArgs()

	cb, _ := sclisp.DefaultCallbacks()
	in, err := sclisp.Init(cb, sclisp.NewConfig())
	if err != nil {
		log.Fatalf("sclisp: init failed: %s", err)
	}
	defer in.Destroy()

	if *a.inputPath != "" {
		runFile(in, *a.inputPath)
		return
	}
	repl(in)
}

func runFile(in *sclisp.Interpreter, path string) {
	text, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("sclisp: can't open input file: %s", err)
	}
	if err := in.Eval(string(text)); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
	fmt.Println(in.Repr())
}

func repl(in *sclisp.Interpreter) {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if strings.TrimSpace(line) == "" && err != nil {
			fmt.Println("")
			return
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if evalErr := in.Eval(line); evalErr != nil {
			fmt.Println("ERROR: " + evalErr.Error())
		} else {
			fmt.Println(in.Repr())
		}
		if err != nil {
			return
		}
	}
}
