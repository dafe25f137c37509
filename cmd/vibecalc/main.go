package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mgomes/vibecalc/calc"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
			return runREPL(calc.Config{})
		}
		return runLoop(os.Stdin, os.Stdout, calc.NewEngine(calc.Config{}))
	}
	switch args[1] {
	case "eval":
		return evalCommand(args[2:])
	case "ast":
		return astCommand(args[2:])
	case "tokens":
		return tokensCommand(args[2:])
	case "run":
		return runCommand(args[2:])
	case "repl":
		return replCommand(args[2:])
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

// engineFlags registers the calc.Config flags shared by every subcommand.
func engineFlags(fs *flag.FlagSet) func() calc.Config {
	allowTrailing := fs.Bool("allow-trailing", false, "ignore input left over after a complete expression")
	maxDepth := fs.Int("max-depth", 0, "maximum parenthesis nesting depth (0 means no limit)")
	stepQuota := fs.Int("step-quota", 0, "maximum nodes evaluated per expression (0 means no limit)")
	return func() calc.Config {
		return calc.Config{
			AllowTrailingInput: *allowTrailing,
			RecursionLimit:     *maxDepth,
			StepQuota:          *stepQuota,
		}
	}
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	return fs
}

func expressionArg(command string, fs *flag.FlagSet) (string, error) {
	if fs.NArg() == 0 {
		return "", fmt.Errorf("vibecalc %s: expression required", command)
	}
	return strings.Join(fs.Args(), " "), nil
}

func evalCommand(args []string) error {
	fs := newFlagSet("eval")
	config := engineFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	input, err := expressionArg("eval", fs)
	if err != nil {
		return err
	}
	result, err := calc.NewEngine(config()).Evaluate(input)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}
	fmt.Println(result.String())
	return nil
}

func astCommand(args []string) error {
	fs := newFlagSet("ast")
	config := engineFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	input, err := expressionArg("ast", fs)
	if err != nil {
		return err
	}
	expr, err := calc.NewEngine(config()).Compile(input)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}
	fmt.Println(calc.Dump(expr.Root()))
	return nil
}

func tokensCommand(args []string) error {
	fs := newFlagSet("tokens")
	if err := fs.Parse(args); err != nil {
		return err
	}
	input, err := expressionArg("tokens", fs)
	if err != nil {
		return err
	}
	tokens, err := calc.Tokenize(input)
	if err != nil {
		return fmt.Errorf("tokenize failed: %w", err)
	}
	for _, tok := range tokens {
		fmt.Println(formatToken(tok))
	}
	return nil
}

func formatToken(tok calc.Token) string {
	if tok.Type == calc.TokenInt {
		return fmt.Sprintf("%d:%d\t%s\t%d", tok.Pos.Line, tok.Pos.Column, tok.Type, tok.Value)
	}
	return fmt.Sprintf("%d:%d\t%s", tok.Pos.Line, tok.Pos.Column, tok.Type)
}

func runCommand(args []string) error {
	fs := newFlagSet("run")
	config := engineFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("vibecalc run: file path required")
	}
	path, err := filepath.Abs(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("resolve file path: %w", err)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return runLoop(f, os.Stdout, calc.NewEngine(config()))
}

func replCommand(args []string) error {
	fs := newFlagSet("repl")
	config := engineFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	return runREPL(config())
}

// runLoop evaluates one expression per input line, printing either the
// result or the error message, until input ends or a line reads "exit".
func runLoop(in io.Reader, out io.Writer, engine *calc.Engine) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "exit") {
			fmt.Fprintln(out, "Exiting.")
			return nil
		}
		result, err := engine.Evaluate(line)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		fmt.Fprintln(out, result.String())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s [command] [flags] [expression...]\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  eval <expr>    evaluate an expression and print the result")
	fmt.Fprintln(os.Stderr, "  ast <expr>     print the parsed expression tree")
	fmt.Fprintln(os.Stderr, "  tokens <expr>  print the token stream")
	fmt.Fprintln(os.Stderr, "  run <file>     evaluate every line of a file")
	fmt.Fprintln(os.Stderr, "  repl           start the interactive REPL")
	fmt.Fprintln(os.Stderr, "With no command, reads expressions from stdin (REPL when stdin is a terminal).")
	fmt.Fprintln(os.Stderr, "Flags:")
	fmt.Fprintln(os.Stderr, "  -allow-trailing")
	fmt.Fprintln(os.Stderr, "    ignore input left over after a complete expression")
	fmt.Fprintln(os.Stderr, "  -max-depth int")
	fmt.Fprintln(os.Stderr, "    maximum parenthesis nesting depth (0 means no limit)")
	fmt.Fprintln(os.Stderr, "  -step-quota int")
	fmt.Fprintln(os.Stderr, "    maximum nodes evaluated per expression (0 means no limit)")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
