// Command bioalign computes optimal global alignments and RNA secondary
// structures from the command line.
//
// Usage:
//
//	bioalign [command] [options]
//
// Commands:
//
//	nw          Needleman-Wunsch alignment of two sequences (linear gap)
//	gotoh       Gotoh alignment of two sequences (affine gap)
//	nw3         Needleman-Wunsch alignment of three sequences
//	nussinov    Nussinov RNA secondary structure prediction
//	matrices    List built-in substitution matrices
//	version     Show version information
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/aria-lang/bioalign-go/internal/config"
	"github.com/aria-lang/bioalign-go/internal/engine"
	"github.com/aria-lang/bioalign-go/internal/traceback"
	"github.com/aria-lang/bioalign-go/pkg/bioalign"
)

var errUsage = errors.New("usage")

// Exit codes.
const (
	exitOK = iota
	exitError
	exitUsage
	exitPathLimit
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return exitUsage
	}

	command, rest := args[0], args[1:]
	var err error

	switch command {
	case "nw", "needleman-wunsch":
		err = alignCmd(ctx, engine.NeedlemanWunsch, rest, stdout, stderr)
	case "gotoh":
		err = alignCmd(ctx, engine.Gotoh, rest, stdout, stderr)
	case "nw3", "needleman-wunsch-3d":
		err = alignCmd(ctx, engine.NeedlemanWunsch3D, rest, stdout, stderr)
	case "nussinov":
		err = foldCmd(ctx, rest, stdout, stderr)
	case "matrices":
		err = matricesCmd(rest, stdout, stderr)
	case "version":
		fmt.Fprintln(stdout, bioalign.Info())
	case "help", "-h", "--help":
		printUsage(stdout)
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		printUsage(stderr)
		return exitUsage
	}

	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCode(err)
	}
	return exitOK
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, errUsage), errors.Is(err, engine.ErrBadRequest), errors.Is(err, config.ErrInvalid):
		return exitUsage
	case errors.Is(err, traceback.ErrPathLimit):
		return exitPathLimit
	}
	return exitError
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `bioalign - Optimal Sequence Alignment and RNA Folding

Usage:
  bioalign <command> [options]

Commands:
  nw        Needleman-Wunsch alignment of two sequences (linear gap)
  gotoh     Gotoh alignment of two sequences (affine gap)
  nw3       Needleman-Wunsch alignment of three sequences
  nussinov  Nussinov RNA secondary structure prediction
  matrices  List built-in substitution matrices
  version   Show version information
  help      Show this help message

Use "bioalign <command> -h" for more information about a command.`)
}

func matricesCmd(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("matrices", flag.ContinueOnError)
	fs.SetOutput(stderr)
	show := fs.String("show", "", "Print the full matrix with this name")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if *show != "" {
		m, err := bioalign.LookupMatrix(*show)
		if err != nil {
			return err
		}
		fmt.Fprint(stdout, m.String())
		return nil
	}

	for _, name := range bioalign.MatrixNames() {
		m, err := bioalign.LookupMatrix(name)
		if err != nil {
			return err
		}
		lo, hi := m.Range()
		fmt.Fprintf(stdout, "%-10s %2d symbols  range %d..%d  %s\n", name, m.Size(), lo, hi, m.Alphabet())
	}
	return nil
}

// parseFlags parses args, marking every failure except -h as a usage error.
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	return nil
}

// writeJSON prints v indented.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// abbreviate shortens s for the input echo.
func abbreviate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func joinInts(vs []int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}
