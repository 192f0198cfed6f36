package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/aria-lang/bioalign-go/internal/config"
	"github.com/aria-lang/bioalign-go/internal/engine"
	"github.com/aria-lang/bioalign-go/internal/folding"
)

func foldCmd(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg := config.Default()
	if err := cfg.FromEnv(); err != nil {
		return fmt.Errorf("%w: %v", config.ErrInvalid, err)
	}

	fs := flag.NewFlagSet("nussinov", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var in inputFlags
	in.register(fs, 1)
	fs.IntVar(&cfg.Loop, "loop", cfg.Loop, "Minimum number of unpaired positions enclosed by a pair")
	fs.IntVar(&cfg.MaxSequenceLength, "max-length", cfg.MaxSequenceLength, "Maximum accepted sequence length (0 = unlimited)")
	summary := fs.Bool("stats", false, "Print structure statistics")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	seqs, err := in.sequences(1)
	if err != nil {
		return err
	}

	res, err := in.service(cfg, stderr).Run(ctx, engine.Request{
		Algorithm: engine.Nussinov,
		Sequences: seqs,
		Loop:      cfg.Loop,
	})
	if err != nil {
		return err
	}

	if in.json {
		return writeJSON(stdout, res.Report())
	}

	s := res.Structure
	fmt.Fprintln(stdout, "Input:")
	fmt.Fprintf(stdout, "  Loop length: %d\n", s.LoopLength)
	fmt.Fprintf(stdout, "  Sequence (%s): %s\n", seqs[0].Label("seq1"), abbreviate(s.Sequence, echoLength))
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Output:")
	fmt.Fprintf(stdout, "  Optimal number of base pairs: %d\n", res.Score)
	fmt.Fprintln(stdout, "  Optimal structure:")
	fmt.Fprintln(stdout)
	fmt.Fprint(stdout, s.Format(folding.LineLength))
	if *summary && res.Folding != nil {
		fmt.Fprintln(stdout, res.Folding.String())
	}
	return nil
}
