package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/aria-lang/bioalign-go/internal/alignment"
	"github.com/aria-lang/bioalign-go/internal/config"
	"github.com/aria-lang/bioalign-go/internal/engine"
	"github.com/aria-lang/bioalign-go/internal/logging"
	"github.com/aria-lang/bioalign-go/internal/scoring"
	"github.com/aria-lang/bioalign-go/internal/sequence"
	"github.com/aria-lang/bioalign-go/internal/traceback"
	"github.com/aria-lang/bioalign-go/pkg/bioalign"
)

// echoLength bounds the sequences printed in the input echo.
const echoLength = 60

// inputFlags are shared by every algorithm command.
type inputFlags struct {
	files   []string
	in      string
	literal []string
	seqType string
	verbose bool
	json    bool
}

func (f *inputFlags) register(fs *flag.FlagSet, n int) {
	f.files = make([]string, n)
	f.literal = make([]string, n)
	if n > 1 {
		names := []string{"a", "b", "c"}
		for i := 0; i < n; i++ {
			fs.StringVar(&f.files[i], names[i], "", fmt.Sprintf("FASTA file with sequence %s (first record)", names[i]))
			fs.StringVar(&f.literal[i], fmt.Sprintf("seq%d", i+1), "", fmt.Sprintf("Sequence %d as a literal string", i+1))
		}
	} else {
		fs.StringVar(&f.literal[0], "seq", "", "Sequence as a literal string")
	}
	fs.StringVar(&f.in, "in", "", fmt.Sprintf("FASTA file holding the %d input record(s)", n))
	fs.StringVar(&f.seqType, "type", "", "Sequence type (dna, rna, protein); detected when empty")
	fs.BoolVar(&f.verbose, "v", false, "Log engine runs to stderr")
	fs.BoolVar(&f.json, "json", false, "Print the result as JSON")
}

// sequences loads n sequences from -in, the per-sequence files or the
// literal flags, in that order of precedence.
func (f *inputFlags) sequences(n int) ([]*sequence.Sequence, error) {
	t := sequence.Unknown
	if f.seqType != "" {
		parsed, err := sequence.ParseType(f.seqType)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errUsage, err)
		}
		t = parsed
	}

	if f.in != "" {
		seqs, err := bioalign.ReadFASTA(f.in, t)
		if err != nil {
			return nil, err
		}
		if len(seqs) < n {
			return nil, fmt.Errorf("%w: %s holds %d record(s), need %d", errUsage, f.in, len(seqs), n)
		}
		return seqs[:n], nil
	}

	out := make([]*sequence.Sequence, n)
	for i := 0; i < n; i++ {
		label := fmt.Sprintf("seq%d", i+1)
		switch {
		case f.files[i] != "":
			seqs, err := bioalign.ReadFASTA(f.files[i], t)
			if err != nil {
				return nil, err
			}
			if len(seqs) == 0 {
				return nil, fmt.Errorf("%w: no sequences found in %s", errUsage, f.files[i])
			}
			out[i] = seqs[0]
		case f.literal[i] != "":
			kind := t
			if kind == sequence.Unknown {
				kind = sequence.Detect(f.literal[i])
			}
			seq, err := sequence.WithMetadata(f.literal[i], label, "", kind)
			if err != nil {
				return nil, err
			}
			out[i] = seq
		default:
			return nil, fmt.Errorf("%w: sequence %d is missing (use -in, a file flag or a literal flag)", errUsage, i+1)
		}
	}
	return out, nil
}

func (f *inputFlags) service(cfg *config.Config, stderr io.Writer) *engine.Service {
	logger := logging.Discard()
	if f.verbose {
		logger = logging.New("debug", cfg.LogFormat, stderr)
	}
	return engine.NewService(logger, engine.Limits{
		MaxPaths:          cfg.MaxPaths,
		MaxSequenceLength: cfg.MaxSequenceLength,
	})
}

func alignCmd(ctx context.Context, alg engine.Algorithm, args []string, stdout, stderr io.Writer) error {
	cfg := config.Default()
	if err := cfg.FromEnv(); err != nil {
		return fmt.Errorf("%w: %v", config.ErrInvalid, err)
	}

	fs := flag.NewFlagSet(alg.String(), flag.ContinueOnError)
	fs.SetOutput(stderr)

	var in inputFlags
	in.register(fs, alg.Sequences())
	matrixName := fs.String("matrix", "", "Substitution matrix (blosum62, pam250, dna, rna); chosen by sequence type when empty")
	matrixFile := fs.String("matrix-file", "", "NCBI-style substitution matrix file")
	mode := fs.String("mode", "all", "Traceback mode: all or one")
	seed := fs.Int64("seed", 0, "Random seed for -mode one (0 = clock)")
	fs.IntVar(&cfg.MaxPaths, "max-paths", cfg.MaxPaths, "Maximum number of optimal paths to enumerate (0 = unlimited)")
	fs.IntVar(&cfg.MaxSequenceLength, "max-length", cfg.MaxSequenceLength, "Maximum accepted sequence length (0 = unlimited)")
	summary := fs.Bool("stats", false, "Print a summary of the optimal alignment set")
	if alg == engine.Gotoh {
		fs.IntVar(&cfg.GapOpen, "open", cfg.GapOpen, "Gap opening cost (<= 0)")
		fs.IntVar(&cfg.GapExtend, "extend", cfg.GapExtend, "Gap extension cost (<= 0)")
	} else {
		fs.IntVar(&cfg.Gap, "gap", cfg.Gap, "Gap cost per symbol (<= 0)")
	}
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	seqs, err := in.sequences(alg.Sequences())
	if err != nil {
		return err
	}

	var m *scoring.Matrix
	switch {
	case *matrixFile != "":
		m, err = bioalign.LoadMatrix(*matrixFile)
	case *matrixName != "":
		m, err = bioalign.LookupMatrix(*matrixName)
	default:
		m = bioalign.DefaultMatrix(seqs...)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	tm, err := traceback.ParseMode(*mode)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	req := engine.Request{
		Algorithm: alg,
		Sequences: seqs,
		Matrix:    m,
		Gap:       alignment.LinearGap{Cost: cfg.Gap},
		Affine:    alignment.AffineGap{Open: cfg.GapOpen, Extend: cfg.GapExtend},
		Mode:      tm,
		Seed:      *seed,
	}

	res, err := in.service(cfg, stderr).Run(ctx, req)
	if err != nil {
		return err
	}

	if in.json {
		return writeJSON(stdout, res.Report())
	}
	printAlignmentReport(stdout, req, res, *summary)
	return nil
}

func printAlignmentReport(w io.Writer, req engine.Request, res *engine.Result, summary bool) {
	names := make([]string, len(req.Sequences))
	for i, s := range req.Sequences {
		names[i] = s.Label(fmt.Sprintf("seq%d", i+1))
	}

	fmt.Fprintln(w, "Input:")
	fmt.Fprintf(w, "  Algorithm: %s\n", req.Algorithm)
	fmt.Fprintf(w, "  Matrix: %s\n", req.Matrix.Name())
	if req.Algorithm == engine.Gotoh {
		fmt.Fprintf(w, "  Gap open: %d\n", req.Affine.Open)
		fmt.Fprintf(w, "  Gap extension: %d\n", req.Affine.Extend)
	} else {
		fmt.Fprintf(w, "  Gap cost: %d\n", req.Gap.Cost)
	}
	for i, s := range req.Sequences {
		fmt.Fprintf(w, "  Sequence %d (%s): %s\n", i+1, names[i], abbreviate(s.Bases, echoLength))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintf(w, "  Optimal score: %d\n", res.Score)
	fmt.Fprintf(w, "  Optimal alignments: %d\n", len(res.Alignments))
	for _, a := range res.Alignments {
		fmt.Fprintln(w)
		fmt.Fprint(w, a.Format(names, req.Matrix, alignment.LineLength))
	}
	if len(res.SubScores) == 3 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  Pairwise scores (AB, AC, BC): %s\n", joinInts(res.SubScores))
	}
	if summary && res.Summary != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, res.Summary.String())
	}
}
