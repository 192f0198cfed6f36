package engine

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aria-lang/bioalign-go/internal/alignment"
	"github.com/aria-lang/bioalign-go/internal/logging"
	"github.com/aria-lang/bioalign-go/internal/traceback"
)

// counterValue reads a labeled counter from the default registry.
func counterValue(t *testing.T, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	for _, f := range families {
		if f.GetName() != name {
			continue
		}
	metrics:
		for _, m := range f.GetMetric() {
			for _, l := range m.GetLabel() {
				if want, ok := labels[l.GetName()]; ok && want != l.GetValue() {
					continue metrics
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestServiceRun(t *testing.T) {
	var buf bytes.Buffer
	svc := NewService(logging.New("debug", "text", &buf), Limits{})

	labels := map[string]string{"algorithm": "needleman-wunsch", "status": "ok"}
	before := counterValue(t, "bioalign_engine_runs_total", labels)

	res, err := svc.Run(context.Background(), Request{
		Algorithm: NeedlemanWunsch,
		Sequences: seqs(t, "AGTC", "ATC"),
		Gap:       alignment.LinearGap{Cost: -2},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Score)

	assert.Equal(t, before+1, counterValue(t, "bioalign_engine_runs_total", labels))
	assert.Contains(t, buf.String(), "component=engine")
	assert.Contains(t, buf.String(), "engine run complete")
	assert.Contains(t, buf.String(), "score=1")
}

func TestServiceSequenceLimit(t *testing.T) {
	svc := NewService(logging.Discard(), Limits{MaxSequenceLength: 3})

	_, err := svc.Run(context.Background(), Request{
		Algorithm: NeedlemanWunsch,
		Sequences: seqs(t, "AGTC", "ATC"),
		Gap:       alignment.LinearGap{Cost: -2},
	})
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestServicePathLimit(t *testing.T) {
	svc := NewService(logging.Discard(), Limits{MaxPaths: 1})

	labels := map[string]string{"algorithm": "needleman-wunsch", "status": "path_limit"}
	before := counterValue(t, "bioalign_engine_runs_total", labels)

	_, err := svc.Run(context.Background(), Request{
		Algorithm: NeedlemanWunsch,
		Sequences: seqs(t, "GATTACA", "GCATGCT"),
		Gap:       alignment.LinearGap{Cost: -1},
		MaxPaths:  50,
	})
	assert.ErrorIs(t, err, traceback.ErrPathLimit)
	assert.Equal(t, before+1, counterValue(t, "bioalign_engine_runs_total", labels))
}

func TestServiceUnknownAlgorithm(t *testing.T) {
	svc := NewService(logging.Discard(), Limits{})

	_, err := svc.Run(context.Background(), Request{Algorithm: "smith-waterman"})
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestServiceUnimplemented(t *testing.T) {
	svc := NewService(logging.Discard(), Limits{})
	svc.lookup = func(Algorithm) (Engine, error) { return pending{}, nil }

	_, err := svc.Run(context.Background(), Request{
		Algorithm: Gotoh,
		Sequences: seqs(t, "A", "A"),
	})
	assert.ErrorIs(t, err, ErrNotImplemented)
}

func TestServiceCanceled(t *testing.T) {
	svc := NewService(logging.Discard(), Limits{})

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	_, err := svc.Run(ctx, Request{
		Algorithm: Nussinov,
		Sequences: seqs(t, "GGGAAATCCGGGAAATCC"),
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "ok", status(nil))
	assert.Equal(t, "path_limit", status(traceback.ErrPathLimit))
	assert.Equal(t, "canceled", status(context.Canceled))
	assert.Equal(t, "bad_request", status(ErrBadRequest))
	assert.Equal(t, "error", status(ErrNotImplemented))
}

func TestCells(t *testing.T) {
	assert.Equal(t, 20, cells(Request{Algorithm: NeedlemanWunsch, Sequences: seqs(t, "AGTC", "ATC")}))
	assert.Equal(t, 60, cells(Request{Algorithm: Gotoh, Sequences: seqs(t, "AGTC", "ATC")}))
	assert.Equal(t, 16, cells(Request{Algorithm: Nussinov, Sequences: seqs(t, "GATC")}))
}
