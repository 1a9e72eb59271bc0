// Package export reads a document, relocates its references and writes the result.
package export

import (
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	foundationerrors "git.home.luguber.info/inful/exportreadme/internal/foundation/errors"
	"git.home.luguber.info/inful/exportreadme/internal/logfields"
	"git.home.luguber.info/inful/exportreadme/internal/markdown"
	"git.home.luguber.info/inful/exportreadme/internal/metrics"
)

// Result describes one export.
type Result struct {
	RunID    string
	Input    string
	Output   string // empty for previews
	Report   markdown.Report
	Duration time.Duration
}

// Exporter runs the read, rewrite, write cycle.
type Exporter struct {
	rewriter *markdown.Rewriter
	recorder metrics.Recorder
	logger   *slog.Logger
	atomic   bool
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithRecorder sets the metrics recorder (default metrics.NoopRecorder).
func WithRecorder(r metrics.Recorder) Option {
	return func(e *Exporter) {
		if r != nil {
			e.recorder = r
		}
	}
}

// WithLogger sets the logger (default slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(e *Exporter) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithAtomic toggles temp-file-and-rename writes (default on).
func WithAtomic(atomic bool) Option {
	return func(e *Exporter) {
		e.atomic = atomic
	}
}

// New returns an Exporter using rewriter.
func New(rewriter *markdown.Rewriter, opts ...Option) *Exporter {
	e := &Exporter{
		rewriter: rewriter,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
		atomic:   true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export rewrites input into output, creating or overwriting output.
// Either the complete output is written or an error is returned.
func (e *Exporter) Export(ctx context.Context, input, output string) (*Result, error) {
	start := time.Now()
	res := &Result{RunID: uuid.NewString(), Input: input, Output: output}
	logger := e.logger.With(logfields.RunID(res.RunID))

	text, err := e.rewrite(ctx, res)
	if err == nil {
		err = writeDocument(ctx, output, text, e.atomic)
		if err != nil && ctx.Err() == nil {
			err = foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "write output failed").
				Fatal().
				AtPath(output).
				Build()
		}
	}
	res.Duration = time.Since(start)
	e.finish(ctx, err, res.Duration)

	if err != nil {
		logger.Debug("Export failed", logfields.Input(input), logfields.Output(output), logfields.Error(err))
		return nil, err
	}

	e.recordReport(res.Report)
	logger.Info("Document exported",
		logfields.Input(input),
		logfields.Output(output),
		logfields.TargetPrefix(e.rewriter.TargetPrefix()),
		logfields.Rewritten(len(res.Report.Rewritten)),
		logfields.Kept(len(res.Report.Kept)),
		logfields.Duration(res.Duration))
	for _, c := range res.Report.Rewritten {
		logger.Debug("Reference rewritten",
			logfields.Kind(string(c.Link.Kind)),
			logfields.Attribute(c.Link.Attribute),
			logfields.Destination(c.Link.Destination))
	}
	return res, nil
}

// Preview runs the rewrite on input without writing anything.
func (e *Exporter) Preview(ctx context.Context, input string) (*Result, error) {
	start := time.Now()
	res := &Result{RunID: uuid.NewString(), Input: input}
	if _, err := e.rewrite(ctx, res); err != nil {
		return nil, err
	}
	res.Duration = time.Since(start)
	return res, nil
}

func (e *Exporter) rewrite(ctx context.Context, res *Result) (string, error) {
	text, err := readDocument(ctx, res.Input)
	if err != nil {
		if ctx.Err() != nil {
			return "", err
		}
		return "", foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "read input failed").
			Fatal().
			AtPath(res.Input).
			Build()
	}

	out, report := e.rewriter.RewriteWithReport(text)
	res.Report = report
	return out, nil
}

func (e *Exporter) finish(ctx context.Context, err error, d time.Duration) {
	e.recorder.ObserveExportDuration(d)
	switch {
	case err == nil:
		e.recorder.IncExportOutcome(metrics.ResultSuccess)
	case stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil:
		e.recorder.IncExportOutcome(metrics.ResultCanceled)
	default:
		e.recorder.IncExportOutcome(metrics.ResultFailed)
	}
}

func (e *Exporter) recordReport(report markdown.Report) {
	rewritten := map[markdown.LinkKind]int{}
	for _, c := range report.Rewritten {
		rewritten[c.Link.Kind]++
	}
	kept := map[markdown.LinkKind]int{}
	for _, l := range report.Kept {
		kept[l.Kind]++
	}
	for _, kind := range []markdown.LinkKind{markdown.LinkKindHTMLAttribute, markdown.LinkKindMarkdown} {
		e.recorder.AddReferences(string(kind), metrics.ReferenceRewritten, rewritten[kind])
		e.recorder.AddReferences(string(kind), metrics.ReferenceKept, kept[kind])
	}
}
