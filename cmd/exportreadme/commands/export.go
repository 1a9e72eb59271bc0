package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/exportreadme/internal/config"
	"git.home.luguber.info/inful/exportreadme/internal/export"
	foundationerrors "git.home.luguber.info/inful/exportreadme/internal/foundation/errors"
	"git.home.luguber.info/inful/exportreadme/internal/logfields"
	"git.home.luguber.info/inful/exportreadme/internal/markdown"
	"git.home.luguber.info/inful/exportreadme/internal/metrics"
	"git.home.luguber.info/inful/exportreadme/internal/watch"
)

// ExportCmd implements the default 'export' command.
type ExportCmd struct {
	Input       string `arg:"" name:"input" help:"Document to read" type:"path"`
	Output      string `arg:"" name:"output" help:"File to write the rewritten document to" type:"path"`
	Prefix      string `short:"p" help:"Segment prepended to relative links (overrides target_prefix)"`
	DryRun      bool   `name:"dry-run" help:"Print the links that would change and write nothing"`
	Watch       bool   `short:"w" help:"Keep running and export again whenever the input changes"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus text-format metrics to this file after each export (not with --dry-run)" type:"path"`
}

func (e *ExportCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	if e.DryRun && e.MetricsFile != "" {
		return foundationerrors.ValidationError("--metrics-file cannot be combined with --dry-run").
			ForField("metrics-file").
			Build()
	}

	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}

	logger := cfg.Logging.NewLogger(os.Stderr, root.Verbose)
	slog.SetDefault(logger)
	logger.Debug("Effective configuration", slog.String("config", cfg.String()))

	prefix := cfg.TargetPrefix
	if e.Prefix != "" {
		prefix = e.Prefix
	}
	rewriter, err := markdown.NewRewriter(markdown.WithTargetPrefix(prefix))
	if err != nil {
		return err
	}

	metricsPath := cfg.Metrics.TextfilePath
	if e.MetricsFile != "" {
		metricsPath = e.MetricsFile
	}
	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if metricsPath != "" && !e.DryRun {
		prom = metrics.NewPrometheusRecorder(nil)
		recorder = prom
	}

	exporter := export.New(rewriter,
		export.WithRecorder(recorder),
		export.WithLogger(logger),
		export.WithAtomic(cfg.Output.AtomicWrites()),
	)

	if e.DryRun {
		res, err := exporter.Preview(ctx, e.Input)
		if err != nil {
			return err
		}
		printReport(g.stdout(), res)
		return nil
	}

	runOnce := func(ctx context.Context) error {
		_, exportErr := exporter.Export(ctx, e.Input, e.Output)
		if prom != nil {
			if err := metrics.WriteTextfile(prom.Registry(), metricsPath); err != nil {
				metricsErr := foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "write metrics textfile failed").
					AtPath(metricsPath).
					Build()
				if exportErr == nil {
					return metricsErr
				}
				logger.Error("Failed to write metrics textfile", logfields.Path(metricsPath), logfields.Error(err))
			}
		}
		return exportErr
	}

	if !e.Watch {
		return runOnce(ctx)
	}
	return e.runWatch(ctx, cfg, logger, runOnce)
}

func (e *ExportCmd) runWatch(ctx context.Context, cfg *config.Config, logger *slog.Logger, runOnce func(context.Context) error) error {
	if samePath(e.Input, e.Output) {
		return foundationerrors.ValidationError("--watch cannot export a file onto itself").
			AtPath(e.Input).
			Build()
	}

	debounce, err := cfg.Watch.DebounceDuration()
	if err != nil {
		return err
	}

	w, err := watch.New(e.Input, debounce, func(ctx context.Context) {
		if err := runOnce(ctx); err != nil && ctx.Err() == nil {
			logger.Error("Export failed", logfields.Input(e.Input), logfields.Error(err))
		}
	}, watch.WithLogger(logger))
	if err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "start watcher failed").
			AtPath(e.Input).
			Build()
	}

	if err := runOnce(ctx); err != nil {
		logger.Error("Export failed", logfields.Input(e.Input), logfields.Error(err))
	}
	return w.Run(ctx)
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}

func printReport(w io.Writer, res *export.Result) {
	for _, c := range res.Report.Rewritten {
		label := string(c.Link.Kind)
		if c.Link.Attribute != "" {
			label = c.Link.Attribute
		}
		_, _ = fmt.Fprintf(w, "%-8s %s -> %s\n", label, c.Link.Destination, c.Rewritten)
	}
	_, _ = fmt.Fprintf(w, "%d rewritten, %d kept\n", len(res.Report.Rewritten), len(res.Report.Kept))
}
