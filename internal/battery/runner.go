package battery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jcmexdev/pizza-sales/internal/pkg/runctx"
	"github.com/jcmexdev/pizza-sales/internal/runlog"
)

const tracerName = "github.com/jcmexdev/pizza-sales/internal/battery"

// Step is a single report in the battery.
type Step interface {
	Name() string
	Execute(ctx context.Context) (Section, error)
}

// Section is one labeled, tabular report result. Data keeps the typed rows
// for JSON output; Columns and Rows hold the same values as text.
type Section struct {
	Name    string     `json:"name"`
	Title   string     `json:"title"`
	Columns []string   `json:"-"`
	Rows    [][]string `json:"-"`
	Data    any        `json:"data"`
}

// Result is the output of one run.
type Result struct {
	RunID    string    `json:"run_id"`
	Sections []Section `json:"sections"`
}

// Runner executes a sequence of Steps in order.
type Runner struct {
	steps []Step
	log   runlog.Repository
}

// NewRunner returns a Runner for steps. repo may be nil, in which case run
// transitions are not persisted.
func NewRunner(steps []Step, repo runlog.Repository) *Runner {
	return &Runner{steps: steps, log: repo}
}

// Run executes every step under a fresh run id. Reports are read-only, so
// a failing step stops the run without undoing earlier ones; the sections
// completed so far are returned alongside the error.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	ctx = runctx.WithRunID(ctx, runID)

	ctx, span := otel.Tracer(tracerName).Start(ctx, "battery.run")
	span.SetAttributes(attribute.String("run.id", runID), attribute.Int("run.steps", len(r.steps)))
	defer span.End()

	res := &Result{RunID: runID, Sections: make([]Section, 0, len(r.steps))}
	r.record(ctx, runlog.NewEntry(ctx, runID, runlog.StatusStarted, ""))
	slog.InfoContext(ctx, "report battery started", "steps", len(r.steps))

	for _, step := range r.steps {
		sec, err := r.execute(ctx, runID, step)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return res, fmt.Errorf("battery: %s: %w", step.Name(), err)
		}
		res.Sections = append(res.Sections, sec)
	}

	r.record(ctx, runlog.NewEntry(ctx, runID, runlog.StatusCompleted, ""))
	slog.InfoContext(ctx, "report battery completed", "sections", len(res.Sections))
	return res, nil
}

func (r *Runner) execute(ctx context.Context, runID string, step Step) (Section, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, step.Name())
	defer span.End()

	start := time.Now()
	sec, err := step.Execute(ctx)
	elapsed := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.ErrorContext(ctx, "report failed", "report", step.Name(), "error", err)

		entry := runlog.NewEntry(ctx, runID, runlog.StatusFailed, step.Name())
		entry.Error = err.Error()
		entry.Elapsed = elapsed
		r.record(ctx, entry)
		return Section{}, err
	}

	span.SetAttributes(attribute.Int("report.rows", len(sec.Rows)))
	slog.DebugContext(ctx, "report done", "report", step.Name(), "rows", len(sec.Rows), "elapsed", elapsed)

	entry := runlog.NewEntry(ctx, runID, runlog.StatusReportDone, step.Name())
	entry.Rows = len(sec.Rows)
	entry.Elapsed = elapsed
	r.record(ctx, entry)
	return sec, nil
}

// record persists entry. A broken run log never fails the run.
func (r *Runner) record(ctx context.Context, entry *runlog.Entry) {
	if r.log == nil {
		return
	}
	if err := r.log.Save(ctx, entry); err != nil && !errors.Is(err, context.Canceled) {
		slog.WarnContext(ctx, "failed to write run log", "status", entry.Status, "error", err)
	}
}
