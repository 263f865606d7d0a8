package scenario

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"
	"time"

	json "github.com/goccy/go-json"

	"github.com/vango-dev/vreconcile/pkg/host/memdom"
	"github.com/vango-dev/vreconcile/pkg/reconcile"
)

// StepReport describes what one step did to the document.
type StepReport struct {
	Index    int           `json:"index"`
	Name     string        `json:"name"`
	HTML     string        `json:"html"`
	Ops      []memdom.Op   `json:"ops"`
	Events   []string      `json:"events"`
	Created  int           `json:"created"`
	Removed  int           `json:"removed"`
	Moved    int           `json:"moved"`
	Duration time.Duration `json:"duration"`
}

// Report is the outcome of running a scenario.
type Report struct {
	Name  string          `json:"name"`
	Steps []StepReport    `json:"steps"`
	Stats reconcile.Stats `json:"stats"`
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteText writes a per-step summary followed by the operations of each
// step.
func (r *Report) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "scenario %s\n", r.Name)
	fmt.Fprintln(tw, "STEP\tNAME\tOPS\tCREATED\tREMOVED\tMOVED")
	for _, s := range r.Steps {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\n", s.Index, s.Name, len(s.Ops), s.Created, s.Removed, s.Moved)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, s := range r.Steps {
		fmt.Fprintf(w, "\n[%d] %s\n", s.Index, s.Name)
		for _, op := range s.Ops {
			fmt.Fprintf(w, "  %s\n", op)
		}
		for _, ev := range s.Events {
			fmt.Fprintf(w, "  hook %s\n", ev)
		}
		if _, err := fmt.Fprintf(w, "  => %s\n", s.HTML); err != nil {
			return err
		}
	}
	return nil
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the runner's logger. It is also handed to the engine.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithEngineOptions appends options for the engine each run creates.
func WithEngineOptions(opts ...reconcile.Option) RunnerOption {
	return func(r *Runner) {
		r.engineOpts = append(r.engineOpts, opts...)
	}
}

// Runner plays scenarios against a fresh in-memory document.
type Runner struct {
	logger     *slog.Logger
	engineOpts []reconcile.Option
}

// NewRunner creates a runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		logger: slog.Default().With("component", "scenario"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run mounts the first step and patches every following step over it.
// onStep, when non-nil, receives each step's report as soon as it is ready;
// an error from it stops the run. The partial report is returned alongside
// any error.
func (r *Runner) Run(ctx context.Context, sc *Scenario, onStep func(StepReport) error) (*Report, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	doc := memdom.New()
	root := doc.NewContainer("div")
	opts := append([]reconcile.Option{
		reconcile.WithLogger(r.logger),
		reconcile.WithContext(ctx),
	}, r.engineOpts...)
	engine := reconcile.New(doc, opts...)

	rec := &Recorder{}
	report := &Report{Name: sc.Name, Steps: make([]StepReport, 0, len(sc.Steps))}
	logger := r.logger.With("scenario", sc.Name)

	for i := range sc.Steps {
		if err := ctx.Err(); err != nil {
			report.Stats = engine.Stats()
			return report, err
		}
		step := &sc.Steps[i]
		tree, err := step.Tree.build(rec)
		if err != nil {
			return report, fmt.Errorf("step %d: %w", i, err)
		}

		doc.Journal().Reset()
		rec.Reset()
		before := engine.Stats()
		start := time.Now()
		if err := engine.Render(tree, root); err != nil {
			report.Stats = engine.Stats()
			return report, fmt.Errorf("step %d (%s): %w", i, step.Name, err)
		}
		after := engine.Stats()

		sr := StepReport{
			Index:    i,
			Name:     step.Name,
			HTML:     root.InnerHTML(),
			Ops:      doc.Journal().Ops(),
			Events:   rec.Events(),
			Created:  after.Created - before.Created,
			Removed:  after.Removed - before.Removed,
			Moved:    after.Moved - before.Moved,
			Duration: time.Since(start),
		}
		report.Steps = append(report.Steps, sr)
		logger.Debug("step complete",
			"step", i,
			"name", step.Name,
			"ops", len(sr.Ops),
			"duration", sr.Duration)

		if onStep != nil {
			if err := onStep(sr); err != nil {
				report.Stats = engine.Stats()
				return report, err
			}
		}
	}

	report.Stats = engine.Stats()
	logger.Info("scenario complete", "steps", len(report.Steps), "moved", report.Stats.Moved)
	return report, nil
}
