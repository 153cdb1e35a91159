package replay

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/dshills/scenepick/internal/input/key"
	"github.com/dshills/scenepick/internal/input/mouse"
	"github.com/dshills/scenepick/internal/logging"
	"github.com/dshills/scenepick/internal/metrics"
	"github.com/dshills/scenepick/internal/scene"
	"github.com/dshills/scenepick/internal/selection"
	"github.com/dshills/scenepick/internal/viewport"
)

// StepResult is the outcome of one step.
type StepResult struct {
	// Index is the 1-based step number.
	Index int
	// Kind is the step action.
	Kind string
	// Selection is the selection by name after the step.
	Selection []string
	// Active is the active element after the step, empty if none.
	Active string
	// Want is the expected selection, nil when the step had no expectation.
	Want []string
	// OK is false when Want was set and did not match.
	OK bool
}

// Report collects the results of a run.
type Report struct {
	Steps    []StepResult
	Failures int
}

// Passed reports whether every expectation matched.
func (r Report) Passed() bool {
	return r.Failures == 0
}

// Runner executes scripts.
type Runner struct {
	action    key.Modifier
	threshold float64
	log       *slog.Logger
	metrics   *metrics.Metrics
}

// Option configures a Runner.
type Option func(*Runner)

// WithActionModifier sets the modifier "action" maps to. Defaults to Ctrl so
// scripts behave the same on every platform.
func WithActionModifier(m key.Modifier) Option {
	return func(r *Runner) {
		r.action = m
	}
}

// WithDragThreshold sets the controller drag threshold.
func WithDragThreshold(px float64) Option {
	return func(r *Runner) {
		r.threshold = px
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		r.log = l
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}

// NewRunner creates a runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		action: key.ModCtrl,
		log:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run plays script against sc with a fresh selection store. It stops early
// only when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, sc *scene.Scene, script *Script) (Report, error) {
	store := selection.NewStore(
		selection.WithStoreLogger(r.log),
		selection.WithStoreMetrics(r.metrics),
	)
	opts := []viewport.Option{
		viewport.WithActionModifier(r.action),
		viewport.WithLogger(r.log),
		viewport.WithMetrics(r.metrics),
	}
	if r.threshold > 0 {
		opts = append(opts, viewport.WithDragThreshold(r.threshold))
	}
	ctrl := viewport.New(sc, store, opts...)
	defer ctrl.Close()

	log := logging.WithComponent(r.log, "replay")

	var report Report
	for i, step := range script.Steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := r.apply(ctrl, store, sc, step); err != nil {
			return report, fmt.Errorf("step %d (%s): %w", i+1, step.Kind(), err)
		}

		res := describe(store.Current())
		res.Index = i + 1
		res.Kind = step.Kind()
		res.OK = true
		if step.Expect != nil {
			res.Want = *step.Expect
			res.OK = slices.Equal(res.Selection, res.Want)
		}
		if !res.OK {
			report.Failures++
			log.Warn("expectation failed",
				"step", res.Index,
				"kind", res.Kind,
				"got", res.Selection,
				"want", res.Want,
			)
		}
		report.Steps = append(report.Steps, res)
	}
	return report, nil
}

func (r *Runner) apply(ctrl *viewport.Controller, store *selection.Store, sc *scene.Scene, step Step) error {
	mods := step.Modifiers(r.action)

	switch step.Kind() {
	case "click":
		p, err := point(step.Click)
		if err != nil {
			return err
		}
		ctrl.Click(p, mods)

	case "drag":
		from, err := point(step.Drag.From)
		if err != nil {
			return err
		}
		to, err := point(step.Drag.To)
		if err != nil {
			return err
		}
		ctrl.Drag(from, to, mods)

	case "press", "move", "release":
		return r.gesture(ctrl, step, mods)

	case "frame":
		ctrl.Frame(mods)

	case "menu":
		at, err := point(step.Menu.At)
		if err != nil {
			return err
		}
		ctrl.OpenMenu(at)
		if step.Menu.Hover != nil && !ctrl.HoverMenu(*step.Menu.Hover, mods) {
			ctrl.CloseMenu()
			return fmt.Errorf("%w: menu has no entry %d", ErrInvalidStep, *step.Menu.Hover)
		}
		if step.Menu.Choose != nil {
			if !ctrl.ChooseMenu(*step.Menu.Choose, mods) {
				ctrl.CloseMenu()
				return fmt.Errorf("%w: menu has no entry %d", ErrInvalidStep, *step.Menu.Choose)
			}
			return nil
		}
		ctrl.CloseMenu()

	case "select":
		cs, err := sc.Candidates(step.Select...)
		if err != nil {
			return err
		}
		store.Replace(selection.NewSet(cs...), selection.SourceReplay)

	case "clear":
		store.Clear(selection.SourceReplay)

	case "blur":
		ctrl.Focus(false)
		ctrl.Focus(true)
	}
	return nil
}

func (r *Runner) gesture(ctrl *viewport.Controller, step Step, mods key.Modifier) error {
	var (
		xy     []int
		action mouse.Action
	)
	switch step.Kind() {
	case "press":
		xy, action = step.Press, mouse.ActionPress
	case "move":
		xy, action = step.Move, mouse.ActionDrag
	default:
		xy, action = step.Release, mouse.ActionRelease
	}
	p, err := point(xy)
	if err != nil {
		return err
	}
	ctrl.HandleMouse(mouse.Event{
		Position:  p,
		Button:    mouse.ButtonLeft,
		Action:    action,
		Modifiers: mods,
	})
	return nil
}

func describe(s selection.Set) StepResult {
	res := StepResult{Selection: make([]string, 0, s.Len())}
	for _, c := range s.Items {
		res.Selection = append(res.Selection, fmt.Sprint(c))
	}
	if s.Active != nil {
		res.Active = fmt.Sprint(s.Active)
	}
	return res
}
