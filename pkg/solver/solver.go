// Package solver drives the full pipeline: intent validation, frame
// construction, the per-variant placement loop, opening placement,
// reachability and emission. Each variant owns an independent PlanState;
// the frame and intent are shared read-only, so the loop has no hidden
// coupling between iterations and stays fully deterministic.
package solver

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/jfromaniello/planscript/pkg/emit"
	"github.com/jfromaniello/planscript/pkg/frame"
	"github.com/jfromaniello/planscript/pkg/intent"
	"github.com/jfromaniello/planscript/pkg/layout"
	"github.com/jfromaniello/planscript/pkg/opening"
	"github.com/jfromaniello/planscript/pkg/reach"
	"github.com/jfromaniello/planscript/pkg/score"
	"github.com/jfromaniello/planscript/pkg/validation"
)

// Options tunes a solve run. The zero value solves with the intent's own
// variant count, no trace and no logging.
type Options struct {
	// Variants overrides the intent's variant count when > 0.
	Variants int
	// Trace receives inspection events when set.
	Trace Trace
	// Logger receives phase-level debug logging when set.
	Logger *log.Logger
}

// Result is a successful solve.
type Result struct {
	Plan     *layout.PlanState  `json:"plan"`
	Frame    *frame.Frame       `json:"frame"`
	Score    score.Breakdown    `json:"score"`
	Report   *validation.Report `json:"report"`
	Entry    string             `json:"entry"`
	Variant  int                `json:"variant"`
	Text     string             `json:"text"`
	Warnings []string           `json:"warnings,omitempty"`
}

// SolveError is the typed failure for every expected error path. Stage
// names the pipeline phase that failed; Violations and Unplaced carry the
// structured diagnostics when available.
type SolveError struct {
	Stage      string
	Message    string
	Violations []string
	Unplaced   []layout.UnplacedRoom
}

func (e *SolveError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "solve failed at %s: %s", e.Stage, e.Message)
	for _, v := range e.Violations {
		b.WriteString("\n  - ")
		b.WriteString(v)
	}
	for _, u := range e.Unplaced {
		fmt.Fprintf(&b, "\n  - room '%s': %s", u.ID, u.Reason)
		if u.Detail != "" {
			fmt.Fprintf(&b, " (%s)", u.Detail)
		}
	}
	return b.String()
}

// variantResult is one attempt from the variant loop.
type variantResult struct {
	state *layout.PlanState
	score score.Breakdown
	skip  string
}

// Solve runs the whole pipeline over a normalized intent.
func Solve(in *intent.Intent, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	trace := opts.Trace
	if trace == nil {
		trace = NoopTrace{}
	}

	report := validation.ValidateIntent(in)
	if !report.Valid {
		return nil, &SolveError{
			Stage:      "intent",
			Message:    "intent validation failed",
			Violations: report.ErrorMessages(),
		}
	}

	f, frameReport := frame.Build(in)
	report.Merge(frameReport)
	if !report.Valid {
		return nil, &SolveError{
			Stage:      "frame",
			Message:    "frame construction failed",
			Violations: report.ErrorMessages(),
		}
	}
	trace.OnFrame(f)
	logger.Debug("frame built", "bands", len(f.Bands), "depths", len(f.Depths), "cells", len(f.Cells))

	variants := in.Variants()
	if opts.Variants > 0 {
		variants = opts.Variants
	}

	hard := in.Constraints.Hard
	var best *variantResult
	bestVariant := -1
	var last variantResult

	for k := 0; k < variants; k++ {
		vr := runVariant(in, f, hard, k, trace, logger)
		last = vr
		if vr.skip != "" {
			logger.Debug("variant skipped", "variant", k, "reason", vr.skip)
			continue
		}
		logger.Debug("variant scored", "variant", k, "total", vr.score.Total)
		if best == nil || vr.score.Total > best.score.Total {
			v := vr
			best = &v
			bestVariant = k
		}
	}

	if best == nil {
		return nil, noVariantError(last)
	}
	st := best.state
	logger.Debug("variant selected", "variant", bestVariant, "total", best.score.Total)

	entry := reach.ResolveEntry(st, in, f)
	opening.PlaceOpenings(st, in, f, entry, trace.OnDoorDecision)

	// Re-run the spatial constraints after openings. Reachability is a
	// separate final gate; doors never move rects.
	final := layout.ValidatePlan(st, f, hard)
	if !final.Valid {
		return nil, &SolveError{
			Stage:      "validate",
			Message:    "plan violates hard constraints",
			Violations: final.ErrorMessages(),
		}
	}
	report.Merge(final)

	unreachable := reach.Unreachable(st, entry)
	trace.OnReachability(entry, reach.BuildDoorGraph(st), unreachable)

	var warnings []string
	if len(unreachable) > 0 {
		msgs := make([]string, len(unreachable))
		for i, id := range unreachable {
			msgs[i] = fmt.Sprintf("room '%s' is unreachable from '%s'", id, entry)
		}
		if hard.AllReachableEnabled() {
			return nil, &SolveError{
				Stage:      "reachability",
				Message:    "not every room is reachable",
				Violations: msgs,
			}
		}
		warnings = msgs
		for _, m := range msgs {
			report.AddWarning(validation.Result{
				Level:   validation.LevelAccess,
				Message: m,
			})
		}
	}

	return &Result{
		Plan:     st,
		Frame:    f,
		Score:    best.score,
		Report:   report,
		Entry:    entry,
		Variant:  bestVariant,
		Text:     emit.Emit(st, f, in, entry),
		Warnings: warnings,
	}, nil
}

// runVariant executes one placement attempt end to end. A non-empty skip
// disqualifies the attempt without failing the solve.
func runVariant(in *intent.Intent, f *frame.Frame, hard intent.HardConstraints, k int, trace Trace, logger *log.Logger) variantResult {
	order := layout.Order(in, k)
	trace.OnOrdering(k, order)

	st := layout.PlaceRooms(in, f, order, func(roomID string, cands []layout.Candidate) {
		trace.OnPlacement(k, roomID, cands)
	})
	if len(st.Unplaced) > 0 {
		return variantResult{state: st, skip: "unplaced rooms"}
	}

	if vr := layout.ValidatePlan(st, f, hard); !vr.Valid {
		return variantResult{state: st, skip: "hard constraint violation"}
	}

	if layout.Repair(st, in, f) {
		logger.Debug("repair swapped rooms", "variant", k)
	}
	if passes := layout.GapFill(st, in); passes > 0 {
		logger.Debug("gaps absorbed", "variant", k, "passes", passes)
	}
	if layout.SynthesizeCorridor(st, in, f) {
		logger.Debug("corridor synthesized", "variant", k)
	}

	return variantResult{state: st, score: score.Evaluate(st, in, f)}
}

// noVariantError reconstructs a diagnostic from the last attempt instead
// of returning a generic failure.
func noVariantError(last variantResult) *SolveError {
	err := &SolveError{Stage: "placement", Message: "no layout variant succeeded"}
	if last.state != nil {
		err.Unplaced = last.state.Unplaced
		if last.skip != "" && len(last.state.Unplaced) == 0 {
			err.Violations = []string{last.skip}
		}
	}
	return err
}
