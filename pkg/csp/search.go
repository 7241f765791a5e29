package csp

import (
	"context"
	"time"

	"github.com/tilegarden/tilegarden/pkg/observability"
)

// frame is one decision point of the iterative backtracking search: a
// selected variable, its LCV-ordered candidate values, a cursor into them,
// and the trail mark taken before the current attempt so the attempt can be
// undone exactly.
type frame struct {
	x      int
	values []Value
	next   int
	mark   int
}

// Solve runs the search to its first solution, to exhaustion, or to an
// abort (node budget or context cancellation, checked once per decision).
//
// The search is an explicit frame stack rather than language recursion, so
// budgets and cancellation are observable at every decision point. Domains
// and the assignment are mutated in place along the active path and
// restored exactly on every backtrack; after Solve returns the solver is
// spent and must not be reused.
func (s *Solver) Solve(ctx context.Context) Result {
	if s.ran {
		panic("csp: Solver is single-use")
	}
	s.ran = true

	start := time.Now()
	observability.Solver().OnSolveStart(ctx, s.p.NumPlacements())
	res := s.search(ctx)
	res.Stats = s.stats
	res.Stats.Duration = time.Since(start)
	observability.Solver().OnSolveComplete(ctx, res.Outcome.String(), res.Stats.Nodes, res.Stats.Duration)

	s.logger.Debug("search finished",
		"outcome", res.Outcome,
		"nodes", res.Stats.Nodes,
		"backtracks", res.Stats.Backtracks,
		"prunings", res.Stats.Prunings,
		"duration", res.Stats.Duration)
	return res
}

func (s *Solver) search(ctx context.Context) Result {
	// Preprocessing pass: full arc consistency. An empty domain here
	// proves unsatisfiability before any assignment is tried.
	if !s.propagateAll() {
		return Result{Outcome: OutcomeExhausted}
	}

	stack := []frame{{x: s.selectVariable()}}
	stack[0].values = s.orderValues(stack[0].x)

	for len(stack) > 0 {
		f := &stack[len(stack)-1]

		if f.next >= len(f.values) {
			// Decision point exhausted: pop and undo the parent's
			// pending attempt so it can try its next value.
			stack = stack[:len(stack)-1]
			s.stats.Backtracks++
			if len(stack) > 0 {
				s.undoTo(stack[len(stack)-1].mark)
			}
			continue
		}

		if err := ctx.Err(); err != nil {
			return Result{Outcome: OutcomeAborted}
		}
		if s.opts.NodeBudget > 0 && s.stats.Nodes >= s.opts.NodeBudget {
			return Result{Outcome: OutcomeAborted}
		}

		v := f.values[f.next]
		f.next++
		f.mark = len(s.trail)

		s.assign(f.x, v)
		s.stats.Nodes++
		if len(stack) > s.stats.MaxDepth {
			s.stats.MaxDepth = len(stack)
		}
		if s.opts.ProgressEvery > 0 && s.opts.OnProgress != nil && s.stats.Nodes%s.opts.ProgressEvery == 0 {
			s.opts.OnProgress(s.stats)
		}

		if !s.propagateFrom(f.x) {
			// Contradiction: some domain emptied. Recovered locally,
			// never surfaced.
			s.undoTo(f.mark)
			continue
		}

		if s.unassigned == 0 {
			if s.complete() {
				return Result{Outcome: OutcomeSolved, Solution: s.buildSolution()}
			}
			s.undoTo(f.mark)
			continue
		}

		x := s.selectVariable()
		stack = append(stack, frame{x: x, values: s.orderValues(x)})
	}

	return Result{Outcome: OutcomeExhausted}
}
