package solver

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"
)

// ErrInfeasible is returned by Result.Err when no selection of the required size covers all groups.
var ErrInfeasible = errors.New("no feasible selection")

// Options describe how the search is run.
// Disabling a cut never changes the optimal cost, only the number of nodes explored.
type Options struct {
	Bound          Estimator // Lower bound used to order and prune nodes. Improved if nil.
	OptimalityCut  bool      // Prune nodes whose bound is not better than the best solution found so far.
	FeasibilityCut bool      // Prune nodes that contain more actors than required.
}

// DefaultOptions returns the options used by default: improved bound, both cuts enabled.
func DefaultOptions() Options {
	return Options{Bound: Improved{}, OptimalityCut: true, FeasibilityCut: true}
}

// Stats are statistics about the search.
// They are provided for information purpose only.
type Stats struct {
	NbGenerated       int           // How many nodes were generated by expansion
	NbVisited         int           // How many nodes were actually explored
	NbOptimalityCuts  int           // How many sibling loops were aborted by the optimality cut
	NbFeasibilityCuts int           // How many sibling loops were aborted by the feasibility cut
	NbImprovements    int           // How many times the best solution was replaced
	Elapsed           time.Duration // Wall time spent searching
}

// A Solver finds a minimum cost selection of exactly NbPicks actors covering all groups,
// by a depth-first branch and bound search.
// A Solver is not safe for concurrent use.
type Solver struct {
	Logger *zap.Logger // Receives debug traces of the search. No-op by default.
	Stats  Stats       // Statistics about the last call to Solve.
	pb     *Problem
	opts   Options
	best   *State // Best feasible state found so far, nil if none
	status Status
	ctx    context.Context
	err    error // Set when ctx is done; the search then unwinds
	nodes  int   // Number of calls to branch, used to poll ctx
}

// Number of nodes between two checks of the context.
const pollInterval = 1024

// New makes a solver for the given problem.
func New(pb *Problem, opts Options) *Solver {
	if opts.Bound == nil {
		opts.Bound = Improved{}
	}
	return &Solver{Logger: zap.NewNop(), pb: pb, opts: opts}
}

// Problem returns the problem the solver works on.
func (s *Solver) Problem() *Problem {
	return s.pb
}

// Solve explores the search tree and returns the best selection found.
// Each call starts a new search from scratch.
func (s *Solver) Solve() Result {
	res, _ := s.SolveContext(context.Background())
	return res
}

// SolveContext is like Solve, but stops the search as soon as ctx is done.
// In that case it returns ctx's error, along with the best selection found so far:
// its status is Feasible if one was found, Indet otherwise, and it is not proven optimal.
func (s *Solver) SolveContext(ctx context.Context) (Result, error) {
	s.best = nil
	s.Stats = Stats{}
	s.ctx = ctx
	s.err = nil
	s.nodes = 0
	if nb := s.pb.NbUncovered(); nb > 0 {
		s.Logger.Debug("some groups cannot be covered by any actor", zap.Int("nbGroups", nb))
	}
	start := time.Now()
	root := rootState(s.pb)
	root.bound = s.opts.Bound.Estimate(root)
	s.branch(root)
	s.Stats.Elapsed = time.Since(start)
	res := Result{Status: Infeasible, Stats: s.Stats}
	if s.err != nil {
		res.Status = Indet
	}
	if s.best != nil {
		res.Status = Feasible
		res.IDs = s.best.Chosen()
		res.Cost = s.best.Cost()
	}
	s.status = res.Status
	s.Logger.Info("search done",
		zap.Stringer("status", res.Status),
		zap.Int("cost", res.Cost),
		zap.Int("generated", s.Stats.NbGenerated),
		zap.Int("visited", s.Stats.NbVisited),
		zap.Duration("elapsed", s.Stats.Elapsed),
		zap.Error(s.err))
	return res, s.err
}

// Status returns the status of the last search, or Indet if Solve was not called yet.
func (s *Solver) Status() Status {
	return s.status
}

// feasible is true iff st is a valid solution: exactly NbPicks actors covering all groups.
func (s *Solver) feasible(st *State) bool {
	return st.Len() == s.pb.NbPicks && st.covers()
}

// expand returns the children of st, sorted by increasing bound.
// Children with the same bound keep the search order of the actor they add.
func (s *Solver) expand(st *State) []*State {
	children := make([]*State, 0, st.NbRemaining())
	for rank := 0; rank < s.pb.NbActors(); rank++ {
		if st.chosen.Test(uint(rank)) {
			continue
		}
		c := st.child(rank)
		c.bound = s.opts.Bound.Estimate(c)
		children = append(children, c)
	}
	sort.SliceStable(children, func(i, j int) bool { return children[i].bound < children[j].bound })
	return children
}

// branch explores the subtree rooted at st.
// When a cut fires on a child, all the following siblings are discarded too:
// since they are sorted by bound, none of them can do better.
func (s *Solver) branch(st *State) {
	if s.interrupted() {
		return
	}
	if s.feasible(st) && (s.best == nil || st.Cost() < s.best.Cost()) {
		s.best = st
		s.Stats.NbImprovements++
		s.Logger.Debug("new best solution", zap.Stringer("state", st))
	}
	children := s.expand(st)
	s.Stats.NbGenerated += len(children)
	for _, c := range children {
		if s.opts.OptimalityCut && s.best != nil && c.Bound() >= s.best.Cost() {
			s.Stats.NbOptimalityCuts++
			s.Logger.Debug("branch cut by optimality", zap.Stringer("state", c), zap.Int("best", s.best.Cost()))
			return
		}
		if s.opts.FeasibilityCut && c.Len() > s.pb.NbPicks {
			s.Stats.NbFeasibilityCuts++
			s.Logger.Debug("branch cut by feasibility", zap.Stringer("state", c))
			return
		}
		s.Logger.Debug("exploring branch", zap.Int("actor", s.pb.byRank(c.last).ID), zap.Stringer("state", c))
		s.branch(c)
		if s.err != nil {
			return
		}
		s.Stats.NbVisited++
	}
}

// interrupted is true once the context of the search is done.
// The context is polled every pollInterval nodes, starting with the root.
func (s *Solver) interrupted() bool {
	if s.err == nil && s.nodes%pollInterval == 0 {
		s.err = s.ctx.Err()
		if s.err != nil {
			s.Logger.Debug("search interrupted", zap.Error(s.err), zap.Int("nodes", s.nodes))
		}
	}
	s.nodes++
	return s.err != nil
}
