package solver

import (
	"fmt"
	"sort"

	"github.com/bits-and-blooms/bitset"
)

// A State is a node of the search tree: a set of chosen actors, the remaining ones,
// their accumulated cost and a lower bound on the cost of any solution extending it.
// States are values: once built, a state is never modified.
type State struct {
	pb     *Problem
	chosen *bitset.BitSet // Ranks (in the search order) of the chosen actors
	size   int            // Number of chosen actors
	cost   int            // Sum of the costs of the chosen actors
	bound  int            // Lower bound, as computed by an Estimator
	last   int            // Rank of the last chosen actor, -1 for the root
}

// rootState returns the state where no actor is chosen yet.
func rootState(pb *Problem) *State {
	return &State{
		pb:     pb,
		chosen: bitset.New(uint(pb.NbActors())),
		last:   -1,
	}
}

// child returns the state obtained by choosing the actor at the given rank.
// The receiver is left untouched.
func (s *State) child(rank int) *State {
	a := s.pb.byRank(rank)
	return &State{
		pb:     s.pb,
		chosen: s.chosen.Clone().Set(uint(rank)),
		size:   s.size + 1,
		cost:   s.cost + a.Cost,
		last:   rank,
	}
}

// Len returns the number of chosen actors.
func (s *State) Len() int {
	return s.size
}

// Cost returns the total cost of the chosen actors.
func (s *State) Cost() int {
	return s.cost
}

// Bound returns the lower bound computed for this state.
func (s *State) Bound() int {
	return s.bound
}

// Missing is the number of actors that still have to be chosen.
// It is negative if too many actors were chosen already.
func (s *State) Missing() int {
	return s.pb.NbPicks - s.size
}

// Remaining calls f on each actor that is not chosen, by increasing cost, until f returns false.
func (s *State) Remaining(f func(a *Actor) bool) {
	for rank := 0; rank < s.pb.NbActors(); rank++ {
		if s.chosen.Test(uint(rank)) {
			continue
		}
		if !f(s.pb.byRank(rank)) {
			return
		}
	}
}

// NbRemaining returns the number of actors that are not chosen.
func (s *State) NbRemaining() int {
	return s.pb.NbActors() - s.size
}

// Chosen returns the ids of the chosen actors, in increasing order.
func (s *State) Chosen() []int {
	ids := make([]int, 0, s.size)
	for rank, ok := s.chosen.NextSet(0); ok; rank, ok = s.chosen.NextSet(rank + 1) {
		ids = append(ids, s.pb.byRank(int(rank)).ID)
	}
	sort.Ints(ids)
	return ids
}

// covers is true iff the chosen actors cover all groups.
func (s *State) covers() bool {
	return s.pb.Covers(s.Chosen()...)
}

func (s *State) String() string {
	return fmt.Sprintf("{chosen: %v, cost: %d, bound: %d}", s.Chosen(), s.cost, s.bound)
}
