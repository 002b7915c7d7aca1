package solver

import (
	"fmt"
	"math"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
)

// A Problem is a pool of actors, a number of groups to cover and a number of actors to pick.
type Problem struct {
	NbGroups int     // Groups are numbered 1..NbGroups
	NbPicks  int     // Exact number of actors a solution must contain
	Actors   []Actor // Actors, in input order: Actors[i].ID == i+1

	order    []int           // Positions in Actors, sorted by (cost, id)
	universe *roaring.Bitmap // All groups, 1..NbGroups
}

// NewProblem builds a problem from a list of costs and a list of group memberships.
// costs[i] and groups[i] describe the actor with id i+1.
// It returns an error if the data is not consistent.
func NewProblem(nbGroups, nbPicks int, costs []int, groups [][]int) (*Problem, error) {
	if nbGroups < 0 || uint64(nbGroups) > math.MaxUint32 {
		return nil, fmt.Errorf("invalid number of groups %d", nbGroups)
	}
	if nbPicks < 0 {
		return nil, fmt.Errorf("invalid number of picks %d", nbPicks)
	}
	if len(costs) != len(groups) {
		return nil, fmt.Errorf("got %d costs for %d actors", len(costs), len(groups))
	}
	pb := &Problem{
		NbGroups: nbGroups,
		NbPicks:  nbPicks,
		Actors:   make([]Actor, len(costs)),
	}
	for i, cost := range costs {
		if cost < 0 {
			return nil, fmt.Errorf("actor %d: negative cost %d", i+1, cost)
		}
		bm := roaring.New()
		for _, g := range groups[i] {
			if g < 1 || g > nbGroups {
				return nil, fmt.Errorf("actor %d: group %d out of range 1..%d", i+1, g, nbGroups)
			}
			bm.Add(uint32(g))
		}
		pb.Actors[i] = Actor{ID: i + 1, Cost: cost, Groups: bm}
	}
	pb.init()
	return pb, nil
}

// init computes the search order and the group universe.
func (pb *Problem) init() {
	pb.order = make([]int, len(pb.Actors))
	for i := range pb.order {
		pb.order[i] = i
	}
	sort.Slice(pb.order, func(i, j int) bool {
		return pb.Actors[pb.order[i]].less(&pb.Actors[pb.order[j]])
	})
	pb.universe = roaring.New()
	if pb.NbGroups > 0 {
		pb.universe.AddRange(1, uint64(pb.NbGroups)+1)
	}
}

// NbActors returns the size of the pool.
func (pb *Problem) NbActors() int {
	return len(pb.Actors)
}

// byRank returns the actor at the given rank in the search order.
func (pb *Problem) byRank(rank int) *Actor {
	return &pb.Actors[pb.order[rank]]
}

// Covers is true iff the given actors, identified by id, cover all groups.
func (pb *Problem) Covers(ids ...int) bool {
	cov := roaring.New()
	for _, id := range ids {
		cov.Or(pb.Actors[id-1].Groups)
	}
	return cov.AndCardinality(pb.universe) == uint64(pb.NbGroups)
}

// Cost returns the total cost of the given actors, identified by id.
func (pb *Problem) Cost(ids ...int) int {
	res := 0
	for _, id := range ids {
		res += pb.Actors[id-1].Cost
	}
	return res
}

// uncovered returns the set of groups no actor of the pool belongs to.
func (pb *Problem) uncovered() *roaring.Bitmap {
	cov := roaring.New()
	for i := range pb.Actors {
		cov.Or(pb.Actors[i].Groups)
	}
	return roaring.AndNot(pb.universe, cov)
}

// NbUncovered returns the number of groups no actor of the pool belongs to.
// If it is not 0, the problem is trivially infeasible.
func (pb *Problem) NbUncovered() int {
	return int(pb.uncovered().GetCardinality())
}

// Uncovered returns the groups no actor of the pool belongs to.
// There can be as many as NbGroups of them: NbUncovered is cheaper when only the count matters.
func (pb *Problem) Uncovered() []int {
	missing := pb.uncovered()
	res := make([]int, 0, missing.GetCardinality())
	it := missing.Iterator()
	for it.HasNext() {
		res = append(res, int(it.Next()))
	}
	return res
}

// String returns the problem in the text format ParseText reads.
func (pb *Problem) String() string {
	res := fmt.Sprintf("%d %d %d\n", pb.NbGroups, len(pb.Actors), pb.NbPicks)
	for _, a := range pb.Actors {
		res += fmt.Sprintf("%d %d", a.Cost, a.Groups.GetCardinality())
		for _, g := range a.Groups.ToArray() {
			res += fmt.Sprintf(" %d", g)
		}
		res += "\n"
	}
	return res
}
