// Package pbcheck solves covering problems with gophersat's MAXSAT solver,
// independently of the branch and bound search, so that its results can be checked.
//
// A problem with m actors is encoded with one boolean variable per actor:
//   - exactly n variables are true (two hard cardinality constraints),
//   - for each group, at least one of the actors belonging to it is true (a hard clause),
//   - for each actor, a soft clause ¬a weighted by its cost, so that the cost of a model
//     is the total cost of the chosen actors.
package pbcheck

import (
	"fmt"
	"strconv"

	"github.com/crillab/gophersat/maxsat"

	"github.com/crillab/gophercast/solver"
)

func varName(id int) string {
	return "a" + strconv.Itoa(id)
}

// Constrs returns the MAXSAT constraints equivalent to pb.
// Groups no actor belongs to yield an empty hard clause, which cannot be satisfied.
func Constrs(pb *solver.Problem) []maxsat.Constr {
	m := pb.NbActors()
	pos := make([]maxsat.Lit, m)
	neg := make([]maxsat.Lit, m)
	for i := range pos {
		pos[i] = maxsat.Var(varName(i + 1))
		neg[i] = maxsat.Not(varName(i + 1))
	}
	var constrs []maxsat.Constr
	if pb.NbPicks > 0 {
		constrs = append(constrs, maxsat.HardPBConstr(pos, nil, pb.NbPicks)) // At least n actors
	}
	if m-pb.NbPicks > 0 {
		constrs = append(constrs, maxsat.HardPBConstr(neg, nil, m-pb.NbPicks)) // At most n actors
	}
	for g := 1; g <= pb.NbGroups; g++ {
		var lits []maxsat.Lit
		for _, a := range pb.Actors {
			if a.Groups.Contains(uint32(g)) {
				lits = append(lits, pos[a.ID-1])
			}
		}
		constrs = append(constrs, maxsat.HardClause(lits...))
	}
	for _, a := range pb.Actors {
		if a.Cost > 0 { // A zero weight would make the clause hard
			constrs = append(constrs, maxsat.WeightedClause([]maxsat.Lit{neg[a.ID-1]}, a.Cost))
		}
	}
	// Ensures there is always a cost function, even when every actor is free.
	constrs = append(constrs, maxsat.WeightedClause([]maxsat.Lit{maxsat.Not(padVar)}, 1))
	return constrs
}

// padVar is never forced by a hard constraint, so it is false in every optimal model.
const padVar = "pad"

// Solve returns an optimal selection for pb and its cost.
// ok is false if pb has no solution.
func Solve(pb *solver.Problem) (ids []int, cost int, ok bool) {
	m := pb.NbActors()
	if pb.NbPicks > m || pb.NbUncovered() > 0 {
		return nil, 0, false
	}
	if m == 0 || pb.NbPicks == 0 { // Only the empty selection is possible
		if pb.NbGroups == 0 {
			return []int{}, 0, true
		}
		return nil, 0, false
	}
	model, cost := maxsat.New(Constrs(pb)...).Solve()
	if model == nil {
		return nil, 0, false
	}
	ids = []int{}
	for id := 1; id <= m; id++ {
		if model[varName(id)] {
			ids = append(ids, id)
		}
	}
	return ids, cost, true
}

// Verify returns an error if res is not an optimal result for pb.
func Verify(pb *solver.Problem, res solver.Result) error {
	_, best, ok := Solve(pb)
	if !ok {
		if res.Status == solver.Feasible {
			return fmt.Errorf("found selection %v but problem is infeasible", res.IDs)
		}
		return nil
	}
	if res.Status != solver.Feasible {
		return fmt.Errorf("no selection found but optimal cost is %d", best)
	}
	if len(res.IDs) != pb.NbPicks {
		return fmt.Errorf("selection %v has %d actors, expected %d", res.IDs, len(res.IDs), pb.NbPicks)
	}
	if !pb.Covers(res.IDs...) {
		return fmt.Errorf("selection %v does not cover all groups", res.IDs)
	}
	if cost := pb.Cost(res.IDs...); cost != res.Cost {
		return fmt.Errorf("selection %v costs %d, reported %d", res.IDs, cost, res.Cost)
	}
	if res.Cost != best {
		return fmt.Errorf("selection %v costs %d, optimal cost is %d", res.IDs, res.Cost, best)
	}
	return nil
}
