package solver

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
)

// Describes basic types and constants that are used in the solver

// Status is the status of a given problem at a given moment.
type Status byte

const (
	// Indet means the problem has not been solved yet.
	Indet = Status(iota)
	// Feasible means a selection covering all groups was found.
	Feasible
	// Infeasible means no selection of the required size covers all groups.
	Infeasible
)

func (s Status) String() string {
	switch s {
	case Indet:
		return "INDETERMINATE"
	case Feasible:
		return "FEASIBLE"
	case Infeasible:
		return "INFEASIBLE"
	default:
		panic("invalid status")
	}
}

// An Actor is a weighted candidate that covers a set of groups.
// Actors are immutable once their Problem was built.
type Actor struct {
	ID     int             // Identifier, 1-based, in input order
	Cost   int             // Cost paid if the actor is chosen
	Groups *roaring.Bitmap // Groups the actor belongs to
}

func (a Actor) String() string {
	return fmt.Sprintf("{id: %d, cost: %d, groups: %v}", a.ID, a.Cost, a.Groups.ToArray())
}

// less is the search order on actors: by cost, then by id.
func (a *Actor) less(b *Actor) bool {
	if a.Cost == b.Cost {
		return a.ID < b.ID
	}
	return a.Cost < b.Cost
}
