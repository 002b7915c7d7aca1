package solver

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// InfeasibleToken is what Result.Write outputs when no solution exists.
const InfeasibleToken = "Inviavel"

// A Result is the outcome of a search.
// If the status is Feasible, IDs holds the ids of the chosen actors, in increasing order,
// and Cost their total cost.
type Result struct {
	Status Status
	IDs    []int
	Cost   int
	Stats  Stats
}

// Err returns ErrInfeasible if the result holds no solution, nil otherwise.
func (r Result) Err() error {
	if r.Status != Feasible {
		return ErrInfeasible
	}
	return nil
}

// Write outputs the result: the chosen ids on one line, space separated, then the cost on another line.
// If there is no solution, it outputs InfeasibleToken instead.
func (r Result) Write(w io.Writer) error {
	if r.Status != Feasible {
		_, err := fmt.Fprintln(w, InfeasibleToken)
		return err
	}
	ids := make([]string, len(r.IDs))
	for i, id := range r.IDs {
		ids[i] = strconv.Itoa(id)
	}
	_, err := fmt.Fprintf(w, "%s\n%d\n", strings.Join(ids, " "), r.Cost)
	return err
}

// WriteStats outputs the search statistics, one per line.
func (r Result) WriteStats(w io.Writer) error {
	_, err := fmt.Fprintf(w, "c nb nodes generated: %d\nc nb nodes visited: %d\nc elapsed: %d us\n",
		r.Stats.NbGenerated, r.Stats.NbVisited, r.Stats.Elapsed.Microseconds())
	return err
}
