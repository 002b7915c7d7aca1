/*
Package solver gives access to an exact branch and bound solver for a weighted covering problem.

Given a number of groups, a pool of actors, each with a cost and a set of groups it belongs to,
and a number n of actors to pick, the solver finds a selection of exactly n actors covering every group
and whose total cost is minimal, or proves no such selection exists.

Describing a problem

A problem can be described in several ways:

1. parse a text stream (io.Reader). If the io.Reader produces the following content:

    2 3 2
    10 1 1
    10 1 2
    5 2 1 2

the programmer can create the Problem by doing:

    pb, err := solver.ParseText(f)

The first line gives the number of groups, the number of actors and the number of actors to pick.
Each following line describes an actor: its cost, its number of groups, then the groups themselves.
Actors are given ids 1, 2, 3, ... in the order they appear.

2. parse the equivalent JSON document:

    {"groups": 2, "select": 2, "actors": [
        {"cost": 10, "groups": [1]},
        {"cost": 10, "groups": [2]},
        {"cost": 5, "groups": [1, 2]}
    ]}

with

    pb, err := solver.ParseJSON(f)

3. create it programmatically:

    pb, err := solver.NewProblem(2, 2, []int{10, 10, 5}, [][]int{{1}, {2}, {1, 2}})

Solving a problem

To solve a problem, one creates a solver with the given options:

    s := solver.New(pb, solver.DefaultOptions())
    res := s.Solve()
    if res.Status == solver.Feasible {
        fmt.Println(res.IDs, res.Cost) // [1 3] 15
    }

The search is a depth-first exploration of all the ways to add actors to an initially empty selection.
Children of a node are explored by increasing lower bound, as computed by an Estimator.
Two estimators are provided: Basic and Improved, the latter being tighter.
Two cuts, both enabled by default, prune the tree: the optimality cut discards nodes whose bound
is not better than the best solution found so far, and the feasibility cut discards nodes that contain
more actors than required. When a cut fires, all the following siblings are discarded too.
Disabling a cut does not change the optimal cost, but can make the search dramatically slower.
*/
package solver
