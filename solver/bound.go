package solver

import "fmt"

// An Estimator computes a lower bound on the cost of any solution extending a state.
// The bound does not have to detect infeasibility; it must never overestimate
// the cost of a feasible completion.
type Estimator interface {
	Estimate(s *State) int
}

// Basic assumes every missing actor costs as much as the cheapest remaining one.
type Basic struct{}

// Estimate returns cost + missing * min(remaining costs).
// If no actor is missing, or none remains, it returns the cost of the state.
func (Basic) Estimate(s *State) int {
	missing := s.Missing()
	if missing <= 0 {
		return s.Cost()
	}
	res := s.Cost()
	s.Remaining(func(a *Actor) bool {
		res += missing * a.Cost
		return false
	})
	return res
}

func (Basic) String() string { return "basic" }

// Improved sums the costs of the cheapest missing actors among the remaining ones,
// i.e the optimal completion when group coverage is ignored.
type Improved struct{}

// Estimate returns cost + the sum of the missing cheapest remaining costs.
// If fewer actors remain than are missing, all of them are summed.
func (Improved) Estimate(s *State) int {
	missing := s.Missing()
	res := s.Cost()
	if missing <= 0 {
		return res
	}
	s.Remaining(func(a *Actor) bool {
		res += a.Cost
		missing--
		return missing > 0
	})
	return res
}

func (Improved) String() string { return "improved" }

// ParseEstimator returns the estimator with the given name, "basic" or "improved".
// The empty string selects the default, Improved.
func ParseEstimator(name string) (Estimator, error) {
	switch name {
	case "", "improved":
		return Improved{}, nil
	case "basic":
		return Basic{}, nil
	default:
		return nil, fmt.Errorf("unknown bound %q, expected \"basic\" or \"improved\"", name)
	}
}
