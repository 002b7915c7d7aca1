package solver

import (
	"fmt"
	"io"
	"math"

	"github.com/tidwall/gjson"
)

// ParseJSON parses a problem described as a JSON document:
//
//	{"groups": 2, "select": 2, "actors": [{"cost": 10, "groups": [1]}, {"cost": 5, "groups": [1, 2]}]}
//
// Actors get ids 1..m in the order they appear in the "actors" array.
// Other keys in the document are ignored.
func ParseJSON(f io.Reader) (*Problem, error) {
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("could not read JSON document: %w", err)
	}
	return ParseJSONBytes(data)
}

// ParseJSONBytes is like ParseJSON, on an in-memory document.
func ParseJSONBytes(data []byte) (*Problem, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON document")
	}
	doc := gjson.ParseBytes(data)
	nbGroups, err := jsonInt(doc, "groups")
	if err != nil {
		return nil, err
	}
	nbPicks, err := jsonInt(doc, "select")
	if err != nil {
		return nil, err
	}
	actors := doc.Get("actors")
	if !actors.IsArray() {
		return nil, fmt.Errorf("key %q must be an array", "actors")
	}
	var (
		costs  []int
		groups [][]int
	)
	actors.ForEach(func(key, v gjson.Result) bool {
		i := int(key.Int()) + 1
		var cost int
		if cost, err = jsonInt(v, "cost"); err != nil {
			err = fmt.Errorf("actor %d: %w", i, err)
			return false
		}
		gs := v.Get("groups")
		if gs.Exists() && !gs.IsArray() {
			err = fmt.Errorf("actor %d: key %q must be an array", i, "groups")
			return false
		}
		var ids []int
		gs.ForEach(func(_, g gjson.Result) bool {
			if !isInt(g) {
				err = fmt.Errorf("actor %d: invalid group %s", i, g.Raw)
				return false
			}
			ids = append(ids, int(g.Int()))
			return true
		})
		if err != nil {
			return false
		}
		costs = append(costs, cost)
		groups = append(groups, ids)
		return true
	})
	if err != nil {
		return nil, err
	}
	return NewProblem(nbGroups, nbPicks, costs, groups)
}

func jsonInt(doc gjson.Result, key string) (int, error) {
	v := doc.Get(key)
	if !v.Exists() {
		return 0, fmt.Errorf("missing key %q", key)
	}
	if v.Type != gjson.Number {
		return 0, fmt.Errorf("key %q is not a number: %s", key, v.Raw)
	}
	if !isInt(v) {
		return 0, fmt.Errorf("key %q is not an integer: %s", key, v.Raw)
	}
	return int(v.Int()), nil
}

// isInt is true iff v is a number with no fractional part that fits in an int.
func isInt(v gjson.Result) bool {
	return v.Type == gjson.Number && v.Num == math.Trunc(v.Num) && v.Num > math.MinInt && v.Num < math.MaxInt
}
