package solver

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
)

// A ParseError describes a value that could not be read from the input.
type ParseError struct {
	What  string // Description of the expected value
	Token int    // 1-based index of the token in the stream
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not read %s (token %d): %v", e.What, e.Token, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// readInt reads a non-negative int from r.
// All spaces before the int value are ignored.
// Returns io.EOF if the stream ended before any digit was read,
// and an error if the value does not fit in an int.
func readInt(r *bufio.Reader) (res int, err error) {
	b, err := r.ReadByte()
	for err == nil && isSpace(b) {
		b, err = r.ReadByte()
	}
	if err != nil {
		return 0, err
	}
	for err == nil && !isSpace(b) {
		if !isDigit(b) {
			return 0, fmt.Errorf("%q is not a digit", b)
		}
		if res > (math.MaxInt-9)/10 {
			return 0, fmt.Errorf("value is too large")
		}
		res = 10*res + int(b-'0')
		b, err = r.ReadByte()
	}
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("could not read digit: %w", err)
	}
	return res, nil
}

// A tokenReader reads successive ints and keeps track of their position.
type tokenReader struct {
	r     *bufio.Reader
	token int
}

func (tr *tokenReader) next(format string, args ...interface{}) (int, error) {
	tr.token++
	val, err := readInt(tr.r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return 0, &ParseError{What: fmt.Sprintf(format, args...), Token: tr.token, Err: err}
	}
	return val, nil
}

// ParseText parses a problem in the whitespace-separated text format:
//
//	l m n
//	cost_1 s_1 g_1 ... g_s1
//	...
//	cost_m s_m g_1 ... g_sm
//
// where l is the number of groups, m the number of actors and n the number of actors to pick.
// Actors get ids 1..m in the order they appear.
func ParseText(f io.Reader) (*Problem, error) {
	tr := tokenReader{r: bufio.NewReader(f)}
	nbGroups, err := tr.next("number of groups")
	if err != nil {
		return nil, err
	}
	nbActors, err := tr.next("number of actors")
	if err != nil {
		return nil, err
	}
	nbPicks, err := tr.next("number of picks")
	if err != nil {
		return nil, err
	}
	// Slices grow as values are read, never from a count found in the input.
	var (
		costs  []int
		groups [][]int
	)
	for i := 0; i < nbActors; i++ {
		cost, err := tr.next("cost of actor %d", i+1)
		if err != nil {
			return nil, err
		}
		nb, err := tr.next("number of groups of actor %d", i+1)
		if err != nil {
			return nil, err
		}
		var gs []int
		for j := 0; j < nb; j++ {
			g, err := tr.next("group #%d of actor %d", j+1, i+1)
			if err != nil {
				return nil, err
			}
			gs = append(gs, g)
		}
		costs = append(costs, cost)
		groups = append(groups, gs)
	}
	return NewProblem(nbGroups, nbPicks, costs, groups)
}
