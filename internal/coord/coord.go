package coord

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/fractal-tictactoe/internal/apperror"
)

// Coordinate - addresses a child inside one nesting level of the board.
// Components are not bounds-checked; a coordinate is valid only if it matches a child.
type Coordinate []uint8

// Vector - signed component-wise difference of two coordinates.
type Vector []int

func New(idx ...uint8) Coordinate {
	return Coordinate(slices.Clone(idx))
}

func (that Coordinate) Arity() int {
	return len(that)
}

// Key - returns a string that identifies the coordinate as a map key.
func (that Coordinate) Key() string {
	return string(that)
}

func (that Coordinate) Equal(other Coordinate) bool {
	return slices.Equal(that, other)
}

func (that Coordinate) String() string {
	parts := make([]string, len(that))
	for i, v := range that {
		parts[i] = strconv.Itoa(int(v))
	}

	return strings.Join(parts, ",")
}

// MarshalText - coordinates are written as "x,y" rather than as raw bytes.
func (that Coordinate) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Coordinate) UnmarshalText(text []byte) error {
	c, err := Parse(string(text))
	if err != nil {
		return err
	}

	*that = c

	return nil
}

// Sub - returns that - other. Both coordinates must have the same arity.
func Sub(that, other Coordinate) (Vector, error) {
	if len(that) != len(other) {
		return nil, fmt.Errorf("%w: %d and %d", apperror.ErrArityMismatch, len(that), len(other))
	}

	diff := make(Vector, len(that))
	for i := range that {
		diff[i] = int(that[i]) - int(other[i])
	}

	return diff, nil
}

// Compare - lexicographic order over the component sequence.
func Compare(a, b Coordinate) int {
	return slices.Compare(a, b)
}

func (that Vector) Equal(other Vector) bool {
	return slices.Equal(that, other)
}

// Parse - reads a coordinate written as comma separated components, e.g. "0,2".
func Parse(s string) (Coordinate, error) {
	fields := strings.Split(strings.TrimSpace(s), ",")

	c := make(Coordinate, 0, len(fields))
	for _, field := range fields {
		v, err := strconv.ParseUint(strings.TrimSpace(field), 10, 8)
		if err != nil {
			return nil, fmt.Errorf("bad coordinate %q: %w", s, err)
		}

		c = append(c, uint8(v))
	}

	return c, nil
}

// ParsePath - reads a path of coordinates separated by whitespace or "/", e.g. "0,0/2,1".
func ParsePath(s string) ([]Coordinate, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || r == ' ' || r == '\t'
	})

	path := make([]Coordinate, 0, len(fields))
	for _, field := range fields {
		c, err := Parse(field)
		if err != nil {
			return nil, err
		}

		path = append(path, c)
	}

	return path, nil
}

// ClonePath - deep copy of a path.
func ClonePath(path []Coordinate) []Coordinate {
	cloned := make([]Coordinate, len(path))
	for i, c := range path {
		cloned[i] = slices.Clone(c)
	}

	return cloned
}

func PathString(path []Coordinate) string {
	parts := make([]string, len(path))
	for i, c := range path {
		parts[i] = c.String()
	}

	return strings.Join(parts, "/")
}

// Grid - every coordinate of a side^dims grid, in lexicographic order.
func Grid(side, dims int) []Coordinate {
	if side <= 0 || dims <= 0 {
		return nil
	}

	grid := []Coordinate{{}}
	for range dims {
		next := make([]Coordinate, 0, len(grid)*side)
		for _, prefix := range grid {
			for v := range side {
				c := make(Coordinate, len(prefix), len(prefix)+1)
				copy(c, prefix)
				next = append(next, append(c, uint8(v)))
			}
		}
		grid = next
	}

	return grid
}
