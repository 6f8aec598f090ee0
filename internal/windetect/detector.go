// Package windetect decides whether a set of owned coordinates contains a winning line.
package windetect

import (
	"fmt"
	"iter"
	"slices"

	"github.com/rocketscienceinc/fractal-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/coord"
)

const (
	StandardLineLength = 3
	StandardBranching  = 9
)

// Detector - reports whether owned coordinates among childCount children complete a line.
type Detector interface {
	Captured(owned []coord.Coordinate, childCount int) (bool, error)
}

// Subset - the general detector: any size-L subset of owned coordinates that forms
// a constant-step progression is a winning line, for any dimensionality.
type Subset struct {
	LineLength int
	Branching  int
}

func NewSubset(lineLength, branching int) *Subset {
	return &Subset{
		LineLength: lineLength,
		Branching:  branching,
	}
}

// Standard - the detector of the 3x3 board.
func Standard() *Subset {
	return NewSubset(StandardLineLength, StandardBranching)
}

func (that *Subset) Captured(owned []coord.Coordinate, childCount int) (bool, error) {
	if childCount != that.Branching {
		return false, fmt.Errorf("%w: %d children, want %d", apperror.ErrUnsupportedBranchingFactor, childCount, that.Branching)
	}

	if len(owned) == 0 || len(owned) < that.LineLength {
		return false, nil
	}

	for _, c := range owned[1:] {
		if c.Arity() != owned[0].Arity() {
			return false, fmt.Errorf("%w: %d and %d", apperror.ErrArityMismatch, owned[0].Arity(), c.Arity())
		}
	}

	sorted := slices.Clone(owned)
	slices.SortFunc(sorted, coord.Compare)

	for candidate := range PrunedSubsets(sorted, that.LineLength, constantStep) {
		ok, err := IsLine(candidate)
		if err != nil {
			return false, err
		}

		if ok {
			return true, nil
		}
	}

	return false, nil
}

// constantStep - a sorted prefix can still grow into a line only while its newest
// step repeats the first one.
func constantStep(prefix []coord.Coordinate) bool {
	n := len(prefix)
	if n < 3 {
		return true
	}

	first, err := coord.Sub(prefix[1], prefix[0])
	if err != nil {
		return false
	}

	last, err := coord.Sub(prefix[n-1], prefix[n-2])
	if err != nil {
		return false
	}

	return last.Equal(first)
}

// Combinations - every subset of set with k elements.
func Combinations[T any](set []T, k int) [][]T {
	var result [][]T
	for subset := range Subsets(set, k) {
		result = append(result, subset)
	}

	return result
}

// Subsets - yields every k-element subset of set, in index order, one at a time.
// Each yielded slice is a fresh copy.
func Subsets[T any](set []T, k int) iter.Seq[[]T] {
	return PrunedSubsets(set, k, nil)
}

// PrunedSubsets - like Subsets, but a partial subset rejected by keep is not extended.
// keep sees the chosen elements in index order and must not retain the slice.
func PrunedSubsets[T any](set []T, k int, keep func(prefix []T) bool) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		if k < 0 || k > len(set) {
			return
		}

		chosen := make([]T, 0, k)

		var walk func(from int) bool
		walk = func(from int) bool {
			if len(chosen) == k {
				return yield(slices.Clone(chosen))
			}

			// leave enough elements to fill the remaining slots
			last := len(set) - (k - len(chosen))
			for i := from; i <= last; i++ {
				chosen = append(chosen, set[i])
				if keep == nil || keep(chosen) {
					if !walk(i + 1) {
						return false
					}
				}
				chosen = chosen[:len(chosen)-1]
			}

			return true
		}

		walk(0)
	}
}

// IsLine - points form a line when, sorted lexicographically, every step between
// neighbours is the same vector.
func IsLine(points []coord.Coordinate) (bool, error) {
	if len(points) < 2 {
		return len(points) == 1, nil
	}

	sorted := slices.Clone(points)
	slices.SortFunc(sorted, coord.Compare)

	step, err := coord.Sub(sorted[1], sorted[0])
	if err != nil {
		return false, fmt.Errorf("failed to compute step: %w", err)
	}

	for i := 2; i < len(sorted); i++ {
		next, err := coord.Sub(sorted[i], sorted[i-1])
		if err != nil {
			return false, fmt.Errorf("failed to compute step: %w", err)
		}

		if !next.Equal(step) {
			return false, nil
		}
	}

	return true, nil
}
