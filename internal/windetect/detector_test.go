package windetect

import (
	"slices"
	"testing"
	"time"

	"github.com/rocketscienceinc/fractal-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/coord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombinations(t *testing.T) {
	t.Run("Choose 3 of 9 yields 84 subsets", func(t *testing.T) {
		set := []int{0, 1, 2, 3, 4, 5, 6, 7, 8}

		assert.Len(t, Combinations(set, 3), 84)
	})

	t.Run("Choose 2 of 3", func(t *testing.T) {
		got := Combinations([]string{"a", "b", "c"}, 2)

		assert.ElementsMatch(t, [][]string{{"b", "c"}, {"a", "c"}, {"a", "b"}}, got)
	})

	t.Run("Base cases", func(t *testing.T) {
		// k == 0: only the empty set
		assert.Equal(t, [][]int{{}}, Combinations([]int{1, 2}, 0))

		// n < k: nothing
		assert.Empty(t, Combinations([]int{1, 2}, 3))

		// n == k: the whole set
		assert.Equal(t, [][]int{{1, 2}}, Combinations([]int{1, 2}, 2))
	})

	t.Run("Subsets do not alias the input", func(t *testing.T) {
		set := []int{1, 2}
		got := Combinations(set, 2)
		got[0][0] = 9

		assert.Equal(t, []int{1, 2}, set)
	})
}

func TestSubsets(t *testing.T) {
	t.Run("Stops when the consumer stops", func(t *testing.T) {
		// Given: 30 elements, C(30,15) is over 155 million subsets
		set := make([]int, 30)
		for i := range set {
			set[i] = i
		}

		// When: only the first three are taken
		var got [][]int
		for subset := range Subsets(set, 15) {
			got = append(got, subset)
			if len(got) == 3 {
				break
			}
		}

		// Then: they come in index order
		require.Len(t, got, 3)
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14}, got[0])
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 15}, got[1])
	})

	t.Run("Rejected prefixes are not extended", func(t *testing.T) {
		// only increasing runs of consecutive numbers are kept
		consecutive := func(prefix []int) bool {
			n := len(prefix)
			return n < 2 || prefix[n-1] == prefix[n-2]+1
		}

		var got [][]int
		for subset := range PrunedSubsets([]int{1, 2, 3, 4, 6}, 3, consecutive) {
			got = append(got, subset)
		}

		assert.Equal(t, [][]int{{1, 2, 3}, {2, 3, 4}}, got)
	})
}

func TestIsLine(t *testing.T) {
	tests := []struct {
		name   string
		points []coord.Coordinate
		want   bool
	}{
		{"Diagonal", []coord.Coordinate{coord.New(0, 0), coord.New(1, 1), coord.New(2, 2)}, true},
		{"Anti-diagonal", []coord.Coordinate{coord.New(2, 0), coord.New(1, 1), coord.New(0, 2)}, true},
		{"Row", []coord.Coordinate{coord.New(1, 0), coord.New(1, 2), coord.New(1, 1)}, true},
		{"Column", []coord.Coordinate{coord.New(0, 2), coord.New(2, 2), coord.New(1, 2)}, true},
		{"Non-constant step", []coord.Coordinate{coord.New(0, 0), coord.New(1, 1), coord.New(1, 2)}, false},
		{"Corner shape", []coord.Coordinate{coord.New(0, 0), coord.New(0, 1), coord.New(1, 0)}, false},
		{"3D space diagonal", []coord.Coordinate{coord.New(0, 0, 0), coord.New(1, 1, 1), coord.New(2, 2, 2)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsLine(tt.points)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("Arity mismatch propagates", func(t *testing.T) {
		_, err := IsLine([]coord.Coordinate{coord.New(0, 0), coord.New(1)})

		require.ErrorIs(t, err, apperror.ErrArityMismatch)
	})
}

func TestSubset_Captured(t *testing.T) {
	detector := Standard()

	t.Run("Finds a line among extra coordinates", func(t *testing.T) {
		// Given: a team owning a column plus unrelated cells
		owned := []coord.Coordinate{coord.New(0, 0), coord.New(2, 1), coord.New(1, 1), coord.New(0, 1)}

		// When: checking capture
		ok, err := detector.Captured(owned, 9)

		// Then: the column [0,1] [1,1] [2,1] is found
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Order insensitive", func(t *testing.T) {
		forward := []coord.Coordinate{coord.New(0, 0), coord.New(1, 1), coord.New(2, 2)}
		backward := []coord.Coordinate{coord.New(2, 2), coord.New(0, 0), coord.New(1, 1)}

		ok1, err1 := detector.Captured(forward, 9)
		ok2, err2 := detector.Captured(backward, 9)

		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.True(t, ok1)
		assert.True(t, ok2)
	})

	t.Run("Too few coordinates", func(t *testing.T) {
		ok, err := detector.Captured([]coord.Coordinate{coord.New(0, 0), coord.New(1, 1)}, 9)

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Arity mismatch", func(t *testing.T) {
		owned := []coord.Coordinate{coord.New(0, 0), coord.New(1, 1), coord.New(2)}

		_, err := detector.Captured(owned, 9)

		require.ErrorIs(t, err, apperror.ErrArityMismatch)
	})

	t.Run("Unsupported branching factor", func(t *testing.T) {
		// When: evaluating a cell with four children
		_, err := detector.Captured(nil, 4)

		// Then: ErrUnsupportedBranchingFactor is returned
		require.ErrorIs(t, err, apperror.ErrUnsupportedBranchingFactor)
	})
}

func TestSubset_Captured_LargeBoard(t *testing.T) {
	// 8x8 with lines of 8: C(32,8) is about 10.5 million subsets without pruning
	detector := NewSubset(8, 64)

	// checkerboard without its main diagonal, plus the odd cells of row 0 and column 0
	var owned []coord.Coordinate
	for x := range 8 {
		for y := range 8 {
			even := (x+y)%2 == 0 && x != y
			edge := (x+y)%2 == 1 && (x == 0 || y == 0)
			if even || edge {
				owned = append(owned, coord.New(uint8(x), uint8(y)))
			}
		}
	}
	require.Len(t, owned, 32)

	t.Run("No line among 32 owned cells", func(t *testing.T) {
		start := time.Now()

		ok, err := detector.Captured(owned, 64)

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Less(t, time.Since(start), 2*time.Second)
	})

	t.Run("Completing the diagonal captures", func(t *testing.T) {
		withDiagonal := slices.Clone(owned)
		for i := range 8 {
			withDiagonal = append(withDiagonal, coord.New(uint8(i), uint8(i)))
		}

		ok, err := detector.Captured(withDiagonal, 64)

		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestTable(t *testing.T) {
	t.Run("Every derived line has distinct coordinates", func(t *testing.T) {
		table, err := NewTable(3)
		require.NoError(t, err)

		require.Len(t, table.Lines(), 8)
		for _, line := range table.Lines() {
			seen := map[string]bool{}
			for _, c := range line {
				assert.False(t, seen[c.Key()], "duplicate coordinate %s", c)
				seen[c.Key()] = true
			}

			ok, err := IsLine(line)
			require.NoError(t, err)
			assert.True(t, ok, "table line %s is not colinear", coord.PathString(line))
		}
	})

	t.Run("Agrees with the subset detector on every 3x3 position", func(t *testing.T) {
		table, err := NewTable(3)
		require.NoError(t, err)

		subset := Standard()
		grid := coord.Grid(3, 2)

		for mask := range 1 << len(grid) {
			var owned []coord.Coordinate
			for i, c := range grid {
				if mask&(1<<i) != 0 {
					owned = append(owned, c)
				}
			}

			want, err := subset.Captured(owned, 9)
			require.NoError(t, err)

			got, err := table.Captured(owned, 9)
			require.NoError(t, err)

			require.Equal(t, want, got, "mask %09b", mask)
		}
	})

	t.Run("Rejects bad sides", func(t *testing.T) {
		_, err := NewTable(0)
		require.ErrorIs(t, err, apperror.ErrInvalidShape)
	})

	t.Run("Unsupported branching factor", func(t *testing.T) {
		table, err := NewTable(3)
		require.NoError(t, err)

		_, err = table.Captured(nil, 16)
		require.ErrorIs(t, err, apperror.ErrUnsupportedBranchingFactor)
	})
}
