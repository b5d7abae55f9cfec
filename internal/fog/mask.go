// Package fog tracks which cells the player has seen on each level.
package fog

import "github.com/samdwyer/mazerunner/internal/world"

// Mask is a per-level revealed grid. Cells only ever go from hidden to
// revealed; Reset is the single way back.
type Mask struct {
	rows, cols int
	levels     [][][]bool
}

// NewMask creates a fully hidden mask.
func NewMask(levels, rows, cols int) *Mask {
	m := &Mask{rows: rows, cols: cols, levels: make([][][]bool, levels)}
	for z := range m.levels {
		m.levels[z] = make([][]bool, rows)
		for r := range m.levels[z] {
			m.levels[z][r] = make([]bool, cols)
		}
	}
	return m
}

// Reveal marks every cell within Chebyshev distance radius of center,
// clipped to the grid.
func (m *Mask) Reveal(level int, center world.Pos, radius int) {
	grid := m.levels[level]
	for r := max(center.Row-radius, 0); r <= min(center.Row+radius, m.rows-1); r++ {
		for c := max(center.Col-radius, 0); c <= min(center.Col+radius, m.cols-1); c++ {
			grid[r][c] = true
		}
	}
}

// Revealed reports whether p has been seen on level.
func (m *Mask) Revealed(level int, p world.Pos) bool {
	if p.Row < 0 || p.Row >= m.rows || p.Col < 0 || p.Col >= m.cols {
		return false
	}
	return m.levels[level][p.Row][p.Col]
}

// Level returns the revealed grid of one level. Callers must not modify it.
func (m *Mask) Level(level int) [][]bool {
	return m.levels[level]
}

// Count returns the number of revealed cells on level.
func (m *Mask) Count(level int) int {
	n := 0
	for _, row := range m.levels[level] {
		for _, seen := range row {
			if seen {
				n++
			}
		}
	}
	return n
}

// Reset hides every cell on every level.
func (m *Mask) Reset() {
	for z := range m.levels {
		for r := range m.levels[z] {
			clear(m.levels[z][r])
		}
	}
}

// InVision reports whether p is within Chebyshev distance radius of center.
func InVision(center, p world.Pos, radius int) bool {
	return abs(center.Row-p.Row) <= radius && abs(center.Col-p.Col) <= radius
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
