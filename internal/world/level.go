package world

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// Level is one floor of the maze: a tile grid and a same-shaped item layer.
type Level struct {
	Index int
	Rows  int
	Cols  int
	Tiles [][]Tile
	Items [][]Item
}

// NewLevel creates a level filled with walls and no items.
func NewLevel(index, rows, cols int) *Level {
	tiles := make([][]Tile, rows)
	items := make([][]Item, rows)
	for r := range tiles {
		tiles[r] = make([]Tile, cols)
		items[r] = make([]Item, cols)
		for c := range tiles[r] {
			tiles[r][c] = TileWall
			items[r][c] = ItemNone
		}
	}

	return &Level{
		Index: index,
		Rows:  rows,
		Cols:  cols,
		Tiles: tiles,
		Items: items,
	}
}

// LevelFromStrings builds a level from an ASCII layout. Tile runes map to
// themselves; 'K' and 'T' place a key or trap on a floor tile.
func LevelFromStrings(index int, layout []string) *Level {
	cols := 0
	for _, line := range layout {
		cols = max(cols, len(line))
	}
	l := NewLevel(index, len(layout), cols)
	for r, line := range layout {
		for c, ch := range line {
			switch Item(ch) {
			case ItemKey, ItemTrap:
				l.Tiles[r][c] = TileFloor
				l.Items[r][c] = Item(ch)
			default:
				l.Tiles[r][c] = Tile(ch)
			}
		}
	}
	return l
}

// InBounds returns true if p lies inside the grid.
func (l *Level) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < l.Rows && p.Col >= 0 && p.Col < l.Cols
}

// interior returns true if p lies strictly inside the outer wall ring.
func (l *Level) interior(p Pos) bool {
	return p.Row > 0 && p.Row < l.Rows-1 && p.Col > 0 && p.Col < l.Cols-1
}

// mustContain panics on out-of-range access. The outer ring is never carved,
// so reaching this means generation is broken.
func (l *Level) mustContain(p Pos) {
	if !l.InBounds(p) {
		panic(fmt.Sprintf("world: level %d: cell (%d,%d) outside %dx%d grid",
			l.Index, p.Row, p.Col, l.Rows, l.Cols))
	}
}

// Tile returns the tile at p.
func (l *Level) Tile(p Pos) Tile {
	l.mustContain(p)
	return l.Tiles[p.Row][p.Col]
}

// SetTile overwrites the tile at p.
func (l *Level) SetTile(p Pos, t Tile) {
	l.mustContain(p)
	l.Tiles[p.Row][p.Col] = t
}

// Item returns the item at p.
func (l *Level) Item(p Pos) Item {
	l.mustContain(p)
	return l.Items[p.Row][p.Col]
}

// SetItem places (or with ItemNone, clears) the item at p.
func (l *Level) SetItem(p Pos, it Item) {
	l.mustContain(p)
	l.Items[p.Row][p.Col] = it
}

// CarvedCount returns the number of non-wall tiles.
func (l *Level) CarvedCount() int {
	n := 0
	for r := range l.Tiles {
		for _, t := range l.Tiles[r] {
			if t.IsCarved() {
				n++
			}
		}
	}
	return n
}

// Reachable collects all carved cells connected to start using BFS.
func (l *Level) Reachable(start Pos) mapset.Set[Pos] {
	visited := mapset.New[Pos]()
	if !l.InBounds(start) || !l.Tile(start).IsCarved() {
		return visited
	}

	queue := []Pos{start}
	visited.Put(start)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, d := range cardinals {
			n := current.Add(d)
			if !l.InBounds(n) || visited.Has(n) || !l.Tile(n).IsCarved() {
				continue
			}
			visited.Put(n)
			queue = append(queue, n)
		}
	}

	return visited
}

// RingIntact returns true if every cell on the outer border is a wall.
func (l *Level) RingIntact() bool {
	for r := 0; r < l.Rows; r++ {
		if l.Tiles[r][0] != TileWall || l.Tiles[r][l.Cols-1] != TileWall {
			return false
		}
	}
	for c := 0; c < l.Cols; c++ {
		if l.Tiles[0][c] != TileWall || l.Tiles[l.Rows-1][c] != TileWall {
			return false
		}
	}
	return true
}

// Find returns the first cell holding tile t, scanning row by row.
func (l *Level) Find(t Tile) (Pos, bool) {
	for r := range l.Tiles {
		for c, tile := range l.Tiles[r] {
			if tile == t {
				return Pos{Row: r, Col: c}, true
			}
		}
	}
	return Pos{}, false
}

// String renders the level as ASCII, items drawn over their tiles.
func (l *Level) String() string {
	buf := make([]rune, 0, l.Rows*(l.Cols+1))
	for r := range l.Tiles {
		for c, t := range l.Tiles[r] {
			if it := l.Items[r][c]; it != ItemNone {
				buf = append(buf, rune(it))
				continue
			}
			buf = append(buf, t.Rune())
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
