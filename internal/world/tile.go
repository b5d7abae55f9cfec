// Package world provides maze generation and the multi-level map.
package world

// Tile represents a single map tile.
type Tile rune

const (
	// TileWall represents an impassable wall tile.
	TileWall Tile = '#'
	// TileFloor represents a carved passage.
	TileFloor Tile = '.'
	// TileStart marks the entry point of the first level.
	TileStart Tile = 'S'
	// TileExit marks the goal on the last level.
	TileExit Tile = 'E'
	// TileStairsDown leads to the next level at the same coordinate.
	TileStairsDown Tile = '>'
	// TileStairsUp leads back to the previous level.
	TileStairsUp Tile = '<'
	// TileDoor is a locked door that needs a key.
	TileDoor Tile = 'D'
)

// IsCarved returns true for every tile that is not a wall.
// Locked doors count as carved: they sit on a passage and open with the key.
func (t Tile) IsCarved() bool {
	return t != TileWall
}

// IsPassable returns true if the tile can be walked on without a key.
func (t Tile) IsPassable() bool {
	return t != TileWall && t != TileDoor
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}

// ID returns the palette identifier for the tile.
func (t Tile) ID() string {
	switch t {
	case TileWall:
		return "wall"
	case TileFloor:
		return "floor"
	case TileStart:
		return "start"
	case TileExit:
		return "exit"
	case TileStairsDown:
		return "stairs_down"
	case TileStairsUp:
		return "stairs_up"
	case TileDoor:
		return "door"
	default:
		return "unknown"
	}
}

// Item is what lies on top of a tile.
type Item rune

const (
	ItemNone Item = ' '
	ItemTrap Item = 'T'
	ItemKey  Item = 'K'
)

// ID returns the palette identifier for the item.
func (i Item) ID() string {
	switch i {
	case ItemTrap:
		return "trap"
	case ItemKey:
		return "key"
	default:
		return "none"
	}
}

// Pos is a (row, column) coordinate within one level.
type Pos struct {
	Row, Col int
}

// Add returns p shifted by d.
func (p Pos) Add(d Pos) Pos {
	return Pos{Row: p.Row + d.Row, Col: p.Col + d.Col}
}
