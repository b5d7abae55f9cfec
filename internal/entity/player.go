// Package entity provides the player character.
package entity

// Player is the explorer: position on a level, the key flag and the score.
type Player struct {
	Row, Col int  // Current position on the level
	Level    int  // Zero-based level index
	HasKey   bool // Holding the door key
	Score    int  // Never negative
	Symbol   rune // Display symbol
}

// NewPlayer creates a player on level 0 at the given position.
func NewPlayer(row, col, score int) *Player {
	return &Player{
		Row:    row,
		Col:    col,
		Score:  score,
		Symbol: '@',
	}
}

// MoveTo places the player at the given position on the current level.
func (p *Player) MoveTo(row, col int) {
	p.Row = row
	p.Col = col
}

// Position returns the current row, col coordinates.
func (p *Player) Position() (int, int) {
	return p.Row, p.Col
}

// AddScore applies delta and clamps the result at zero.
func (p *Player) AddScore(delta int) {
	p.Score += delta
	if p.Score < 0 {
		p.Score = 0
	}
}
