package gamedata

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// GlyphDef defines how a tile, item or the player is drawn.
type GlyphDef struct {
	ID    string `json:"id"`    // Matches world.Tile.ID / world.Item.ID
	Glyph string `json:"glyph"` // Single character for rendering
	Color string `json:"color"` // Hex color code (e.g., "#C8C8C8")
}

// GlyphRune returns the glyph as a rune for rendering.
func (g *GlyphDef) GlyphRune() rune {
	r, size := utf8.DecodeRuneInString(g.Glyph)
	if size == 0 || r == utf8.RuneError {
		return '?'
	}
	return r
}

// TCellColor returns the color as a tcell.Color.
func (g *GlyphDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(g.Color)
	if err != nil {
		return tcell.ColorWhite // fallback
	}
	return color
}

// Palette maps tile and item identifiers to glyphs.
type Palette struct {
	Tiles  []GlyphDef `json:"tiles"`
	Items  []GlyphDef `json:"items"`
	Player GlyphDef   `json:"player"`

	byID map[string]*GlyphDef
}

// LoadPalette loads the glyph palette from the embedded palette.json file.
func LoadPalette() (*Palette, error) {
	p, err := Load[Palette]("palette.json")
	if err != nil {
		return nil, err
	}
	p.index()
	return &p, nil
}

// MustLoadPalette loads the palette, panicking on error.
func MustLoadPalette() *Palette {
	p, err := LoadPalette()
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Palette) index() {
	p.byID = make(map[string]*GlyphDef, len(p.Tiles)+len(p.Items))
	for i := range p.Tiles {
		p.byID[p.Tiles[i].ID] = &p.Tiles[i]
	}
	for i := range p.Items {
		p.byID[p.Items[i].ID] = &p.Items[i]
	}
}

// GetByID returns the glyph definition with the given ID, or nil if not found.
func (p *Palette) GetByID(id string) *GlyphDef {
	return p.byID[id]
}
