package ui

import (
	"fmt"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/mazerunner/internal/fog"
	"github.com/samdwyer/mazerunner/internal/gamedata"
	"github.com/samdwyer/mazerunner/internal/world"
)

const (
	cellWidth  = 2   // terminal columns per tile, roughly square
	fadeFactor = 0.3 // brightness of revealed tiles outside current vision
	hudGap     = 1   // blank rows between maze and HUD
	wonBanner  = "CONGRATULATIONS!"
)

// Frame is everything drawn in one frame.
type Frame struct {
	Level        *world.Level
	Revealed     [][]bool
	Player       world.Pos
	VisionRadius int
	HasKey       bool
	Score        int
	Won          bool
	Status       string
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen  *Screen
	palette *gamedata.Palette
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, palette *gamedata.Palette) *Renderer {
	return &Renderer{screen: screen, palette: palette}
}

// Render draws the visible maze and the HUD.
func (r *Renderer) Render(f Frame) {
	r.screen.Clear()

	if f.Won {
		r.renderBanner(f.Level)
	} else {
		r.renderLevel(f)
	}
	r.renderHUD(f)

	r.screen.Show()
}

// renderLevel draws revealed tiles as coloured blocks. Tiles inside the
// current vision radius are bright and show their glyphs and items; tiles
// seen earlier are faded.
func (r *Renderer) renderLevel(f Frame) {
	l := f.Level
	for row := 0; row < l.Rows; row++ {
		for col := 0; col < l.Cols; col++ {
			if !f.Revealed[row][col] {
				continue
			}

			p := world.Pos{Row: row, Col: col}
			tile := l.Tile(p)
			bg := r.color(tile.ID())
			inVision := fog.InVision(f.Player, p, f.VisionRadius)
			if !inVision {
				bg = fade(bg, fadeFactor)
			}

			glyph, fg := ' ', tcell.ColorWhite
			if inVision {
				switch tile {
				case world.TileStairsDown, world.TileStairsUp, world.TileDoor:
					glyph = r.glyph(tile.ID())
				}
				if it := l.Item(p); it != world.ItemNone {
					glyph, fg = r.glyph(it.ID()), r.color(it.ID())
				}
			}

			style := tcell.StyleDefault.Background(bg).Foreground(fg)
			r.screen.SetContent(col*cellWidth, row, glyph, style)
			r.screen.SetContent(col*cellWidth+1, row, ' ', style)
		}
	}

	player := r.palette.Player
	style := tcell.StyleDefault.Background(player.TCellColor()).Foreground(tcell.ColorWhite).Bold(true)
	r.screen.SetContent(f.Player.Col*cellWidth, f.Player.Row, player.GlyphRune(), style)
	r.screen.SetContent(f.Player.Col*cellWidth+1, f.Player.Row, ' ', style)
}

func (r *Renderer) renderBanner(l *world.Level) {
	width := l.Cols * cellWidth
	x := (width - utf8.RuneCountInString(wonBanner)) / 2
	style := tcell.StyleDefault.Foreground(r.color("key")).Bold(true)
	r.screen.DrawText(max(x, 0), l.Rows/2, wonBanner, style)
}

// renderHUD draws the status line, the score and the key indicator.
func (r *Renderer) renderHUD(f Frame) {
	y := f.Level.Rows + hudGap
	width := f.Level.Cols * cellWidth

	r.screen.DrawText(0, y, f.Status, tcell.StyleDefault.Foreground(tcell.ColorWhite))

	score := fmt.Sprintf("Score: %d", f.Score)
	r.screen.DrawText(0, y+1, score, tcell.StyleDefault.Foreground(tcell.ColorYellow))

	key, keyStyle := "Key: NO", tcell.StyleDefault.Foreground(tcell.ColorGray)
	if f.HasKey {
		key, keyStyle = "Key: YES", tcell.StyleDefault.Foreground(r.color("key"))
	}
	r.screen.DrawText(max(width-len(key), len(score)+1), y+1, key, keyStyle)
}

func (r *Renderer) color(id string) tcell.Color {
	if def := r.palette.GetByID(id); def != nil {
		return def.TCellColor()
	}
	return tcell.ColorDefault
}

func (r *Renderer) glyph(id string) rune {
	if def := r.palette.GetByID(id); def != nil {
		return def.GlyphRune()
	}
	return '?'
}

// fade scales an RGB colour toward black.
func fade(c tcell.Color, factor float64) tcell.Color {
	red, green, blue := c.RGB()
	if red < 0 {
		return c
	}
	return tcell.NewRGBColor(
		int32(float64(red)*factor),
		int32(float64(green)*factor),
		int32(float64(blue)*factor),
	)
}
