// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"fmt"
	"io"
	"os"

	"github.com/gookit/color"
	"golang.org/x/term"

	"github.com/samdwyer/mazerunner/internal/entity"
	"github.com/samdwyer/mazerunner/internal/fog"
	"github.com/samdwyer/mazerunner/internal/world"
)

// DumpOptions controls Dump.
type DumpOptions struct {
	RevealAll bool // ignore the fog mask
	Color     bool // emit ANSI colours
}

var (
	colorWall   = color.Style{color.FgDarkGray}
	colorFloor  = color.Style{color.FgGray}
	colorMarker = color.Style{color.FgGreen, color.OpBold}
	colorStairs = color.Style{color.FgYellow}
	colorDoor   = color.Style{color.FgRed}
	colorKey    = color.Style{color.FgLightYellow, color.OpBold}
	colorTrap   = color.Style{color.FgLightRed, color.OpBold}
	colorPlayer = color.Style{color.FgBlue, color.OpBold}
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Dump writes every level of w as ASCII with a legend. Cells not yet
// revealed in mask print as blanks unless opts.RevealAll is set; a nil mask
// counts as fully revealed. The player is drawn as '@' when p is non-nil.
func Dump(out io.Writer, w *world.World, mask *fog.Mask, p *entity.Player, opts DumpOptions) error {
	if _, err := fmt.Fprintln(out, "Legend: # wall  . floor  S start  E exit  > down  < up  D door  K key  T trap  @ player"); err != nil {
		return err
	}

	for z, l := range w.Levels {
		if _, err := fmt.Fprintf(out, "\nLevel %d/%d (start %d,%d)\n", z+1, w.Depth(), w.Starts[z].Row, w.Starts[z].Col); err != nil {
			return err
		}
		for r := 0; r < l.Rows; r++ {
			line := ""
			for c := 0; c < l.Cols; c++ {
				pos := world.Pos{Row: r, Col: c}
				if !opts.RevealAll && mask != nil && !mask.Revealed(z, pos) {
					line += " "
					continue
				}
				ch, style := cellSymbol(l, pos)
				if p != nil && p.Level == z && p.Row == r && p.Col == c {
					ch, style = '@', colorPlayer
				}
				if opts.Color {
					line += style.Sprint(string(ch))
				} else {
					line += string(ch)
				}
			}
			if _, err := fmt.Fprintln(out, line); err != nil {
				return err
			}
		}
	}
	return nil
}

// cellSymbol returns the character for a cell, items over tiles.
func cellSymbol(l *world.Level, p world.Pos) (rune, color.Style) {
	switch l.Item(p) {
	case world.ItemKey:
		return 'K', colorKey
	case world.ItemTrap:
		return 'T', colorTrap
	}

	tile := l.Tile(p)
	switch tile {
	case world.TileWall:
		return tile.Rune(), colorWall
	case world.TileStart, world.TileExit:
		return tile.Rune(), colorMarker
	case world.TileStairsDown, world.TileStairsUp:
		return tile.Rune(), colorStairs
	case world.TileDoor:
		return tile.Rune(), colorDoor
	default:
		return tile.Rune(), colorFloor
	}
}
