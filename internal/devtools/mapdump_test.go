package devtools

import (
	"bytes"
	"strings"
	"testing"

	"github.com/samdwyer/mazerunner/internal/entity"
	"github.com/samdwyer/mazerunner/internal/fog"
	"github.com/samdwyer/mazerunner/internal/world"
)

func testWorld() *world.World {
	l := world.LevelFromStrings(0, []string{
		"#######",
		"#S.K.E#",
		"#######",
	})
	return &world.World{
		Levels: []*world.Level{l},
		Starts: []world.Pos{{Row: 1, Col: 1}},
		Exit:   world.Pos{Row: 1, Col: 5},
	}
}

func TestDumpRevealAll(t *testing.T) {
	var buf bytes.Buffer
	p := entity.NewPlayer(1, 2, 1000)

	if err := Dump(&buf, testWorld(), nil, p, DumpOptions{RevealAll: true}); err != nil {
		t.Fatalf("Dump() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Level 1/1 (start 1,1)") {
		t.Errorf("missing level header in:\n%s", out)
	}
	if !strings.Contains(out, "#S@K.E#") {
		t.Errorf("missing maze row in:\n%s", out)
	}
}

func TestDumpHonoursFog(t *testing.T) {
	var buf bytes.Buffer
	mask := fog.NewMask(1, 3, 7)
	mask.Reveal(0, world.Pos{Row: 1, Col: 1}, 1)

	if err := Dump(&buf, testWorld(), mask, nil, DumpOptions{}); err != nil {
		t.Fatalf("Dump() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "#S.    ") {
		t.Errorf("fogged row not blanked in:\n%s", out)
	}
	if strings.Contains(out, "K.E") {
		t.Errorf("hidden cells printed in:\n%s", out)
	}
}
