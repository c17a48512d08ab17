// Command planview renders generated floor plans in the terminal. Rooms
// are colored blocks, openings are marked on their cell, the stair cell is
// highlighted. Keys: [ and ] switch floors, n draws a fresh seed, t cycles
// the building type, r regenerates, q quits.
package main

import (
	"flag"
	"fmt"
	"log"
	"sort"

	"github.com/gdamore/tcell/v2"

	"github.com/nirholas/hyperscape-sub002/internal/builder"
	"github.com/nirholas/hyperscape-sub002/internal/layout"
	"github.com/nirholas/hyperscape-sub002/internal/recipe"
)

var roomColors = []tcell.Color{
	tcell.ColorTeal, tcell.ColorOlive, tcell.ColorGreen, tcell.ColorPurple,
	tcell.ColorNavy, tcell.ColorMaroon, tcell.ColorGray, tcell.ColorDarkGreen,
}

type viewer struct {
	screen   tcell.Screen
	registry *recipe.Registry
	types    []string
	typeIdx  int
	seedNum  int
	floor    int
	result   *builder.Result
}

func newViewer(registry *recipe.Registry, typeKey string) (*viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	types := registry.Types()
	sort.Strings(types)
	v := &viewer{screen: screen, registry: registry, types: types}
	for i, key := range types {
		if key == typeKey {
			v.typeIdx = i
		}
	}
	return v, v.regenerate()
}

func (v *viewer) seed() string {
	return fmt.Sprintf("%s-%d", v.types[v.typeIdx], v.seedNum)
}

func (v *viewer) regenerate() error {
	res, err := builder.Generate(v.registry, builder.Request{
		TypeKey:     v.types[v.typeIdx],
		Seed:        v.seed(),
		IncludeRoof: true,
	})
	if err != nil {
		return err
	}
	v.result = res
	if v.floor >= res.Layout.Floors {
		v.floor = res.Layout.Floors - 1
	}
	return nil
}

func (v *viewer) draw() {
	v.screen.Clear()
	plan := v.result.Layout.Plans[v.floor]
	const ox, oy = 2, 2

	for y := 0; y < plan.Grid.Height; y++ {
		for x := 0; x < plan.Grid.Width; x++ {
			c := layout.Cell{X: x, Y: y}
			if !plan.Grid.At(c) {
				continue
			}
			style := tcell.StyleDefault.Background(roomColors[plan.RoomOf[c]%len(roomColors)])
			// two columns per cell to keep the plan roughly square
			v.screen.SetContent(ox+2*x, oy+y, ' ', nil, style)
			v.screen.SetContent(ox+2*x+1, oy+y, ' ', nil, style)
		}
	}

	for edge, kind := range plan.External {
		glyph := openingGlyph(kind)
		col := ox + 2*edge.Cell.X
		if edge.Side == recipe.East {
			col++
		}
		style := tcell.StyleDefault.
			Background(roomColors[plan.RoomOf[edge.Cell]%len(roomColors)]).
			Foreground(tcell.ColorWhite)
		v.screen.SetContent(col, oy+edge.Cell.Y, glyph, nil, style)
	}
	for pair, kind := range plan.Internal {
		style := tcell.StyleDefault.
			Background(roomColors[plan.RoomOf[pair.A]%len(roomColors)]).
			Foreground(tcell.ColorYellow)
		v.screen.SetContent(ox+2*pair.A.X+1, oy+pair.A.Y, openingGlyph(kind), nil, style)
	}

	if st := v.result.Layout.Stair; st != nil {
		cell := st.Anchor
		if v.floor > 0 {
			cell = st.Landing
		}
		style := tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack)
		v.screen.SetContent(ox+2*cell.X, oy+cell.Y, '#', nil, style)
		v.screen.SetContent(ox+2*cell.X+1, oy+cell.Y, '#', nil, style)
	}

	status := fmt.Sprintf("%s  floor %d/%d  rooms=%d walls=%d  [ ] floor  n seed  t type  q quit",
		v.seed(), v.floor+1, v.result.Layout.Floors,
		len(plan.Rooms), v.result.Stats.WallSegments)
	for i, r := range status {
		v.screen.SetContent(ox+i, oy+plan.Grid.Height+2, r, nil, tcell.StyleDefault)
	}
	v.screen.Show()
}

func openingGlyph(kind layout.OpeningKind) rune {
	switch kind {
	case layout.Door:
		return 'D'
	case layout.Arch:
		return 'A'
	default:
		return 'o'
	}
}

func (v *viewer) run() error {
	v.draw()
	for {
		switch ev := v.screen.PollEvent().(type) {
		case *tcell.EventResize:
			v.screen.Sync()
			v.draw()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				return nil
			}
			if ev.Key() != tcell.KeyRune {
				continue
			}
			switch ev.Rune() {
			case 'q':
				return nil
			case '[':
				if v.floor > 0 {
					v.floor--
				}
			case ']':
				if v.floor < v.result.Layout.Floors-1 {
					v.floor++
				}
			case 'n':
				v.seedNum++
				if err := v.regenerate(); err != nil {
					return err
				}
			case 't':
				v.typeIdx = (v.typeIdx + 1) % len(v.types)
				if err := v.regenerate(); err != nil {
					return err
				}
			case 'r':
				if err := v.regenerate(); err != nil {
					return err
				}
			}
			v.draw()
		}
	}
}

func main() {
	var (
		recipeDir = flag.String("recipes", "", "directory of recipe JSON overrides")
		typeKey   = flag.String("type", "house", "building type to start with")
	)
	flag.Parse()

	registry := recipe.Builtin()
	if *recipeDir != "" {
		var err error
		registry, err = recipe.LoadDir(*recipeDir)
		if err != nil {
			log.Fatalf("failed to load recipes: %v", err)
		}
	}

	v, err := newViewer(registry, *typeKey)
	if err != nil {
		log.Fatalf("failed to start viewer: %v", err)
	}
	defer v.screen.Fini()

	if err := v.run(); err != nil {
		v.screen.Fini()
		log.Fatalf("viewer failed: %v", err)
	}
}
