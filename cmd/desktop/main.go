// Command desktop is a graphical single-stepper for chunks. It shows the
// disassembly with the next instruction marked, the value stack and
// everything DUMP printed.
//
// Keys: Space or N steps, Enter runs to the end, R resets.
package main

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"skard/pkg/asm"
	"skard/pkg/chunk"
	"skard/pkg/compiler"
	"skard/pkg/stepper"
	"skard/pkg/utils"
)

const (
	screenWidth  = 640
	screenHeight = 480
	lineHeight   = 14
	listingRows  = 20
)

var (
	background = color.RGBA{0x1D, 0x2B, 0x53, 0xFF}
	current    = color.RGBA{0xFF, 0xEC, 0x27, 0xFF}
	normal     = color.RGBA{0xC2, 0xC3, 0xC7, 0xFF}
)

type Game struct {
	session *stepper.Session
	face    text.Face
}

func (g *Game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace), inpututil.IsKeyJustPressed(ebiten.KeyN):
		g.session.Step()
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		g.session.Run()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.session.Reset()
	}
	return nil
}

func (g *Game) drawListing(screen *ebiten.Image) {
	rows := g.session.Listing()
	cur := g.session.Current()

	// keep the current row in view
	first := 0
	if cur >= listingRows {
		first = cur - listingRows + 1
	}
	for i := first; i < len(rows) && i < first+listingRows; i++ {
		marker, clr := "  ", normal
		if i == cur {
			marker, clr = "> ", current
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(8, float64(8+(i-first)*lineHeight))
		op.ColorScale.ScaleWithColor(clr)
		text.Draw(screen, marker+rows[i].Text, g.face, op)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	g.drawListing(screen)

	y := 16 + listingRows*lineHeight
	ebitenutil.DebugPrintAt(screen, "stack:  "+g.session.VM.StackString(), 8, y)
	ebitenutil.DebugPrintAt(screen, "output: "+strings.Join(g.session.Output(), " "), 8, y+lineHeight)
	ebitenutil.DebugPrintAt(screen, g.session.Status(), 8, y+2*lineHeight)
	ebitenutil.DebugPrintAt(screen, "[space] step  [enter] run  [r] reset", 8, screenHeight-lineHeight-4)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// loadChunk accepts chunk images (.skc), chunk assembly (.ska) and front-end
// sources whose expression can be lowered.
func loadChunk(path string) (*chunk.Chunk, error) {
	if strings.HasSuffix(path, ".skc") {
		return chunk.LoadFile(path)
	}
	src, err := utils.ReadSource(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".ska") {
		return asm.Assemble(src)
	}
	expr, err := compiler.Compile(src, compiler.NewDiagnostics(os.Stderr))
	if err != nil {
		return nil, err
	}
	c := chunk.New()
	if err := compiler.Lower(expr, c); err != nil {
		return nil, err
	}
	return c, nil
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: desktop <file.ska|file.skc|file.sk>")
		os.Exit(2)
	}

	c, err := loadChunk(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to load %s: %v", os.Args[1], err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("skard stepper")

	game := &Game{
		session: stepper.New(c),
		face:    text.NewGoXFace(basicfont.Face7x13),
	}
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
