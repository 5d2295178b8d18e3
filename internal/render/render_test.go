package render

import (
	"image/png"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/common"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game/core"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/testutil"
)

func sampleView() game.View {
	return game.View{
		BoardSize: 6,
		Body:      []core.Coordinate{{Row: 2, Col: 3}, {Row: 2, Col: 2}, {Row: 2, Col: 1}},
		Heading:   core.Right,
		Food:      core.Coordinate{Row: 5, Col: 0},
		MaxTicks:  144,
	}
}

func TestRGBArray(t *testing.T) {
	p := common.DefaultPalette
	img := RGBArray(sampleView(), p)

	assert.Equal(t, 6, img.Bounds().Dx())
	assert.Equal(t, 6, img.Bounds().Dy())
	assert.Equal(t, p.Head, img.RGBAAt(3, 2))
	assert.Equal(t, p.Body, img.RGBAAt(2, 2))
	assert.Equal(t, p.Body, img.RGBAAt(1, 2))
	assert.Equal(t, p.Food, img.RGBAAt(0, 5))
	assert.Equal(t, p.Background, img.RGBAAt(5, 5))
	assert.Equal(t, p.Background, img.RGBAAt(0, 0))
}

func TestRGBArray_DoesNotMutateSimulator(t *testing.T) {
	sim, err := game.NewSimulator(game.GameConfig{BoardSize: 8, Rng: testutil.NewTestRNG(testutil.TestSeed), Logger: testutil.NopLogger()})
	require.NoError(t, err)
	sim.Reset()
	before := sim.View()

	RGBArray(sim.View(), common.DefaultPalette)
	Terminal(sim.View(), true)

	assert.Equal(t, before, sim.View())
}

func TestFrame(t *testing.T) {
	p := common.DefaultPalette
	img := Frame(sampleView(), p, 10)

	assert.Equal(t, 60, img.Bounds().Dx())
	// centre of the head cell
	assert.Equal(t, p.Head, img.RGBAAt(35, 25))
	// grid line on a cell boundary
	assert.Equal(t, p.Grid, img.RGBAAt(30, 25))
	assert.Equal(t, p.Background, img.RGBAAt(55, 5))
}

func TestWritePNG(t *testing.T) {
	path := testutil.TempFile(t, "frame.png")
	require.NoError(t, WritePNG(path, Frame(sampleView(), common.DefaultPalette, 4)))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 24, img.Bounds().Dx())
}

func TestTerminal_PlainMatchesViewString(t *testing.T) {
	v := sampleView()
	assert.Equal(t, v.String(), Terminal(v, false))
}

func TestTerminal_Colored(t *testing.T) {
	v := sampleView()
	v.Done = true
	v.Reason = game.ReasonWall

	out := Terminal(v, true)
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, game.HeadSymbol)
	assert.Contains(t, out, "ended=wall")
}
