package render

import (
	"bytes"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"

	"github.com/ericlevine/rmqrgo/rmqrcode/decoder"
	"github.com/ericlevine/rmqrgo/rmqrcode/encoder"
)

// grid is a Matrix written as rows of '#' and '.'.
type grid []string

func (g grid) Width() int          { return len(g[0]) }
func (g grid) Height() int         { return len(g) }
func (g grid) Dark(x, y int) bool { return g[y][x] == '#' }

func testSymbol(t *testing.T) *encoder.Symbol {
	t.Helper()
	symbol, err := encoder.Encode([]byte("RENDER 123"), decoder.ECLevelM, nil)
	require.NoError(t, err)
	return symbol
}

func TestASCII(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ASCII(&buf, grid{"#."}, Options{QuietZone: 1}))
	require.Equal(t, "        \n  ##    \n        \n", buf.String())

	buf.Reset()
	require.NoError(t, ASCII(&buf, grid{"#."}, Options{Invert: true}))
	require.Equal(t, "  ##\n", buf.String())
}

func TestTerminal(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Terminal(&buf, grid{"##..", "#.#.", ".#.#"}, Options{}))
	require.Equal(t, "█▀▄ \n ▀ ▀\n", ansi.Strip(buf.String()))
}

func TestTerminalSymbolLines(t *testing.T) {
	symbol := testSymbol(t)
	var buf bytes.Buffer
	require.NoError(t, Terminal(&buf, symbol.Matrix, Options{QuietZone: 2}))
	lines := strings.Split(strings.TrimSuffix(ansi.Strip(buf.String()), "\n"), "\n")
	require.Len(t, lines, (symbol.Matrix.Height()+4+1)/2)
	for _, line := range lines {
		require.Equal(t, symbol.Matrix.Width()+4, len([]rune(line)))
	}
}

func TestPNG(t *testing.T) {
	symbol := testSymbol(t)
	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, symbol.Matrix, Options{Scale: 3, QuietZone: 2}))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	bounds := img.Bounds()
	require.Equal(t, (symbol.Matrix.Width()+4)*3, bounds.Dx())
	require.Equal(t, (symbol.Matrix.Height()+4)*3, bounds.Dy())

	gray := func(x, y int) uint8 {
		return color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
	}
	// quiet zone, then the finder pattern's dark corner
	require.Equal(t, uint8(0xFF), gray(0, 0))
	require.Equal(t, uint8(0x00), gray(6, 6))
	require.Equal(t, uint8(0x00), gray(8, 8))
	// the finder's light ring starts one module in
	require.Equal(t, uint8(0xFF), gray(9, 9))
}

func TestInvalidOptions(t *testing.T) {
	var buf bytes.Buffer
	require.ErrorIs(t, PNG(&buf, grid{"#"}, Options{Scale: 0}), ErrOptions)
	require.ErrorIs(t, ASCII(&buf, grid{"#"}, Options{QuietZone: -1}), ErrOptions)
	require.ErrorIs(t, Terminal(&buf, grid{"#"}, Options{QuietZone: -1}), ErrOptions)
}

func TestCBORRoundTrip(t *testing.T) {
	symbol := testSymbol(t)
	meta := Metadata{Version: symbol.Version.Name, ECLevel: symbol.ECLevel.String()}

	var first, second bytes.Buffer
	require.NoError(t, CBOR(&first, symbol.Matrix, meta))
	require.NoError(t, CBOR(&second, symbol.Matrix, meta))
	require.Equal(t, first.Bytes(), second.Bytes())

	export, err := DecodeCBOR(first.Bytes())
	require.NoError(t, err)
	require.Equal(t, symbol.Version.Name, export.Version)
	require.Equal(t, "M", export.ECLevel)
	require.Equal(t, symbol.Matrix.Width(), export.Width())
	require.Equal(t, symbol.Matrix.Height(), export.Height())
	for y := 0; y < export.Height(); y++ {
		for x := 0; x < export.Width(); x++ {
			require.Equal(t, symbol.Matrix.Dark(x, y), export.Dark(x, y), "(%d, %d)", x, y)
		}
	}
}

func TestDecodeCBORRejectsBadData(t *testing.T) {
	_, err := DecodeCBOR([]byte{0xFF})
	require.ErrorIs(t, err, ErrExport)

	short, err := cbor.Marshal(Export{Columns: 9, Rows: 2, Modules: []byte{0x00, 0x00, 0x00}})
	require.NoError(t, err)
	_, err = DecodeCBOR(short)
	require.ErrorIs(t, err, ErrExport)
}

func TestNewExportPacking(t *testing.T) {
	e := NewExport(grid{"#........#", ".........."}, Metadata{})
	require.Equal(t, []byte{0x80, 0x40, 0x00, 0x00}, e.Modules)
}
