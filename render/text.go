package render

import (
	"bufio"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ASCII writes m to w using two characters per module: "##" for dark and
// two spaces for light.
func ASCII(w io.Writer, m Matrix, o Options) error {
	if err := o.validate(false); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	width := m.Width() + 2*o.QuietZone
	height := m.Height() + 2*o.QuietZone
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if dark(m, o, x, y) {
				bw.WriteString("##")
			} else {
				bw.WriteString("  ")
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// halfBlocks indexes the glyph for a pair of vertically stacked modules:
// bit 1 is the upper module, bit 0 the lower.
var halfBlocks = [4]string{" ", "▄", "▀", "█"}

// Terminal writes m to w with one character per module column and two
// module rows per line. Glyphs are drawn in black on white so the symbol
// keeps its polarity on dark terminals; colour is dropped when w is not a
// terminal.
func Terminal(w io.Writer, m Matrix, o Options) error {
	if err := o.validate(false); err != nil {
		return err
	}
	style := lipgloss.NewRenderer(w).NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("15"))

	width := m.Width() + 2*o.QuietZone
	height := m.Height() + 2*o.QuietZone
	bw := bufio.NewWriter(w)
	var line strings.Builder
	for y := 0; y < height; y += 2 {
		line.Reset()
		for x := 0; x < width; x++ {
			glyph := 0
			if dark(m, o, x, y) {
				glyph |= 2
			}
			// the row below an odd final row is blank
			if y+1 < height && dark(m, o, x, y+1) {
				glyph |= 1
			}
			line.WriteString(halfBlocks[glyph])
		}
		bw.WriteString(style.Render(line.String()))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
