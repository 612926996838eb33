// Package render draws rMQR module matrices: PNG images, terminal text and
// a CBOR export for renderers outside Go.
package render

import "errors"

// ErrOptions is returned for a non-positive scale or a negative quiet zone.
var ErrOptions = errors.New("render: invalid options")

// Matrix is the view of a symbol every renderer draws from.
// encoder.ModuleMatrix and Export implement it.
type Matrix interface {
	Width() int
	Height() int
	Dark(x, y int) bool
}

// Options controls the output size and colours.
type Options struct {
	// Scale is the number of image pixels per module. Text renderers
	// ignore it.
	Scale int
	// QuietZone is the light margin around the symbol, in modules.
	QuietZone int
	// Invert swaps dark and light modules, quiet zone included.
	Invert bool
}

// DefaultOptions are used by the CLI when nothing else is configured.
var DefaultOptions = Options{Scale: 4, QuietZone: 2}

func (o Options) validate(needScale bool) error {
	if o.QuietZone < 0 || (needScale && o.Scale < 1) {
		return ErrOptions
	}
	return nil
}

// dark reports whether the module at (x, y) of the framed symbol is dark;
// coordinates are relative to the outer corner of the quiet zone.
func dark(m Matrix, o Options, x, y int) bool {
	x -= o.QuietZone
	y -= o.QuietZone
	d := x >= 0 && x < m.Width() && y >= 0 && y < m.Height() && m.Dark(x, y)
	return d != o.Invert
}
