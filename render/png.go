package render

import (
	"image"
	"image/color"
	"image/png"
	"io"
)

// symbolImage implements image.Image over a Matrix.
type symbolImage struct {
	m Matrix
	o Options
}

var (
	lightColor color.Color = color.Gray{0xFF}
	darkColor  color.Color = color.Gray{0x00}
)

func (s *symbolImage) Bounds() image.Rectangle {
	return image.Rect(0, 0,
		(s.m.Width()+2*s.o.QuietZone)*s.o.Scale,
		(s.m.Height()+2*s.o.QuietZone)*s.o.Scale)
}

func (s *symbolImage) At(x, y int) color.Color {
	if dark(s.m, s.o, x/s.o.Scale, y/s.o.Scale) {
		return darkColor
	}
	return lightColor
}

func (s *symbolImage) ColorModel() color.Model {
	return color.GrayModel
}

// Image returns an image of m with o.Scale pixels per module.
func Image(m Matrix, o Options) (image.Image, error) {
	if err := o.validate(true); err != nil {
		return nil, err
	}
	return &symbolImage{m: m, o: o}, nil
}

// PNG writes m to w as a grayscale PNG.
func PNG(w io.Writer, m Matrix, o Options) error {
	img, err := Image(m, o)
	if err != nil {
		return err
	}
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(w, img)
}
