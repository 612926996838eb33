// Package rmqrcode renders rMQR symbols into bit matrices and registers the
// format's writer with the root package.
package rmqrcode

import (
	"fmt"

	rmqrgo "github.com/ericlevine/rmqrgo"
	"github.com/ericlevine/rmqrgo/bitutil"
	"github.com/ericlevine/rmqrgo/rmqrcode/decoder"
	"github.com/ericlevine/rmqrgo/rmqrcode/encoder"
)

const defaultQuietZoneSize = 2

// Writer encodes rMQR codes.
type Writer struct{}

// NewWriter creates a new rMQR Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Encode encodes contents into an rMQR symbol and renders it into a
// BitMatrix of at least width x height pixels. An empty string encodes an
// empty payload.
func (w *Writer) Encode(contents string, format rmqrgo.Format, width, height int, opts *rmqrgo.EncodeOptions) (*bitutil.BitMatrix, error) {
	symbol, quietZone, err := w.encode(contents, format, width, height, opts)
	if err != nil {
		return nil, err
	}
	return encoder.RenderResult(symbol, width, height, quietZone), nil
}

// EncodeSymbol returns the symbol Encode would render, for callers that
// draw modules themselves.
func (w *Writer) EncodeSymbol(contents string, opts *rmqrgo.EncodeOptions) (*encoder.Symbol, error) {
	symbol, _, err := w.encode(contents, rmqrgo.FormatRMQRCode, 0, 0, opts)
	return symbol, err
}

func (w *Writer) encode(contents string, format rmqrgo.Format, width, height int, opts *rmqrgo.EncodeOptions) (*encoder.Symbol, int, error) {
	if format != rmqrgo.FormatRMQRCode {
		return nil, 0, fmt.Errorf("%w: can only encode RMQR_CODE, but got %s", rmqrgo.ErrWriter, format)
	}
	if width < 0 || height < 0 {
		return nil, 0, fmt.Errorf("%w: requested dimensions are too small: %dx%d", rmqrgo.ErrWriter, width, height)
	}

	ecLevel := decoder.ECLevelM
	quietZone := defaultQuietZoneSize
	var hint *encoder.SizeHint

	if opts != nil {
		if opts.ErrorCorrection != "" {
			level, err := decoder.ParseECLevel(opts.ErrorCorrection)
			if err != nil {
				return nil, 0, fmt.Errorf("%w: unknown error correction level: %s", rmqrgo.ErrInvalidConfiguration, opts.ErrorCorrection)
			}
			ecLevel = level
		}
		if opts.Margin != nil {
			if *opts.Margin < 0 {
				return nil, 0, fmt.Errorf("%w: negative margin %d", rmqrgo.ErrInvalidConfiguration, *opts.Margin)
			}
			quietZone = *opts.Margin
		}
		if opts.Version != "" || opts.MaxWidth != 0 || opts.MaxHeight != 0 {
			hint = &encoder.SizeHint{Version: opts.Version, MaxWidth: opts.MaxWidth, MaxHeight: opts.MaxHeight}
		}
	}

	symbol, err := encoder.Encode([]byte(contents), ecLevel, hint)
	if err != nil {
		return nil, 0, err
	}
	return symbol, quietZone, nil
}
