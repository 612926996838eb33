package rmqrgo

import "github.com/ericlevine/rmqrgo/bitutil"

// EncodeOptions configures symbol encoding behavior.
type EncodeOptions struct {
	// ErrorCorrection specifies the error correction level ("M" or "H").
	ErrorCorrection string

	// Margin specifies the margin (quiet zone) in modules around the symbol.
	Margin *int

	// Version forces a specific rMQR version such as "R11x43".
	Version string

	// MaxWidth and MaxHeight bound the automatic version search in modules.
	// Zero means unbounded.
	MaxWidth, MaxHeight int
}

// Writer encodes data into a symbol.
type Writer interface {
	// Encode encodes the given contents into a symbol.
	Encode(contents string, format Format, width, height int, opts *EncodeOptions) (*bitutil.BitMatrix, error)
}
