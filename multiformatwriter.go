package rmqrgo

import (
	"fmt"

	"github.com/ericlevine/rmqrgo/bitutil"
)

// writerFactory is a function that creates a Writer.
type writerFactory func() Writer

var writerFactories = map[Format]writerFactory{}

// RegisterWriter registers a writer factory for the given format. Format
// packages call it from init.
func RegisterWriter(format Format, factory writerFactory) {
	writerFactories[format] = factory
}

// Encode encodes the given contents with the writer registered for format.
func Encode(contents string, format Format, width, height int, opts *EncodeOptions) (*bitutil.BitMatrix, error) {
	factory, ok := writerFactories[format]
	if !ok {
		return nil, fmt.Errorf("no writer registered for format %s: %w", format, ErrWriter)
	}
	return factory().Encode(contents, format, width, height, opts)
}
