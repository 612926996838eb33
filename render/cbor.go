package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// ErrExport is returned when CBOR data does not describe a valid matrix.
var ErrExport = errors.New("render: malformed export")

// Export is the CBOR form of a symbol: its dimensions and the modules
// packed row by row, most significant bit first, each row padded to a
// whole byte.
type Export struct {
	Version string `cbor:"version,omitempty"`
	ECLevel string `cbor:"ec_level,omitempty"`
	Columns int    `cbor:"width"`
	Rows    int    `cbor:"height"`
	Modules []byte `cbor:"modules"`
}

// Metadata names the symbol an export was taken from.
type Metadata struct {
	Version string
	ECLevel string
}

// encMode uses Core Deterministic Encoding (RFC 8949 §4.2): the same
// matrix always exports to the same bytes.
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("render: CBOR encoder initialization failed: " + err.Error())
	}
}

func rowBytes(width int) int {
	return (width + 7) / 8
}

// NewExport packs m into an Export.
func NewExport(m Matrix, meta Metadata) *Export {
	stride := rowBytes(m.Width())
	e := &Export{
		Version: meta.Version,
		ECLevel: meta.ECLevel,
		Columns: m.Width(),
		Rows:    m.Height(),
		Modules: make([]byte, stride*m.Height()),
	}
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if m.Dark(x, y) {
				e.Modules[y*stride+x/8] |= 0x80 >> uint(x&7)
			}
		}
	}
	return e
}

// Width returns the number of module columns.
func (e *Export) Width() int { return e.Columns }

// Height returns the number of module rows.
func (e *Export) Height() int { return e.Rows }

// Dark reports whether the module at (x, y) is dark.
func (e *Export) Dark(x, y int) bool {
	return e.Modules[y*rowBytes(e.Columns)+x/8]&(0x80>>uint(x&7)) != 0
}

// CBOR writes m to w as a CBOR encoded Export.
func CBOR(w io.Writer, m Matrix, meta Metadata) error {
	return encMode.NewEncoder(w).Encode(NewExport(m, meta))
}

// DecodeCBOR parses an Export written by CBOR.
func DecodeCBOR(data []byte) (*Export, error) {
	var e Export
	if err := cbor.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExport, err)
	}
	if e.Columns < 1 || e.Rows < 1 || len(e.Modules) != rowBytes(e.Columns)*e.Rows {
		return nil, fmt.Errorf("%w: %dx%d with %d module bytes", ErrExport, e.Columns, e.Rows, len(e.Modules))
	}
	return &e, nil
}
