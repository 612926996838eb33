// Package rmqrgo encodes rectangular Micro QR (rMQR) symbols.
package rmqrgo

// Format represents a symbol format.
type Format int

const (
	FormatRMQRCode Format = iota
)

// String returns the name of the symbol format.
func (f Format) String() string {
	switch f {
	case FormatRMQRCode:
		return "RMQR_CODE"
	default:
		return "UNKNOWN"
	}
}

// ParseFormat returns the Format with the given name.
func ParseFormat(name string) (Format, bool) {
	switch name {
	case "RMQR_CODE", "rmqr":
		return FormatRMQRCode, true
	default:
		return 0, false
	}
}
