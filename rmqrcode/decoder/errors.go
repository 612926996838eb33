package decoder

import "errors"

var (
	errInvalidECLevel = errors.New("rmqrcode/decoder: invalid error correction level")
	errInvalidMode    = errors.New("rmqrcode/decoder: invalid mode")
	errInvalidVersion = errors.New("rmqrcode/decoder: invalid version")
)
