package encoder

import (
	"fmt"
	"math"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"

	rmqrgo "github.com/ericlevine/rmqrgo"
	"github.com/ericlevine/rmqrgo/rmqrcode/decoder"
)

// Segment is a run of the payload encoded in a single mode. Kanji segments
// hold UTF-8 text; every other mode holds the bytes as written.
type Segment struct {
	Mode decoder.Mode
	Data []byte
}

// NewSegment returns a segment for data in the given mode.
func NewSegment(mode decoder.Mode, data string) Segment {
	return Segment{Mode: mode, Data: []byte(data)}
}

// CharacterCount returns the value written to the count indicator: bytes
// for byte mode, characters otherwise.
func (s Segment) CharacterCount() int {
	switch s.Mode {
	case decoder.ModeByte:
		return len(s.Data)
	case decoder.ModeKanji:
		return utf8.RuneCount(s.Data)
	}
	return len(s.Data)
}

func (s Segment) String() string {
	return fmt.Sprintf("%s(%q)", s.Mode, s.Data)
}

// alphanumericTable maps ASCII values to alphanumeric codes.
var alphanumericTable = [128]int{
	-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1,
	-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1,
	36, -1, -1, -1, 37, 38, -1, -1, -1, -1, 39, 40, -1, 41, 42, 43,
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 44, -1, -1, -1, -1, -1,
	-1, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24,
	25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, -1, -1, -1, -1, -1,
	-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1,
	-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1,
}

// GetAlphanumericCode returns the alphanumeric code for a character, or -1.
func GetAlphanumericCode(code rune) int {
	if code >= 0 && code < 128 {
		return alphanumericTable[code]
	}
	return -1
}

func isNumeric(r rune) bool {
	return r >= '0' && r <= '9'
}

// kanjiCode returns the Shift JIS code of r when it lies in one of the two
// ranges kanji mode can compact, or 0.
func kanjiCode(r rune) int {
	if r < 0x80 || r == utf8.RuneError {
		return 0
	}
	b, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte(string(r)))
	if err != nil || len(b) != 2 {
		return 0
	}
	code := int(b[0])<<8 | int(b[1])
	if (code >= 0x8140 && code <= 0x9FFC) || (code >= 0xE040 && code <= 0xEBBF) {
		return code
	}
	return 0
}

// unit is one payload character: a rune, or a lone byte of invalid UTF-8.
type unit struct {
	raw   []byte
	r     rune
	kanji int
}

func splitUnits(payload []byte) []unit {
	var units []unit
	for i := 0; i < len(payload); {
		r, size := utf8.DecodeRune(payload[i:])
		u := unit{raw: payload[i : i+size], r: r}
		if r == utf8.RuneError && size == 1 {
			u.r = -1
		} else {
			u.kanji = kanjiCode(r)
		}
		units = append(units, u)
		i += size
	}
	return units
}

// selectorModes is the DP mode order; ties resolve to the earlier entry.
var selectorModes = [4]decoder.Mode{
	decoder.ModeNumeric, decoder.ModeAlphanumeric, decoder.ModeByte, decoder.ModeKanji,
}

func (u unit) encodable(mode decoder.Mode) bool {
	switch mode {
	case decoder.ModeNumeric:
		return isNumeric(u.r)
	case decoder.ModeAlphanumeric:
		return GetAlphanumericCode(u.r) != -1
	case decoder.ModeKanji:
		return u.kanji != 0
	}
	return true
}

// extendCost is the bit cost of appending u to an open segment of mode
// whose last numeric or alphanumeric group holds pending characters. It
// also returns the pending count afterwards.
func (u unit) extendCost(mode decoder.Mode, pending int) (int, int) {
	switch mode {
	case decoder.ModeNumeric:
		// groups of 1, 2, 3 digits take 4, 7, 10 bits
		if pending == 0 {
			return 4, 1
		}
		return 3, (pending + 1) % 3
	case decoder.ModeAlphanumeric:
		// groups of 1, 2 characters take 6, 11 bits
		if pending == 0 {
			return 6, 1
		}
		return 5, 0
	case decoder.ModeKanji:
		return 13, 0
	}
	return 8 * len(u.raw), 0
}

type dpState struct {
	n, mode, pending int
}

// chooseSegments splits payload into the segments with the shortest bit
// stream for version. Each state is (characters consumed, mode of the last
// segment, characters in its unfinished numeric/alphanumeric group).
func chooseSegments(payload []byte, version *decoder.Version) ([]Segment, int) {
	units := splitUnits(payload)
	if len(units) == 0 {
		return nil, 0
	}
	const inf = math.MaxInt32
	n := len(units)
	cost := make([][4][3]int, n+1)
	parent := make([][4][3]dpState, n+1)
	for i := range cost {
		for m := range cost[i] {
			cost[i][m] = [3]int{inf, inf, inf}
		}
	}

	for i, u := range units {
		for m, mode := range selectorModes {
			if !u.encodable(mode) {
				continue
			}
			header := decoder.ModeIndicatorBits + mode.CharacterCountBits(version)
			if i == 0 {
				// first segment: no predecessor to improve upon
				c, p := u.extendCost(mode, 0)
				relax(cost, parent, i+1, m, p, header+c, dpState{-1, -1, -1})
				continue
			}
			for pm := range selectorModes {
				for pp := 0; pp < 3; pp++ {
					prev := cost[i][pm][pp]
					if prev == inf {
						continue
					}
					if pm == m {
						c, p := u.extendCost(mode, pp)
						relax(cost, parent, i+1, m, p, prev+c, dpState{i, pm, pp})
					} else {
						c, p := u.extendCost(mode, 0)
						relax(cost, parent, i+1, m, p, prev+header+c, dpState{i, pm, pp})
					}
				}
			}
		}
	}

	best := dpState{n, -1, -1}
	bestCost := inf
	for m := range selectorModes {
		for p := 0; p < 3; p++ {
			if cost[n][m][p] < bestCost {
				bestCost = cost[n][m][p]
				best = dpState{n, m, p}
			}
		}
	}

	modes := make([]int, n)
	for s := best; s.n > 0; s = parent[s.n][s.mode][s.pending] {
		modes[s.n-1] = s.mode
	}

	var segments []Segment
	for i, u := range units {
		mode := selectorModes[modes[i]]
		if i == 0 || modes[i] != modes[i-1] {
			segments = append(segments, Segment{Mode: mode})
		}
		last := &segments[len(segments)-1]
		last.Data = append(last.Data, u.raw...)
	}
	return segments, bestCost
}

func relax(cost [][4][3]int, parent [][4][3]dpState, n, mode, pending, c int, from dpState) {
	if c < cost[n][mode][pending] {
		cost[n][mode][pending] = c
		parent[n][mode][pending] = from
	}
}

// validateSegment checks that every character of s is encodable in its mode.
func validateSegment(s Segment) error {
	switch s.Mode {
	case decoder.ModeByte:
		return nil
	case decoder.ModeNumeric, decoder.ModeAlphanumeric, decoder.ModeKanji:
	default:
		return fmt.Errorf("%w: mode %s", rmqrgo.ErrUnsupportedCharacter, s.Mode)
	}
	for _, u := range splitUnits(s.Data) {
		if !u.encodable(s.Mode) {
			return fmt.Errorf("%w: %q in %s segment", rmqrgo.ErrUnsupportedCharacter, u.raw, s.Mode)
		}
	}
	return nil
}
