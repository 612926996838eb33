package encoder

import (
	"strings"

	"github.com/ericlevine/rmqrgo/bitutil"
)

// CellValue is the content of one module.
type CellValue byte

// Cell values. Reserved marks a format cell still waiting for its bit.
const (
	Unset CellValue = iota
	Reserved
	Light
	Dark
)

// CellRole records which stage of the pipeline owns a module.
type CellRole byte

// Cell roles.
const (
	RoleNone CellRole = iota
	RoleFunction
	RoleFormat
	RoleData
)

func (r CellRole) String() string {
	switch r {
	case RoleFunction:
		return "function"
	case RoleFormat:
		return "format"
	case RoleData:
		return "data"
	}
	return "none"
}

type cell struct {
	value CellValue
	role  CellRole
}

// ModuleMatrix is the module grid of a symbol. Each cell carries its value
// and the role it was written with; x is the column, y the row.
type ModuleMatrix struct {
	width, height int
	cells         []cell
}

// NewModuleMatrix returns a width x height matrix of Unset cells.
func NewModuleMatrix(width, height int) *ModuleMatrix {
	return &ModuleMatrix{width: width, height: height, cells: make([]cell, width*height)}
}

// Width returns the number of columns.
func (m *ModuleMatrix) Width() int { return m.width }

// Height returns the number of rows.
func (m *ModuleMatrix) Height() int { return m.height }

// Dark reports whether the module at (x, y) is dark.
func (m *ModuleMatrix) Dark(x, y int) bool {
	return m.cells[y*m.width+x].value == Dark
}

// Value returns the value of the module at (x, y).
func (m *ModuleMatrix) Value(x, y int) CellValue {
	return m.cells[y*m.width+x].value
}

// Role returns the role of the module at (x, y).
func (m *ModuleMatrix) Role(x, y int) CellRole {
	return m.cells[y*m.width+x].role
}

func (m *ModuleMatrix) at(x, y int) *cell {
	return &m.cells[y*m.width+x]
}

func (m *ModuleMatrix) isEmpty(x, y int) bool {
	return m.cells[y*m.width+x].value == Unset
}

// stamp writes a function module unless an earlier pattern owns the cell.
func (m *ModuleMatrix) stamp(x, y int, dark bool) {
	c := m.at(x, y)
	if c.value != Unset {
		return
	}
	c.role = RoleFunction
	c.value = Light
	if dark {
		c.value = Dark
	}
}

func (m *ModuleMatrix) reserve(x, y int) {
	c := m.at(x, y)
	if c.value != Unset {
		return
	}
	c.value = Reserved
	c.role = RoleFormat
}

// setFormat fills a reserved cell. It reports false if the cell was not
// reserved for format information.
func (m *ModuleMatrix) setFormat(x, y int, dark bool) bool {
	c := m.at(x, y)
	if c.value != Reserved || c.role != RoleFormat {
		return false
	}
	c.value = Light
	if dark {
		c.value = Dark
	}
	return true
}

// setData fills an empty cell with a data bit. It reports false if the
// cell was already written.
func (m *ModuleMatrix) setData(x, y int, dark bool) bool {
	c := m.at(x, y)
	if c.value != Unset {
		return false
	}
	c.role = RoleData
	c.value = Light
	if dark {
		c.value = Dark
	}
	return true
}

func (m *ModuleMatrix) flip(x, y int) {
	c := m.at(x, y)
	if c.value == Dark {
		c.value = Light
	} else {
		c.value = Dark
	}
}

func (m *ModuleMatrix) clone() *ModuleMatrix {
	cells := make([]cell, len(m.cells))
	copy(cells, m.cells)
	return &ModuleMatrix{width: m.width, height: m.height, cells: cells}
}

// complete reports whether every cell has been given a final value.
func (m *ModuleMatrix) complete() bool {
	for _, c := range m.cells {
		if c.value == Unset || c.value == Reserved || c.role == RoleNone {
			return false
		}
	}
	return true
}

// ToBitMatrix converts the matrix to a BitMatrix with dark modules set.
func (m *ModuleMatrix) ToBitMatrix() *bitutil.BitMatrix {
	bm := bitutil.NewBitMatrix(m.width, m.height)
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if m.Dark(x, y) {
				bm.Set(x, y)
			}
		}
	}
	return bm
}

// String returns a visual representation of the matrix; unfinished cells
// are shown as '?'.
func (m *ModuleMatrix) String() string {
	var sb strings.Builder
	sb.Grow(m.height * (2*m.width + 1))
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			switch m.Value(x, y) {
			case Dark:
				sb.WriteString("##")
			case Light:
				sb.WriteString("  ")
			default:
				sb.WriteString("??")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
