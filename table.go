// table.go - control-plane column descriptor framework
//
// Go has no struct-offset reflection the way the original C engine used
// offsetof() into its tables; per spec.md Design Notes ("define, for each
// column, a pair of closures... store in a name-indexed descriptor table")
// this is reimplemented as a name-indexed map of closures, in the spirit of
// the teacher's HandleRegisterWrite dispatch switch in audio_chip.go but
// generalized from a fixed register enum to an open column name.
//
// License: GPLv3 or later

package main

import "fmt"

// ColumnType is the wire-level type of a column's value.
type ColumnType int

const (
	ColInt ColumnType = iota
	ColFloat
	ColStr
)

// Value is a tagged union carrying one column value across the protocol
// boundary. Only the field matching Type is meaningful.
type Value struct {
	Type ColumnType
	I    int32
	F    float32
	S    string
}

func IntValue(i int32) Value     { return Value{Type: ColInt, I: i} }
func FloatValue(f float32) Value { return Value{Type: ColFloat, F: f} }
func StrValue(s string) Value    { return Value{Type: ColStr, S: s} }

func (v Value) String() string {
	switch v.Type {
	case ColInt:
		return fmt.Sprintf("%d", v.I)
	case ColFloat:
		return fmt.Sprintf("%g", v.F)
	default:
		return v.S
	}
}

// Column is one descriptor: a name, a semantic type, a read-only flag, and
// a getter/setter pair closing over whatever backing store the table was
// built against (a VoiceBank row, a connection record, ...). Get may run a
// pre-read callback that reconstructs a user-facing value from transient
// DSP state (e.g. o1freq from phasestep); Set may run a post-write
// callback that clamps and derives dependent internal fields.
type Column struct {
	Name     string
	Type     ColumnType
	ReadOnly bool
	Help     string
	Get      func(row int) (Value, error)
	Set      func(row int, v Value) error
}

// Table is a named, row-indexed collection of columns, the control plane's
// unit of SELECT/UPDATE addressing.
type Table struct {
	Name    string
	Rows    int
	order   []string
	columns map[string]*Column
}

func newTable(name string, rows int) *Table {
	return &Table{Name: name, Rows: rows, columns: make(map[string]*Column)}
}

func (t *Table) add(c Column) {
	t.columns[c.Name] = &c
	t.order = append(t.order, c.Name)
}

// Column looks up a descriptor by name.
func (t *Table) Column(name string) (*Column, bool) {
	c, ok := t.columns[name]
	return c, ok
}

// ColumnNames returns column names in declaration order, for SELECT *.
func (t *Table) ColumnNames() []string {
	return append([]string(nil), t.order...)
}

var errUnknownColumn = fmt.Errorf("unknown column")
var errReadOnly = fmt.Errorf("column is read-only")
var errRowOutOfRange = fmt.Errorf("row index out of range")

// Select reads one column of one row, invoking its pre-read callback.
func (t *Table) Select(row int, column string) (Value, error) {
	if row < 0 || row >= t.Rows {
		return Value{}, errRowOutOfRange
	}
	c, ok := t.columns[column]
	if !ok {
		return Value{}, fmt.Errorf("%w: %s.%s", errUnknownColumn, t.Name, column)
	}
	return c.Get(row)
}

// Update writes one column of one row, invoking its post-write callback.
// Callbacks may clamp the stored value silently rather than reject it, per
// spec.md 4.4's preference for clamp-and-accept.
func (t *Table) Update(row int, column string, v Value) error {
	if row < 0 || row >= t.Rows {
		return errRowOutOfRange
	}
	c, ok := t.columns[column]
	if !ok {
		return fmt.Errorf("%w: %s.%s", errUnknownColumn, t.Name, column)
	}
	if c.ReadOnly {
		return fmt.Errorf("%w: %s.%s", errReadOnly, t.Name, column)
	}
	return c.Set(row, v)
}
