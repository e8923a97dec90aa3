// protocol.go - tabular query dispatch
//
// spec.md 1 explicitly delegates wire framing to an external collaborator
// ("the engine consumes parsed (SELECT|UPDATE, table, row, column, value?)
// operations"); this file supplies a concrete, minimal line-oriented
// framing so the control plane is independently testable end-to-end, in
// the same spirit as the teacher's runtime_ipc.go choosing one concrete
// JSON framing for its own out-of-band control channel.
//
// Wire format, one command per line:
//
//	SELECT <table> <row> <column>
//	UPDATE <table> <row> <column> <value>
//
// Responses, one per command:
//
//	OK <value>
//	ERR <message>
//
// License: GPLv3 or later

package main

import (
	"fmt"
	"strconv"
	"strings"
)

// Registry maps table names to their descriptor sets, the dispatch target
// for both SELECT and UPDATE commands.
type Registry struct {
	tables map[string]*Table
}

func newRegistry() *Registry {
	return &Registry{tables: make(map[string]*Table)}
}

func (r *Registry) register(t *Table) {
	r.tables[t.Name] = t
}

func (r *Registry) table(name string) (*Table, bool) {
	t, ok := r.tables[name]
	return t, ok
}

// Dispatch parses and executes one command line, returning the exact
// response line to write back to the client (including its trailing
// newline).
func (r *Registry) Dispatch(line string) string {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return "ERR malformed command\n"
	}

	verb := strings.ToUpper(fields[0])
	tableName := fields[1]
	row, err := strconv.Atoi(fields[2])
	if err != nil {
		return "ERR invalid row index\n"
	}
	column := fields[3]

	table, ok := r.table(tableName)
	if !ok {
		return fmt.Sprintf("ERR unknown table %s\n", tableName)
	}

	switch verb {
	case "SELECT":
		if column == "*" {
			return r.selectAll(table, row)
		}
		v, err := table.Select(row, column)
		if err != nil {
			return fmt.Sprintf("ERR %s\n", err)
		}
		return fmt.Sprintf("OK %s\n", v)
	case "UPDATE":
		if len(fields) < 5 {
			return "ERR missing value\n"
		}
		col, ok := table.Column(column)
		if !ok {
			return fmt.Sprintf("ERR unknown column %s.%s\n", tableName, column)
		}
		v, err := parseValue(col.Type, strings.Join(fields[4:], " "))
		if err != nil {
			return fmt.Sprintf("ERR %s\n", err)
		}
		if err := table.Update(row, column, v); err != nil {
			return fmt.Sprintf("ERR %s\n", err)
		}
		return "OK\n"
	default:
		return fmt.Sprintf("ERR unknown verb %s\n", verb)
	}
}

// selectAll reads every column of one row, for "SELECT <table> <row> *".
func (r *Registry) selectAll(table *Table, row int) string {
	var b strings.Builder
	b.WriteString("OK")
	for _, name := range table.ColumnNames() {
		v, err := table.Select(row, name)
		if err != nil {
			return fmt.Sprintf("ERR %s\n", err)
		}
		fmt.Fprintf(&b, " %s=%s", name, v)
	}
	b.WriteString("\n")
	return b.String()
}

func parseValue(t ColumnType, raw string) (Value, error) {
	switch t {
	case ColInt:
		i, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return Value{}, fmt.Errorf("not an integer: %s", raw)
		}
		return IntValue(int32(i)), nil
	case ColFloat:
		f, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return Value{}, fmt.Errorf("not a float: %s", raw)
		}
		return FloatValue(float32(f)), nil
	default:
		return StrValue(raw), nil
	}
}
