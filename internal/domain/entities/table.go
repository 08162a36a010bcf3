package entities

// Table is a flat dataset. Columns lists every column in first-appearance
// order; a row may omit any of them, which reads as null.
type Table struct {
	Columns []string
	Rows    []*Record
}

func (t Table) Len() int {
	return len(t.Rows)
}

func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// AddColumn appends name unless it is already known.
func (t *Table) AddColumn(name string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
}

// Filter returns a table with the same columns and only the rows keep accepts.
func (t Table) Filter(keep func(row *Record) bool) Table {
	out := Table{Columns: append([]string(nil), t.Columns...)}
	for _, row := range t.Rows {
		if keep(row) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// DropColumns returns a copy of the table without the named columns, both in
// the column list and in every row.
func (t Table) DropColumns(names ...string) Table {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}

	out := Table{}
	for _, c := range t.Columns {
		if _, ok := drop[c]; !ok {
			out.Columns = append(out.Columns, c)
		}
	}
	out.Rows = make([]*Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		cp := row.Clone()
		for _, n := range names {
			cp.Delete(n)
		}
		out.Rows = append(out.Rows, cp)
	}
	return out
}
