// Package tabular converts column-oriented market data tables into the
// ordered row-object form used in tool results.
package tabular

import "time"

// DateFormat is the fixed layout for rendering timestamps in records,
// ISO 8601 with millisecond precision.
const DateFormat = "2006-01-02T15:04:05.000Z07:00"

// Table is an ordered collection of rows over named columns, optionally
// indexed by time. Cells hold decoded JSON values: numbers, strings,
// booleans, time.Time, or nil.
type Table struct {
	Columns   []string
	Rows      [][]any
	Index     []time.Time
	IndexName string
}

// New creates an unindexed table with the given columns.
func New(columns ...string) *Table {
	return &Table{Columns: columns}
}

// NewIndexed creates a time-indexed table. The index is materialized as a
// field named indexName when the table is converted to records.
func NewIndexed(indexName string, columns ...string) *Table {
	return &Table{Columns: columns, IndexName: indexName}
}

// Append adds a row to an unindexed table. Rows shorter than the column
// set are padded with nil; extra cells are dropped.
func (t *Table) Append(cells ...any) {
	t.Rows = append(t.Rows, t.fit(cells))
}

// AppendAt adds a row to a time-indexed table at the given timestamp.
func (t *Table) AppendAt(ts time.Time, cells ...any) {
	t.Index = append(t.Index, ts)
	t.Rows = append(t.Rows, t.fit(cells))
}

func (t *Table) fit(cells []any) []any {
	row := make([]any, len(t.Columns))
	copy(row, cells)
	return row
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Head returns a table holding at most n leading rows. A negative n or an
// n beyond the row count returns the table unchanged.
func (t *Table) Head(n int) *Table {
	if t == nil || n < 0 || n >= len(t.Rows) {
		return t
	}
	head := &Table{
		Columns:   t.Columns,
		Rows:      t.Rows[:n],
		IndexName: t.IndexName,
	}
	if t.Index != nil {
		head.Index = t.Index[:n]
	}
	return head
}

// Records converts a table into an ordered sequence of row objects, one
// map per row keyed by column name. A time index is materialized as an
// explicit field under the table's index name, and time.Time cells are
// rendered using DateFormat. A nil or empty table yields an empty mapping.
func Records(t *Table) any {
	if t == nil || len(t.Rows) == 0 {
		return map[string]any{}
	}
	records := make([]map[string]any, 0, len(t.Rows))
	for i, row := range t.Rows {
		record := make(map[string]any, len(t.Columns)+1)
		if t.Index != nil && i < len(t.Index) {
			record[t.IndexName] = t.Index[i].Format(DateFormat)
		}
		for j, column := range t.Columns {
			if j < len(row) {
				record[column] = cell(row[j])
			} else {
				record[column] = nil
			}
		}
		records = append(records, record)
	}
	return records
}

func cell(v any) any {
	if ts, ok := v.(time.Time); ok {
		return ts.Format(DateFormat)
	}
	return v
}
