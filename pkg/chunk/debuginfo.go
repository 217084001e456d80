package chunk

import "skard/pkg/utils"

// LineRun is one entry of the run-length encoded line table: Count
// consecutive instruction bytes that came from Line.
type LineRun struct {
	Line  int `json:"line"`
	Count int `json:"count"`
}

// DebugInfo maps instruction offsets back to source positions. Lines are
// run-length encoded; columns are stored one per byte.
//
// Bytes must be added in offset order. A byte whose line equals the last run's
// line extends that run.
type DebugInfo struct {
	runs    []LineRun
	columns []int
}

// Add records the position of the next instruction byte.
func (d *DebugInfo) Add(line, column int) error {
	if err := d.addLine(line); err != nil {
		return err
	}
	return d.addColumn(column)
}

func (d *DebugInfo) addLine(line int) error {
	if n := len(d.runs); n > 0 && d.runs[n-1].Line == line {
		d.runs[n-1].Count++
		return nil
	}
	runs, err := utils.Reserve(d.runs)
	if err != nil {
		return err
	}
	d.runs = append(runs, LineRun{Line: line, Count: 1})
	return nil
}

func (d *DebugInfo) addColumn(column int) error {
	columns, err := utils.Reserve(d.columns)
	if err != nil {
		return err
	}
	d.columns = append(columns, column)
	return nil
}

// Line returns the source line of the byte at offset, or 0 when offset is
// outside the table.
func (d *DebugInfo) Line(offset int) int {
	if offset < 0 {
		return 0
	}
	for _, r := range d.runs {
		if offset < r.Count {
			return r.Line
		}
		offset -= r.Count
	}
	return 0
}

// Column returns the source column of the byte at offset, or 0 when offset is
// outside the table.
func (d *DebugInfo) Column(offset int) int {
	if offset < 0 || offset >= len(d.columns) {
		return 0
	}
	return d.columns[offset]
}

// Runs exposes the line table.
func (d *DebugInfo) Runs() []LineRun { return d.runs }

// Len is the number of instruction bytes described.
func (d *DebugInfo) Len() int { return len(d.columns) }

// Free drops both tables.
func (d *DebugInfo) Free() {
	d.runs = nil
	d.columns = nil
}
