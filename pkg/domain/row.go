package domain

import (
	"strings"
	"time"
)

// Cell layouts used by the timesheet columns.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// Header is the first row of every timesheet, in column order.
var Header = []string{"Date", "Clock In", "Clock Out", "Note"}

// NumColumns is the fixed width of a timesheet row.
const NumColumns = 4

// Row represents one work session or session attempt.
type Row struct {
	Date     string `json:"date"`                // YYYY-MM-DD
	ClockIn  string `json:"clock_in"`            // HH:MM:SS, set at creation
	ClockOut string `json:"clock_out,omitempty"` // empty while the session is open
	Note     string `json:"note,omitempty"`
}

// IsOpen returns true if the row has no clock-out time yet.
func (r Row) IsOpen() bool {
	return strings.TrimSpace(r.ClockOut) == ""
}

// Values returns the row's cells in column order.
func (r Row) Values() []string {
	return []string{r.Date, r.ClockIn, r.ClockOut, r.Note}
}

// TSV renders the row as a tab-separated line, ready to paste into a sheet.
func (r Row) TSV() string {
	vals := r.Values()
	for i, v := range vals {
		vals[i] = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ").Replace(v)
	}
	return strings.Join(vals, "\t")
}

// RowFromValues builds a Row from spreadsheet cells. Missing trailing
// cells are treated as empty.
func RowFromValues(cells []string) Row {
	var padded [NumColumns]string
	copy(padded[:], cells)
	return Row{
		Date:     strings.TrimSpace(padded[0]),
		ClockIn:  strings.TrimSpace(padded[1]),
		ClockOut: strings.TrimSpace(padded[2]),
		Note:     padded[3],
	}
}

// IsBlank returns true if every cell of the row is empty.
func (r Row) IsBlank() bool {
	return r.Date == "" && r.ClockIn == "" && strings.TrimSpace(r.ClockOut) == "" && strings.TrimSpace(r.Note) == ""
}

// FormatDate renders t as a timesheet date cell.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatTime renders t as a timesheet time-of-day cell.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}
