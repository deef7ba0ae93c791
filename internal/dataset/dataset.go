package dataset

// Column names of the dataset file header.
const (
	ColumnEvent   = "Historical Event"
	ColumnDate    = "Date"
	ColumnSummary = "Summary"
)

// Record is a single historical fact. Event is the display name and, compared
// case-insensitively, the identity of the record. Date is free-form text: usually
// a year, sometimes "Unknown".
type Record struct {
	Event   string
	Date    string
	Summary string
}

func (r Record) row() []string {
	return []string{r.Event, r.Date, r.Summary}
}

func header() []string {
	return []string{ColumnEvent, ColumnDate, ColumnSummary}
}
