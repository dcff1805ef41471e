package rem

// Sheet is one tab of a spreadsheet report: a header row followed by
// data rows.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
}

// SpreadsheetWriter renders tabular reports to a spreadsheet file.
type SpreadsheetWriter interface {
	// Write creates the file at path containing the given sheets.
	Write(path string, sheets []Sheet) error
}
