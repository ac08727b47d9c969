package entity

// TableView is everything a tabular renderer needs to draw the merged rows.
type TableView struct {
	Title        string
	Notice       string
	Category     string
	ShowCategory bool
	Rows         []MergedPoint
	EmptyMessage string
}
