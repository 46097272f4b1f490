package export

// Dataset defines tabular export content.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// Field is a single label/value line.
type Field struct {
	Label string
	Value string
}

// Breakdown is a titled list of labelled counts.
type Breakdown struct {
	Title string
	Rows  []Field
}

// Document is the fixed bundle every report renderer receives.
type Document struct {
	Title       string
	GeneratedAt string
	GeneratedBy string
	Filters     []Field
	Summary     []Field
	Breakdowns  []Breakdown
	Records     Dataset
}

// Values returns row cells ordered by the dataset headers.
func (d Dataset) Values(row map[string]string) []string {
	record := make([]string, len(d.Headers))
	for i, header := range d.Headers {
		record[i] = row[header]
	}
	return record
}
