package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	recordsSheet    = "Records"
	statisticsSheet = "Statistics"
)

// XLSXExporter renders a report document into a workbook with a records sheet
// and a statistics sheet.
type XLSXExporter struct{}

// NewXLSXExporter builds an XLSX exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Render produces workbook bytes for the document.
func (e *XLSXExporter) Render(doc Document) ([]byte, error) {
	if len(doc.Records.Headers) == 0 {
		return nil, fmt.Errorf("xlsx requires at least one header")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", recordsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(statisticsSheet); err != nil {
		return nil, fmt.Errorf("create statistics sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	if err := writeRecords(f, doc.Records, headerStyle); err != nil {
		return nil, err
	}
	if err := writeStatistics(f, doc, headerStyle); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRecords(f *excelize.File, data Dataset, headerStyle int) error {
	for i, header := range data.Headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("resolve header cell: %w", err)
		}
		if err := f.SetCellValue(recordsSheet, cell, header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		if err := f.SetCellStyle(recordsSheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("style header: %w", err)
		}
	}
	for rowIdx, row := range data.Rows {
		for colIdx, value := range data.Values(row) {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("resolve cell: %w", err)
			}
			if err := f.SetCellValue(recordsSheet, cell, value); err != nil {
				return fmt.Errorf("write cell %s: %w", cell, err)
			}
		}
	}
	last, err := excelize.ColumnNumberToName(len(data.Headers))
	if err != nil {
		return fmt.Errorf("resolve last column: %w", err)
	}
	return f.SetColWidth(recordsSheet, "A", last, 22)
}

func writeStatistics(f *excelize.File, doc Document, headerStyle int) error {
	row := 1
	put := func(label, value string, styled bool) error {
		labelCell := fmt.Sprintf("A%d", row)
		if err := f.SetCellValue(statisticsSheet, labelCell, label); err != nil {
			return fmt.Errorf("write statistics: %w", err)
		}
		if err := f.SetCellValue(statisticsSheet, fmt.Sprintf("B%d", row), value); err != nil {
			return fmt.Errorf("write statistics: %w", err)
		}
		if styled {
			if err := f.SetCellStyle(statisticsSheet, labelCell, labelCell, headerStyle); err != nil {
				return fmt.Errorf("style statistics: %w", err)
			}
		}
		row++
		return nil
	}

	if err := put(doc.Title, "", true); err != nil {
		return err
	}
	if err := put("Generated on", doc.GeneratedAt, false); err != nil {
		return err
	}
	if err := put("Generated by", doc.GeneratedBy, false); err != nil {
		return err
	}
	for _, filter := range doc.Filters {
		if err := put("Filter: "+filter.Label, filter.Value, false); err != nil {
			return err
		}
	}
	row++
	if err := put("Summary", "", true); err != nil {
		return err
	}
	for _, field := range doc.Summary {
		if err := put(field.Label, field.Value, false); err != nil {
			return err
		}
	}
	for _, breakdown := range doc.Breakdowns {
		if len(breakdown.Rows) == 0 {
			continue
		}
		row++
		if err := put(breakdown.Title, "", true); err != nil {
			return err
		}
		for _, field := range breakdown.Rows {
			if err := put(field.Label, field.Value, false); err != nil {
				return err
			}
		}
	}
	return f.SetColWidth(statisticsSheet, "A", "B", 36)
}
