package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"accessgate/internal/domain"
)

// XLSXParser parses modern spreadsheet workbooks. Only the first sheet is
// read; the first row is the header.
type XLSXParser struct{}

// Parse implements the Parser interface.
func (p *XLSXParser) Parse(data []byte) ([]domain.ParsedRow, error) {
	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: open xlsx: %v", ErrMalformed, err)
	}
	defer workbook.Close()

	sheet := workbook.GetSheetName(0)
	if sheet == "" {
		sheets := workbook.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", ErrMalformed)
		}
		sheet = sheets[0]
	}

	iter, err := workbook.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %v", ErrMalformed, sheet, err)
	}
	defer iter.Close()

	if !iter.Next() {
		return nil, fmt.Errorf("%w: sheet %q is empty", ErrMalformed, sheet)
	}
	header, err := iter.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: read header row: %v", ErrMalformed, err)
	}
	keys := make([]string, len(header))
	for i, col := range header {
		keys[i] = normalizeKey(col)
	}

	var rows []domain.ParsedRow
	for iter.Next() {
		cells, err := iter.Columns()
		if err != nil {
			return nil, fmt.Errorf("%w: read row %d: %v", ErrMalformed, len(rows)+2, err)
		}
		rows = append(rows, cellsToRow(keys, cells))
	}
	return rows, nil
}

// XLSParser parses legacy binary spreadsheet workbooks.
type XLSParser struct{}

// Parse implements the Parser interface.
func (p *XLSParser) Parse(data []byte) ([]domain.ParsedRow, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("%w: open xls: %v", ErrMalformed, err)
	}

	sheet := workbook.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrMalformed)
	}

	headerRow := sheet.Row(0)
	if headerRow == nil {
		return nil, fmt.Errorf("%w: sheet is empty", ErrMalformed)
	}
	firstCol := headerRow.FirstCol()
	var keys []string
	for i := firstCol; i <= headerRow.LastCol(); i++ {
		keys = append(keys, normalizeKey(headerRow.Col(i)))
	}

	var rows []domain.ParsedRow
	for r := 1; r <= int(sheet.MaxRow); r++ {
		rawRow := sheet.Row(r)
		if rawRow == nil {
			continue
		}
		rows = append(rows, cellsToRow(keys, xlsCells(rawRow, firstCol, len(keys))))
	}
	return rows, nil
}

type xlsRow interface {
	Col(int) string
}

// xlsCells reads n cells starting at the header's first column, keeping data
// aligned with the keys when the sheet does not begin in column 0.
func xlsCells(row xlsRow, firstCol, n int) []string {
	cells := make([]string, n)
	for i := range cells {
		cells[i] = row.Col(firstCol + i)
	}
	return cells
}

func cellsToRow(keys, cells []string) domain.ParsedRow {
	row := make(domain.ParsedRow, len(keys))
	for i, key := range keys {
		if key == "" {
			continue
		}
		if i < len(cells) {
			row[key] = strings.TrimSpace(cells[i])
		}
	}
	return row
}
