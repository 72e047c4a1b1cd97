package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"accessgate/internal/domain"
)

// CSVParser parses delimited text files. The first row is the header; header
// names are lowercased and trimmed before becoming row keys.
type CSVParser struct{}

// Parse implements the Parser interface.
func (p *CSVParser) Parse(data []byte) ([]domain.ParsedRow, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty csv file", ErrMalformed)
		}
		return nil, fmt.Errorf("%w: read csv header: %v", ErrMalformed, err)
	}

	keys := make([]string, len(header))
	for i, col := range header {
		keys[i] = normalizeKey(col)
	}

	var rows []domain.ParsedRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read csv row %d: %v", ErrMalformed, len(rows)+1, err)
		}
		row := make(domain.ParsedRow, len(keys))
		for i, key := range keys {
			if key == "" {
				continue
			}
			if i < len(record) {
				row[key] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
