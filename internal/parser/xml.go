package parser

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"accessgate/internal/domain"
)

// XMLParser parses tagged-markup files. Any root element is accepted; each
// child of the root is one row and each grandchild element is one field,
// keyed by its local name.
type XMLParser struct{}

// Parse implements the Parser interface.
func (p *XMLParser) Parse(data []byte) ([]domain.ParsedRow, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))

	var rows []domain.ParsedRow
	var row domain.ParsedRow
	var field string
	var text strings.Builder
	depth := 0
	sawRoot := false

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: invalid xml: %v", ErrMalformed, err)
		}
		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch depth {
			case 1:
				sawRoot = true
			case 2:
				row = make(domain.ParsedRow)
			case 3:
				field = normalizeKey(t.Name.Local)
				text.Reset()
			}
		case xml.CharData:
			if depth == 3 {
				text.Write(t)
			}
		case xml.EndElement:
			switch depth {
			case 3:
				if row != nil && field != "" {
					row[field] = strings.TrimSpace(text.String())
				}
			case 2:
				if row != nil {
					rows = append(rows, row)
					row = nil
				}
			}
			depth--
		}
	}
	if !sawRoot {
		return nil, fmt.Errorf("%w: xml document has no root element", ErrMalformed)
	}
	return rows, nil
}
