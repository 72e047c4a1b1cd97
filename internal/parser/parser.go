// Package parser converts raw upload bytes into ordered row maps.
// One implementation per supported file format, selected by a factory
// keyed on the Format enumeration; adding a format means adding one
// implementation and one factory branch.
package parser

import (
	"errors"
	"strings"

	"accessgate/internal/domain"
)

var (
	// ErrUnsupportedFormat is returned for file extensions outside the whitelist.
	ErrUnsupportedFormat = errors.New("parser: unsupported file format")

	// ErrMalformed is returned when the input cannot be parsed at all
	// (unterminated quotes, invalid markup, corrupt spreadsheet container).
	ErrMalformed = errors.New("parser: malformed input")
)

// Parser converts one file's raw bytes into an ordered sequence of row maps.
type Parser interface {
	Parse(data []byte) ([]domain.ParsedRow, error)
}

// Format represents a supported input format.
type Format uint8

const (
	FormatUnknown Format = iota
	FormatCSV
	FormatJSON
	FormatXML
	FormatXLS
	FormatXLSX
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatJSON:
		return "json"
	case FormatXML:
		return "xml"
	case FormatXLS:
		return "xls"
	case FormatXLSX:
		return "xlsx"
	default:
		return "unknown"
	}
}

// FormatForExtension maps a file extension (with or without the leading dot)
// to a Format. Unrecognized extensions are rejected before any parsing.
func FormatForExtension(ext string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "xml":
		return FormatXML, nil
	case "xls":
		return FormatXLS, nil
	case "xlsx":
		return FormatXLSX, nil
	default:
		return FormatUnknown, ErrUnsupportedFormat
	}
}

// New returns the parser for the given format.
func New(format Format) (Parser, error) {
	switch format {
	case FormatCSV:
		return &CSVParser{}, nil
	case FormatJSON:
		return &JSONParser{}, nil
	case FormatXML:
		return &XMLParser{}, nil
	case FormatXLS:
		return &XLSParser{}, nil
	case FormatXLSX:
		return &XLSXParser{}, nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// normalizeKey canonicalizes a column name so detection and validation see
// the same key regardless of source format.
func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
