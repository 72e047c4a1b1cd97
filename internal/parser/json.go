package parser

import (
	"encoding/json"
	"fmt"
	"strconv"

	"accessgate/internal/domain"
)

// JSONParser parses structured-markup files: either a top-level array of
// objects or an envelope object with a "records" array. Scalar values are
// stringified so downstream components see the same row shape as the other
// formats.
type JSONParser struct{}

type jsonEnvelope struct {
	Records []map[string]interface{} `json:"records"`
}

// Parse implements the Parser interface.
func (p *JSONParser) Parse(data []byte) ([]domain.ParsedRow, error) {
	var objects []map[string]interface{}
	if err := json.Unmarshal(data, &objects); err != nil {
		var envelope jsonEnvelope
		if envErr := json.Unmarshal(data, &envelope); envErr != nil || envelope.Records == nil {
			return nil, fmt.Errorf("%w: invalid json: %v", ErrMalformed, err)
		}
		objects = envelope.Records
	}

	rows := make([]domain.ParsedRow, 0, len(objects))
	for _, obj := range objects {
		row := make(domain.ParsedRow, len(obj))
		for key, value := range obj {
			row[normalizeKey(key)] = stringifyJSONValue(value)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func stringifyJSONValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(raw)
	}
}
