package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmptyDocument is returned when a document has no JSON value
var ErrEmptyDocument = errors.New("empty document")

// Decode parses a document holding a single record, an array of records,
// or an object wrapping the array under wrapperKey. Array elements are
// decoded one by one: an element that does not fit T is reported in
// skipped and its siblings are kept. err is set only when the document
// itself cannot be parsed.
func Decode[T any](data []byte, wrapperKey string) (items []T, skipped []error, err error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil, ErrEmptyDocument
	}

	switch trimmed[0] {
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, nil, fmt.Errorf("decoding array: %w", err)
		}
		items = make([]T, 0, len(raw))
		for i, elem := range raw {
			var item T
			if err := json.Unmarshal(elem, &item); err != nil {
				skipped = append(skipped, fmt.Errorf("entry %d: %w", i, err))
				continue
			}
			items = append(items, item)
		}
		return items, skipped, nil
	case '{':
		if wrapperKey != "" {
			var wrapper map[string]json.RawMessage
			if err := json.Unmarshal(trimmed, &wrapper); err != nil {
				return nil, nil, fmt.Errorf("decoding object: %w", err)
			}
			if raw, ok := wrapper[wrapperKey]; ok {
				if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
					return nil, nil, nil
				}
				return Decode[T](raw, "")
			}
		}
	}

	var item T
	if err := json.Unmarshal(trimmed, &item); err != nil {
		return nil, nil, fmt.Errorf("decoding record: %w", err)
	}
	return []T{item}, nil, nil
}
