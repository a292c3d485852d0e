package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// scalar is a text field that hand-written content sometimes gives as a
// number or boolean
type scalar string

func (s *scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch c := data[0]; {
	case c == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = scalar(v)
	case c == '-' || (c >= '0' && c <= '9'):
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*s = scalar(n.String())
	case bytes.Equal(data, []byte("true")) || bytes.Equal(data, []byte("false")):
		*s = scalar(data)
	default:
		return fmt.Errorf("expected a string or number, got %.20s", data)
	}
	return nil
}

// UnmarshalJSON accepts a numeric id
func (a *Article) UnmarshalJSON(data []byte) error {
	type plain Article
	aux := struct {
		*plain
		ID scalar `json:"id"`
	}{plain: (*plain)(a)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	a.ID = string(aux.ID)
	return nil
}

// UnmarshalJSON accepts a numeric price
func (t *Tool) UnmarshalJSON(data []byte) error {
	type plain Tool
	aux := struct {
		*plain
		Price scalar `json:"price"`
	}{plain: (*plain)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t.Price = string(aux.Price)
	return nil
}
