package domain

import (
	"bytes"
	"encoding/json"
)

// Optional holds a value decoded from loosely typed JSON. A null, missing or
// wrongly typed value decodes to the zero Optional instead of an error, so a
// partially filled criteria payload never fails the whole request.
type Optional[T any] struct {
	Value T
	Valid bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Valid: true}
}

func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Valid
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	*o = Optional[T]{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}

	o.Value = v
	o.Valid = true
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
