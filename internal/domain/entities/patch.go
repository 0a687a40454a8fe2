package entities

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/volatiletech/null/v8"
	domainerrors "mercato.backend/internal/domain/errors"
)

// Optional is a tri-state patch field: absent from the payload, explicitly null, or set to a value.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// Null returns an Optional explicitly set to null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// UnmarshalJSON is only invoked when the key is present, which is what distinguishes unset from null.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// HasValue reports whether a non-null value was supplied.
func (o Optional[T]) HasValue() bool {
	return o.Set && !o.Null
}

// applyRequired writes o into dst for a non-nullable column.
func applyRequired[T any](o Optional[T], dst *T, field string) error {
	if !o.Set {
		return nil
	}
	if o.Null {
		return domainerrors.NewError(fmt.Sprintf("%s cannot be null", field), domainerrors.ErrInvalidInput)
	}
	*dst = o.Value
	return nil
}

func applyNullString(o Optional[string], dst *null.String) {
	if !o.Set {
		return
	}
	if o.Null {
		*dst = null.String{}
		return
	}
	*dst = null.StringFrom(o.Value)
}

func applyNullInt(o Optional[int], dst *null.Int) {
	if !o.Set {
		return
	}
	if o.Null {
		*dst = null.Int{}
		return
	}
	*dst = null.IntFrom(o.Value)
}

func applyNullInt64(o Optional[int64], dst *null.Int64) {
	if !o.Set {
		return
	}
	if o.Null {
		*dst = null.Int64{}
		return
	}
	*dst = null.Int64From(o.Value)
}
